package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/talgya/hex-tactics/internal/world"
)

// renderMap draws the map as text, one line per row, odd rows shifted right.
// Units show as their team number, trees as T, stones as o.
func renderMap(w io.Writer, m *world.Map) {
	start, end := world.Extent(m.Shape, m.Size)
	for row := start; row < end; row++ {
		var b strings.Builder
		if row&1 == 1 {
			b.WriteByte(' ')
		}
		for col := start; col < end; col++ {
			b.WriteByte(tileGlyph(m.Get(world.Coord{Col: col, Row: row})))
			b.WriteByte(' ')
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
}

func tileGlyph(t *world.Tile) byte {
	if t == nil {
		return '~'
	}
	if t.Unit != nil {
		return '0' + byte(t.Unit.Team%10)
	}
	switch t.Status {
	case world.StatusPath:
		return '*'
	case world.StatusTarget:
		return 'X'
	}
	switch t.Decoration {
	case world.DecorationTree:
		return 'T'
	case world.DecorationStones:
		return 'o'
	}
	switch t.Texture {
	case world.TextureRocky:
		return '^'
	case world.TextureRough:
		return 'n'
	case world.TextureVegetated:
		return '"'
	case world.TextureSandy:
		return '.'
	default:
		return '_'
	}
}
