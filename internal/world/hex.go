// Package world provides the hex grid, terrain, and the tile map a battle is fought on.
// Uses offset coordinates (col, row) where odd rows are shifted half a tile to the right.
package world

import "math"

// Tile layout spacing in world units. RowSpacing/ColumnSpacing ≈ 0.867,
// which packs the hexagons into a regular tiling.
const (
	ColumnSpacing = 1.77
	RowSpacing    = 1.535
)

// Coord represents a position on the hex grid using offset coordinates.
type Coord struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Shape determines both the generation extent and the map boundary.
type Shape uint8

const (
	ShapeBox    Shape = iota // col and row in [0, size)
	ShapeCircle              // tiles within distance size of the origin
)

// ShapeName returns a human-readable name for a shape.
func ShapeName(s Shape) string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapeCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// ParseShape maps a shape name back to its value.
func ParseShape(name string) (Shape, bool) {
	switch name {
	case "box":
		return ShapeBox, true
	case "circle":
		return ShapeCircle, true
	default:
		return 0, false
	}
}

// Neighbor offsets for even and odd rows. The tables differ because odd rows
// sit half a column to the right of even rows.
var (
	evenRowDirections = [6]Coord{
		{Col: -1, Row: -1},
		{Col: 0, Row: -1},
		{Col: 1, Row: 0},
		{Col: 0, Row: 1},
		{Col: -1, Row: 1},
		{Col: -1, Row: 0},
	}
	oddRowDirections = [6]Coord{
		{Col: 0, Row: -1},
		{Col: 1, Row: -1},
		{Col: 1, Row: 0},
		{Col: 1, Row: 1},
		{Col: 0, Row: 1},
		{Col: -1, Row: 0},
	}
)

// rowParity is 0 for even rows and 1 for odd rows, negative rows included.
func rowParity(row int) int {
	return row & 1
}

// NeighborDeltas returns the six neighbor offsets for a tile on the given row.
func NeighborDeltas(row int) [6]Coord {
	if rowParity(row) == 1 {
		return oddRowDirections
	}
	return evenRowDirections
}

// Neighbors returns the six adjacent coordinates, ignoring map bounds.
func (c Coord) Neighbors() [6]Coord {
	var result [6]Coord
	for i, dir := range NeighborDeltas(c.Row) {
		result[i] = Coord{Col: c.Col + dir.Col, Row: c.Row + dir.Row}
	}
	return result
}

// IsNeighbor reports whether b is adjacent to a.
func IsNeighbor(a, b Coord) bool {
	for _, n := range a.Neighbors() {
		if n == b {
			return true
		}
	}
	return false
}

// boxOrigin is the offset that centres a box map on the origin.
func boxOrigin(shape Shape, size int) (float64, float64) {
	if shape != ShapeBox || size <= 0 {
		return 0, 0
	}
	half := float64(size-1) * 0.5
	return half * ColumnSpacing, half * RowSpacing
}

// TileToPosition converts grid coordinates to continuous placement coordinates.
func TileToPosition(col, row int, shape Shape, size int) (x, y float64) {
	ox, oy := boxOrigin(shape, size)
	x = (float64(col)+float64(rowParity(row))*0.5)*ColumnSpacing - ox
	y = float64(row)*RowSpacing - oy
	return x, y
}

// PositionToTile returns the coordinate whose tile centre is closest to (x, y).
// The result is not clipped to the map shape.
func PositionToTile(x, y float64, shape Shape, size int) Coord {
	ox, oy := boxOrigin(shape, size)
	fx, fy := x+ox, y+oy

	guess := int(math.Round(fy / RowSpacing))
	best := Coord{}
	bestDist := math.Inf(1)
	for row := guess - 1; row <= guess+1; row++ {
		col := int(math.Round(fx/ColumnSpacing - float64(rowParity(row))*0.5))
		for c := col - 1; c <= col+1; c++ {
			cx, cy := TileToPosition(c, row, shape, size)
			d := (cx-x)*(cx-x) + (cy-y)*(cy-y)
			if d < bestDist {
				bestDist = d
				best = Coord{Col: c, Row: row}
			}
		}
	}
	return best
}

// Extent returns the first and one-past-last index scanned for a shape,
// identical for columns and rows.
func Extent(shape Shape, size int) (start, end int) {
	if shape == ShapeCircle {
		return 1 - size, size
	}
	return 0, size
}

// InShape returns true if the coordinate lies inside the map boundary.
func InShape(c Coord, shape Shape, size int) bool {
	start, end := Extent(shape, size)
	if c.Col < start || c.Col >= end || c.Row < start || c.Row >= end {
		return false
	}
	if shape == ShapeCircle {
		x, y := TileToPosition(c.Col, c.Row, shape, size)
		return math.Hypot(x, y) <= float64(size)
	}
	return true
}

// NeighborsInShape returns the adjacent coordinates that lie inside the map boundary.
func NeighborsInShape(c Coord, shape Shape, size int) []Coord {
	out := make([]Coord, 0, 6)
	for _, n := range c.Neighbors() {
		if InShape(n, shape, size) {
			out = append(out, n)
		}
	}
	return out
}
