// Package pathfind computes movement over a world.Map: the tiles a unit can
// reach on a movement budget, the cheapest path to a tile, and neighbor rings.
// A missing path or an empty reachable set is a normal result, never an error.
package pathfind

import (
	"container/heap"
	"math"

	"github.com/zyedidia/generic/mapset"

	"github.com/talgya/hex-tactics/internal/world"
)

// costEpsilon absorbs float error when comparing accumulated cost to a budget.
const costEpsilon = 1e-9

// StepCost is the cost of entering t. Difficult terrain costs 1/divisor;
// a non-positive divisor means uniform cost.
func StepCost(t *world.Tile, divisor float64) float64 {
	if divisor <= 0 || !t.Texture.Difficult() {
		return 1
	}
	return 1 / divisor
}

// PathCost sums the step cost of every tile on a path (origin excluded).
func PathCost(path []*world.Tile, divisor float64) float64 {
	total := 0.0
	for _, t := range path {
		total += StepCost(t, divisor)
	}
	return total
}

// --- Dijkstra ---

type searchNode struct {
	tile  *world.Tile
	cost  float64
	seq   int // insertion order, breaks cost ties
	index int // heap index
}

type frontier []*searchNode

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i]; f[i].index = i; f[j].index = j }
func (f *frontier) Push(x interface{}) { n := x.(*searchNode); n.index = len(*f); *f = append(*f, n) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*f = old[:len(old)-1]
	return n
}

type search struct {
	budget  float64     // Inf for an unbounded search
	target  *world.Tile // may be entered even when blocked; search stops there
	divisor float64
}

type searchResult struct {
	settled []*world.Tile // in settle order, origin first
	cost    map[world.Coord]float64
	parent  map[world.Coord]*world.Tile
}

func (s search) run(m *world.Map, origin *world.Tile) searchResult {
	res := searchResult{
		cost:   map[world.Coord]float64{origin.Coord: 0},
		parent: make(map[world.Coord]*world.Tile),
	}
	done := mapset.New[world.Coord]()

	seq := 0
	open := &frontier{{tile: origin}}
	heap.Init(open)

	for open.Len() > 0 {
		cur := heap.Pop(open).(*searchNode)
		if done.Has(cur.tile.Coord) {
			continue
		}
		done.Put(cur.tile.Coord)
		res.settled = append(res.settled, cur.tile)

		if cur.tile == s.target {
			break
		}

		for _, n := range m.Neighbors(cur.tile) {
			if done.Has(n.Coord) {
				continue
			}
			if n.Blocked() && n != s.target {
				continue
			}
			nc := cur.cost + StepCost(n, s.divisor)
			if nc > s.budget+costEpsilon {
				continue
			}
			if prev, ok := res.cost[n.Coord]; ok && nc >= prev {
				continue
			}
			res.cost[n.Coord] = nc
			res.parent[n.Coord] = cur.tile
			seq++
			heap.Push(open, &searchNode{tile: n, cost: nc, seq: seq})
		}
	}
	return res
}

// Reachables returns every unblocked tile whose cheapest cost from origin is
// within budget, in order of increasing cost. The origin itself is excluded.
func Reachables(m *world.Map, origin *world.Tile, budget, divisor float64) []*world.Tile {
	if !m.Contains(origin) || budget <= 0 {
		return nil
	}
	res := search{budget: budget, divisor: divisor}.run(m, origin)
	if len(res.settled) <= 1 {
		return nil
	}
	return res.settled[1:]
}

// FindPath returns the cheapest path from origin to destination, origin
// exclusive and destination inclusive. The destination may be blocked (an
// occupied tile can be the end of a capture); every other step must be open.
// Returns nil when no path exists.
func FindPath(m *world.Map, origin, destination *world.Tile, divisor float64) []*world.Tile {
	if !m.Contains(origin) || !m.Contains(destination) || origin == destination {
		return nil
	}
	res := search{budget: math.Inf(1), target: destination, divisor: divisor}.run(m, origin)
	if _, ok := res.parent[destination.Coord]; !ok {
		return nil
	}

	var path []*world.Tile
	for t := destination; t != origin; t = res.parent[t.Coord] {
		path = append(path, t)
	}
	// Reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Neighbors expands rings around tile up to radius steps, ignoring terrain
// cost. Blocked tiles are skipped unless includeBlocked is set, in which case
// they are returned and expanded like any other tile. The center is excluded.
func Neighbors(m *world.Map, tile *world.Tile, radius int, includeBlocked bool) []*world.Tile {
	if !m.Contains(tile) || radius <= 0 {
		return nil
	}

	seen := mapset.Of(tile.Coord)
	ring := []*world.Tile{tile}
	var out []*world.Tile

	for step := 0; step < radius && len(ring) > 0; step++ {
		var next []*world.Tile
		for _, cur := range ring {
			for _, n := range m.Neighbors(cur) {
				if seen.Has(n.Coord) {
					continue
				}
				seen.Put(n.Coord)
				if n.Blocked() && !includeBlocked {
					continue
				}
				next = append(next, n)
			}
		}
		out = append(out, next...)
		ring = next
	}
	return out
}

// Coords collects the coordinates of tiles into a set.
func Coords(tiles []*world.Tile) mapset.Set[world.Coord] {
	set := mapset.New[world.Coord]()
	for _, t := range tiles {
		set.Put(t.Coord)
	}
	return set
}
