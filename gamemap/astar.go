package gamemap

import (
	"container/heap"

	"github.com/hupe1980/agentville/core"
)

// pathNode is one A* frontier entry. seq breaks f-score ties in insertion
// order so paths are deterministic.
type pathNode struct {
	point core.Point
	f     int
	seq   int
	index int
}

type frontier []*pathNode

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].f != f[j].f {
		return f[i].f < f[j].f
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].index = i
	f[j].index = j
}

func (f *frontier) Push(x any) {
	n := x.(*pathNode)
	n.index = len(*f)
	*f = append(*f, n)
}

func (f *frontier) Pop() any {
	old := *f
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*f = old[:len(old)-1]
	return n
}

var neighborDeltas = []core.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}

// FindPath runs four-directional A* with a Manhattan heuristic from `from`
// to `to`. Cells in `occupied` are treated as blocked in addition to
// unwalkable tiles, which is how callers exclude other agents' positions.
// The returned path includes both endpoints; on an open grid its length is
// the Manhattan distance plus one. An unreachable or unwalkable target
// yields an empty path, never an error.
func (g *Grid) FindPath(from, to core.Point, occupied map[core.Point]bool) []core.Point {
	if !g.IsWalkable(from) || !g.IsWalkable(to) || occupied[to] {
		return nil
	}
	if from == to {
		return []core.Point{from}
	}

	open := &frontier{}
	heap.Init(open)
	seq := 0
	heap.Push(open, &pathNode{point: from, f: from.ManhattanDistance(to), seq: seq})

	gScore := map[core.Point]int{from: 0}
	cameFrom := map[core.Point]core.Point{}
	closed := map[core.Point]bool{}

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if current.point == to {
			return reconstruct(cameFrom, current.point)
		}
		if closed[current.point] {
			continue
		}
		closed[current.point] = true

		for _, d := range neighborDeltas {
			next := current.point.Add(d)
			if closed[next] || !g.IsWalkable(next) || occupied[next] {
				continue
			}
			tentative := gScore[current.point] + 1
			if known, ok := gScore[next]; ok && tentative >= known {
				continue
			}
			gScore[next] = tentative
			cameFrom[next] = current.point
			seq++
			heap.Push(open, &pathNode{point: next, f: tentative + next.ManhattanDistance(to), seq: seq})
		}
	}
	return nil
}

func reconstruct(cameFrom map[core.Point]core.Point, end core.Point) []core.Point {
	path := []core.Point{end}
	for {
		prev, ok := cameFrom[path[len(path)-1]]
		if !ok {
			break
		}
		path = append(path, prev)
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
