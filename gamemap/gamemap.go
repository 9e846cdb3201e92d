package gamemap

import (
	"strings"

	"github.com/hupe1980/agentville/core"
)

// TileType identifies the terrain of one grid cell.
type TileType int

const (
	TileGrass TileType = iota
	TilePath
	TileFloor
	TileWater
	TileWall
	TileTree
)

// walkable is the set of tile types agents may stand on.
var walkable = map[TileType]bool{
	TileGrass: true,
	TilePath:  true,
	TileFloor: true,
}

// tileNames maps the terrain names used in world templates to tile types.
var tileNames = map[string]TileType{
	"grass": TileGrass,
	"path":  TilePath,
	"floor": TileFloor,
	"water": TileWater,
	"wall":  TileWall,
	"tree":  TileTree,
}

// ParseTile resolves a template terrain name ("water", "wall", ...) to its
// tile type, case-insensitively. Returns false for unknown names.
func ParseTile(name string) (TileType, bool) {
	t, ok := tileNames[strings.ToLower(name)]
	return t, ok
}

// OutsideLocation is the sentinel returned by LocationAt for points covered
// by no zone.
const OutsideLocation = "outside"

// Zone is a named rectangular region of the grid. X/Y is the top-left tile;
// the zone covers [X, X+W) x [Y, Y+H).
type Zone struct {
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	W    int    `json:"w"`
	H    int    `json:"h"`
}

// contains reports whether the point lies inside the zone.
func (z Zone) contains(p core.Point) bool {
	return p.X >= z.X && p.X < z.X+z.W && p.Y >= z.Y && p.Y < z.Y+z.H
}

// Grid is a fixed tile grid with named zones. Tiles default to grass.
type Grid struct {
	width  int
	height int
	tiles  [][]TileType // tiles[y][x]
	zones  []Zone
}

// New creates a grid of the given dimensions, all grass, no zones.
func New(width, height int) *Grid {
	tiles := make([][]TileType, height)
	for y := range tiles {
		tiles[y] = make([]TileType, width)
	}
	return &Grid{width: width, height: height, tiles: tiles}
}

// Width returns the grid width in tiles.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in tiles.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether the point lies on the grid.
func (g *Grid) InBounds(p core.Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// SetTile assigns the tile type at p. Out-of-bounds points are ignored.
func (g *Grid) SetTile(p core.Point, t TileType) {
	if g.InBounds(p) {
		g.tiles[p.Y][p.X] = t
	}
}

// TileAt returns the tile type at p. Out-of-bounds points read as wall.
func (g *Grid) TileAt(p core.Point) TileType {
	if !g.InBounds(p) {
		return TileWall
	}
	return g.tiles[p.Y][p.X]
}

// FillRect sets every tile in [x, x+w) x [y, y+h) to t, clipped to the grid.
func (g *Grid) FillRect(x, y, w, h int, t TileType) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			g.SetTile(core.Point{X: xx, Y: yy}, t)
		}
	}
}

// AddZone appends a named zone. Zone order matters: LocationAt returns the
// first containing zone in definition order.
func (g *Grid) AddZone(z Zone) {
	g.zones = append(g.zones, z)
}

// Zones returns the zones in definition order.
func (g *Grid) Zones() []Zone {
	out := make([]Zone, len(g.zones))
	copy(out, g.zones)
	return out
}

// IsWalkable reports whether an agent may stand on p.
func (g *Grid) IsWalkable(p core.Point) bool {
	return g.InBounds(p) && walkable[g.tiles[p.Y][p.X]]
}

// LocationAt returns the name of the first zone containing p in definition
// order, or OutsideLocation when no zone covers it.
func (g *Grid) LocationAt(p core.Point) string {
	for _, z := range g.zones {
		if z.contains(p) {
			return z.Name
		}
	}
	return OutsideLocation
}
