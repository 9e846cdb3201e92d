// Package gamemap implements the tile grid the simulation plays out on:
// typed tiles with a walkable set, named rectangular zones, and
// four-directional A* pathfinding with an externally supplied occupied-cell
// exclusion set for agent collision avoidance.
package gamemap
