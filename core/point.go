package core

// Point is a position on the tile grid.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// ManhattanDistance returns the L1 distance between p and q.
func (p Point) ManhattanDistance(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// ChebyshevDistance returns the L∞ distance between p and q, the metric used
// for "nearby" queries so diagonal neighbors count as adjacent.
func (p Point) ChebyshevDistance(q Point) int {
	dx, dy := abs(p.X-q.X), abs(p.Y-q.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Direction is a cardinal facing on the grid.
type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Delta returns the unit translation for the direction. Unknown directions
// return the zero point.
func (d Direction) Delta() Point {
	switch d {
	case DirectionUp:
		return Point{Y: -1}
	case DirectionDown:
		return Point{Y: 1}
	case DirectionLeft:
		return Point{X: -1}
	case DirectionRight:
		return Point{X: 1}
	default:
		return Point{}
	}
}
