package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint_Add(t *testing.T) {
	assert.Equal(t, Point{X: 3, Y: 1}, Point{X: 1, Y: 2}.Add(Point{X: 2, Y: -1}))
}

func TestPoint_ManhattanDistance(t *testing.T) {
	assert.Equal(t, 0, Point{X: 2, Y: 2}.ManhattanDistance(Point{X: 2, Y: 2}))
	assert.Equal(t, 7, Point{X: 0, Y: 0}.ManhattanDistance(Point{X: 3, Y: 4}))
	assert.Equal(t, 7, Point{X: 3, Y: 4}.ManhattanDistance(Point{X: 0, Y: 0}))
}

func TestPoint_ChebyshevDistance(t *testing.T) {
	assert.Equal(t, 1, Point{X: 0, Y: 0}.ChebyshevDistance(Point{X: 1, Y: 1}), "diagonal neighbors are adjacent")
	assert.Equal(t, 4, Point{X: 0, Y: 0}.ChebyshevDistance(Point{X: 3, Y: 4}))
	assert.Equal(t, 3, Point{X: 5, Y: 5}.ChebyshevDistance(Point{X: 2, Y: 5}))
}

func TestDirection_Delta(t *testing.T) {
	assert.Equal(t, Point{Y: -1}, DirectionUp.Delta())
	assert.Equal(t, Point{Y: 1}, DirectionDown.Delta())
	assert.Equal(t, Point{X: -1}, DirectionLeft.Delta())
	assert.Equal(t, Point{X: 1}, DirectionRight.Delta())
	assert.Equal(t, Point{}, Direction("sideways").Delta())
}
