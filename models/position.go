package models

import (
	"errors"
	"fmt"
	"strings"
)

// Position is an immutable grid coordinate
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pos is shorthand for building a Position
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Translate returns the position one step away in the given direction
func (p Position) Translate(d Direction) Position {
	dx, dy := d.Offset()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Add offsets the position by (dx, dy)
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// ManhattanDistance is |dx| + |dy|
func (p Position) ManhattanDistance(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// ChebyshevDistance is max(|dx|, |dy|)
func (p Position) ChebyshevDistance(o Position) int {
	dx, dy := abs(p.X-o.X), abs(p.Y-o.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// Touches reports whether o is the same cell or one orthogonal step away.
func (p Position) Touches(o Position) bool {
	return p.ManhattanDistance(o) <= 1
}

// Surrounds reports whether o lies in the 3x3 square centred on p,
// diagonals and p itself included.
func (p Position) Surrounds(o Position) bool {
	return p.ChebyshevDistance(o) <= 1
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is a facing on the grid. Y grows downwards.
type Direction string

const (
	DirectionNone  Direction = "none"
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

var ErrInvalidDirection = errors.New("invalid direction")

// ParseDirection accepts up/down/left/right and the compass aliases north/south/west/east
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "north":
		return DirectionUp, nil
	case "down", "south":
		return DirectionDown, nil
	case "left", "west":
		return DirectionLeft, nil
	case "right", "east":
		return DirectionRight, nil
	case "none", "":
		return DirectionNone, nil
	}
	return DirectionNone, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Offset returns the (dx, dy) unit step for the direction
func (d Direction) Offset() (int, int) {
	switch d {
	case DirectionUp:
		return 0, -1
	case DirectionDown:
		return 0, 1
	case DirectionLeft:
		return -1, 0
	case DirectionRight:
		return 1, 0
	}
	return 0, 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
