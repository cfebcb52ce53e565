package shared

import (
	"fmt"
	"math"
)

// GeographicPoint is an immutable planar location on a planet's surface
type GeographicPoint struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// NewGeographicPoint creates a point from its coordinates
func NewGeographicPoint(x, y float64) GeographicPoint {
	return GeographicPoint{X: x, Y: y}
}

// DistanceTo calculates the Euclidean distance to another point
func (p GeographicPoint) DistanceTo(other GeographicPoint) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func (p GeographicPoint) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
