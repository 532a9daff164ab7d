package calibration

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrTooFewPoints is returned when a table has fewer than two points.
	ErrTooFewPoints = errors.New("calibration: table needs at least two points")
	// ErrNotIncreasing is returned when optical densities are not strictly increasing.
	ErrNotIncreasing = errors.New("calibration: optical density must be strictly increasing")
	// ErrNonFinite is returned when a point carries NaN or an infinity.
	ErrNonFinite = errors.New("calibration: point values must be finite")
)

// ReferencePoint pairs a measured optical density (X) with its cell count (Y).
type ReferencePoint struct {
	X float64 `json:"opticalDensity"`
	Y float64 `json:"cellCount"`
}

// Table is an ordered, read-only sequence of reference points.
type Table struct {
	points []ReferencePoint
}

// NewTable copies points into a Table after checking that there are at least
// two of them, that every value is finite, and that X strictly increases.
func NewTable(points []ReferencePoint) (*Table, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w (got %d)", ErrTooFewPoints, len(points))
	}
	for i, p := range points {
		if !finite(p.X) || !finite(p.Y) {
			return nil, fmt.Errorf("%w: index %d", ErrNonFinite, i)
		}
		if i > 0 && !(p.X > points[i-1].X) {
			return nil, fmt.Errorf("%w: index %d (%g after %g)", ErrNotIncreasing, i, p.X, points[i-1].X)
		}
	}
	return &Table{points: append([]ReferencePoint(nil), points...)}, nil
}

// MustTable panics when NewTable fails. Useful for fixed tables in tests.
func MustTable(points ...ReferencePoint) *Table {
	t, err := NewTable(points)
	if err != nil {
		panic(err)
	}
	return t
}

// Len reports the number of points.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.points)
}

// At returns the point at index i.
func (t *Table) At(i int) ReferencePoint {
	return t.points[i]
}

// Min returns the point with the smallest optical density.
func (t *Table) Min() ReferencePoint {
	return t.points[0]
}

// Max returns the point with the largest optical density.
func (t *Table) Max() ReferencePoint {
	return t.points[len(t.points)-1]
}

// Points returns a copy of the underlying points.
func (t *Table) Points() []ReferencePoint {
	if t == nil {
		return nil
	}
	return append([]ReferencePoint(nil), t.points...)
}

// Contains reports whether x lies inside the closed optical density range.
func (t *Table) Contains(x float64) bool {
	if t.Len() == 0 || math.IsNaN(x) {
		return false
	}
	return x >= t.Min().X && x <= t.Max().X
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
