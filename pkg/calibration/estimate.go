package calibration

import (
	"math"
	"strconv"
	"strings"
)

// Estimate linearly interpolates the cell count for query. The second return
// value is false when query is NaN, infinite, or outside the table range;
// values are never extrapolated.
//
// The bracketing segment is the first point whose X strictly exceeds query and
// the point before it, so a query equal to a sample X interpolates from that
// sample. A query equal to the last X uses the final segment. No exact-match
// shortcut is taken.
func Estimate(query float64, t *Table) (float64, bool) {
	if t.Len() < 2 || !t.Contains(query) {
		return 0, false
	}

	n := t.Len()
	lower, upper := t.points[n-2], t.points[n-1]
	for i := 1; i < n; i++ {
		if t.points[i].X > query {
			lower, upper = t.points[i-1], t.points[i]
			break
		}
	}

	proportion := (query - lower.X) / (upper.X - lower.X)
	return lower.Y + proportion*(upper.Y-lower.Y), true
}

// NearestIndex returns the index of the point whose X is closest to query.
// Ties keep the lower index. A NaN query matches nothing and yields 0.
func NearestIndex(query float64, t *Table) int {
	best := 0
	for i := 1; i < t.Len(); i++ {
		if math.Abs(t.points[i].X-query) < math.Abs(t.points[best].X-query) {
			best = i
		}
	}
	return best
}

// ParseQuery converts raw user input into a query value. Blank or malformed
// text becomes NaN, which Estimate treats as out of range. Only decimal
// notation is accepted: Go literal forms such as digit separators ("1_0")
// and hexadecimal floats ("0x1p-3") are malformed.
func ParseQuery(raw string) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.Contains(trimmed, "_") || isHexLiteral(trimmed) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
