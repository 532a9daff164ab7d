package model

// Row is one reference point as displayed in the table and chart.
type Row struct {
	Index               int     `json:"index"`
	OpticalDensity      float64 `json:"opticalDensity"`
	CellCount           float64 `json:"cellCount"`
	OpticalDensityLabel string  `json:"opticalDensityLabel"`
	CellCountLabel      string  `json:"cellCountLabel"`
	// AxisLabel is the category label used on the chart's x axis.
	AxisLabel string `json:"axisLabel"`
	Nearest   bool   `json:"nearest,omitempty"`
}

// DatasetInfo carries the dataset metadata shown alongside the table.
type DatasetInfo struct {
	Name        string `json:"name,omitempty"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source,omitempty"`
	XUnit       string `json:"xUnit,omitempty"`
	YUnit       string `json:"yUnit,omitempty"`
	MinLabel    string `json:"minLabel"`
	MaxLabel    string `json:"maxLabel"`
}

// Page is the view state for one committed input value.
type Page struct {
	Input string `json:"input"`
	// Query is nil when the input did not parse to a finite number.
	Query *float64 `json:"query"`
	// Estimate is nil when the query is malformed or out of range.
	Estimate      *float64 `json:"estimate"`
	EstimateLabel string   `json:"formatted"`
	NearestIndex  int      `json:"nearestIndex"`
	// Highlight marks the nearest row on the chart; it is only set when an
	// estimate exists.
	Highlight bool        `json:"highlight"`
	Rows      []Row       `json:"rows,omitempty"`
	Dataset   DatasetInfo `json:"dataset"`
}

// InRange reports whether the page carries an estimate.
func (p Page) InRange() bool {
	return p.Estimate != nil
}

// NearestRow returns the highlighted row, if any.
func (p Page) NearestRow() (Row, bool) {
	if !p.Highlight || p.NearestIndex < 0 || p.NearestIndex >= len(p.Rows) {
		return Row{}, false
	}
	return p.Rows[p.NearestIndex], true
}
