// Package json renders the estimate payload served by the HTTP API and
// printed by "cellcount estimate --output json".
package json

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-cellcount/pkg/model"
	"github.com/goliatone/go-cellcount/pkg/render"
)

// Payload is the wire form of one estimate. Estimate and Query are null when
// undefined.
type Payload struct {
	Input        string   `json:"input"`
	Query        *float64 `json:"query"`
	Estimate     *float64 `json:"estimate"`
	Formatted    string   `json:"formatted"`
	NearestIndex int      `json:"nearestIndex"`
	InRange      bool     `json:"inRange"`
}

// TablePayload is the wire form of the reference table.
type TablePayload struct {
	Name        string       `json:"name,omitempty"`
	Version     string       `json:"version,omitempty"`
	Description string       `json:"description,omitempty"`
	Units       TableUnits   `json:"units"`
	Points      [][2]float64 `json:"points"`
}

type TableUnits struct {
	OpticalDensity string `json:"opticalDensity,omitempty"`
	CellCount      string `json:"cellCount,omitempty"`
}

// NewPayload projects page onto the estimate payload.
func NewPayload(page model.Page) Payload {
	return Payload{
		Input:        page.Input,
		Query:        page.Query,
		Estimate:     page.Estimate,
		Formatted:    page.EstimateLabel,
		NearestIndex: page.NearestIndex,
		InRange:      page.InRange(),
	}
}

// NewTablePayload projects the page rows and dataset metadata onto the table
// payload.
func NewTablePayload(page model.Page) TablePayload {
	points := make([][2]float64, 0, len(page.Rows))
	for _, row := range page.Rows {
		points = append(points, [2]float64{row.OpticalDensity, row.CellCount})
	}
	return TablePayload{
		Name:        page.Dataset.Name,
		Version:     page.Dataset.Version,
		Description: page.Dataset.Description,
		Units: TableUnits{
			OpticalDensity: page.Dataset.XUnit,
			CellCount:      page.Dataset.YUnit,
		},
		Points: points,
	}
}

type Option func(*Renderer)

// WithIndent pretty prints the payload.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// WithTable renders the table payload instead of the estimate.
func WithTable() Option {
	return func(r *Renderer) {
		r.table = true
	}
}

type Renderer struct {
	indent string
	table  bool
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	if r.table {
		return "json-table"
	}
	return "json"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(ctx context.Context, page model.Page, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value any = NewPayload(page)
	if r.table {
		value = NewTablePayload(page)
	}

	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = json.MarshalIndent(value, "", r.indent)
	} else {
		out, err = json.Marshal(value)
	}
	if err != nil {
		return nil, fmt.Errorf("json renderer: marshal: %w", err)
	}
	return append(out, '\n'), nil
}
