package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cellcount/pkg/calibration"
)

// ErrEmpty is returned when a dataset document has no content.
var ErrEmpty = errors.New("dataset: document is empty")

// Units labels the two axes of a dataset.
type Units struct {
	OpticalDensity string `json:"opticalDensity,omitempty" yaml:"opticalDensity"`
	CellCount      string `json:"cellCount,omitempty" yaml:"cellCount"`
}

// Dataset is a parsed reference dataset together with the table built from it.
type Dataset struct {
	Version     string
	Name        string
	Description string
	Units       Units
	Source      string

	table *calibration.Table
}

// Table returns the immutable calibration table.
func (d *Dataset) Table() *calibration.Table {
	if d == nil {
		return nil
	}
	return d.table
}

type documentFile struct {
	Version     string      `json:"version" yaml:"version"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Units       Units       `json:"units" yaml:"units"`
	Points      [][]float64 `json:"points" yaml:"points"`
}

// Parse decodes a dataset document, trying JSON before YAML, and builds its
// calibration table. source is only used in error messages.
func Parse(data []byte, source string) (*Dataset, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, source)
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", source, err)
	}

	points := make([]calibration.ReferencePoint, 0, len(doc.Points))
	for i, pair := range doc.Points {
		if len(pair) != 2 {
			return nil, fmt.Errorf("dataset: %s: point %d has %d values, want 2", source, i, len(pair))
		}
		points = append(points, calibration.ReferencePoint{X: pair[0], Y: pair[1]})
	}

	table, err := calibration.NewTable(points)
	if err != nil {
		return nil, fmt.Errorf("dataset: %s: %w", source, err)
	}

	return &Dataset{
		Version:     strings.TrimSpace(doc.Version),
		Name:        strings.TrimSpace(doc.Name),
		Description: sanitizeDescription(doc.Description),
		Units:       doc.Units,
		Source:      source,
		table:       table,
	}, nil
}

func decodeDocument(data []byte) (documentFile, error) {
	var doc documentFile
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	var pairs [][]float64
	if err := json.Unmarshal(data, &pairs); err == nil {
		return documentFile{Points: pairs}, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	pairs = nil
	if err := yaml.Unmarshal(data, &pairs); err == nil {
		return documentFile{Points: pairs}, nil
	}
	return documentFile{}, errors.New("invalid JSON or YAML")
}

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// sanitizeDescription keeps basic formatting markup in dataset descriptions
// and strips anything active (scripts, handlers, styles).
func sanitizeDescription(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	descriptionPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("p", "br", "em", "strong", "b", "i", "code", "sub", "sup", "ul", "ol", "li")
		policy.AllowStandardURLs()
		policy.AllowAttrs("href").OnElements("a")
		policy.RequireNoFollowOnLinks(true)
		descriptionPolicy = policy
	})
	return strings.TrimSpace(descriptionPolicy.Sanitize(trimmed))
}
