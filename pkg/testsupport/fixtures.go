package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cellcount/pkg/dataset"
	"github.com/goliatone/go-cellcount/pkg/model"
)

// ScenarioJSON is the two-point table used throughout the tests:
// (0.1, 100) and (0.2, 300).
const ScenarioJSON = `{
  "version": "test-1",
  "name": "Scenario",
  "units": {"opticalDensity": "OD600", "cellCount": "cells/mL"},
  "points": [[0.1, 100], [0.2, 300]]
}`

// CurveJSON is a longer fixture with a non-uniform spacing.
const CurveJSON = `[[0.05,1000],[0.1,2500],[0.25,8000],[0.4,20000],[0.8,65000]]`

// MustParseDataset parses an inline dataset document.
func MustParseDataset(t *testing.T, data string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Parse([]byte(data), "inline")
	if err != nil {
		t.Fatalf("parse dataset: %v", err)
	}
	return ds
}

// ScenarioDataset returns the parsed ScenarioJSON fixture.
func ScenarioDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	return MustParseDataset(t, ScenarioJSON)
}

// ScenarioPage builds a page for raw against the scenario fixture.
func ScenarioPage(t *testing.T, raw string) model.Page {
	t.Helper()
	return model.NewBuilder(ScenarioDataset(t)).Build(raw)
}

// LoadDataset reads a dataset fixture from disk, returning an error for
// callers managing setup outside of *testing.T.
func LoadDataset(path string) (*dataset.Dataset, error) {
	if path == "" {
		return nil, errors.New("testsupport: dataset path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read dataset: %w", err)
	}
	return dataset.Parse(data, path)
}

// WriteDatasetFile writes data into a temp dir and returns the file path.
func WriteDatasetFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
