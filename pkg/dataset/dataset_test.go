package dataset

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cellcount/pkg/calibration"
)

func TestParse_Formats(t *testing.T) {
	want := []calibration.ReferencePoint{{X: 0.1, Y: 100}, {X: 0.2, Y: 300}}

	cases := []struct {
		name string
		data string
	}{
		{name: "json document", data: `{"version":"v1","points":[[0.1,100],[0.2,300]]}`},
		{name: "json array", data: `[[0.1,100],[0.2,300]]`},
		{name: "yaml document", data: "version: v1\npoints:\n  - [0.1, 100]\n  - [0.2, 300]\n"},
		{name: "yaml sequence", data: "- [0.1, 100]\n- [0.2, 300]\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ds, err := Parse([]byte(tc.data), tc.name)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if diff := cmp.Diff(want, ds.Table().Points()); diff != "" {
				t.Fatalf("points mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Metadata(t *testing.T) {
	data := `
version: " 2023-06 "
name: OD600 curve
description: '<p>Measured at <em>600nm</em></p><script>alert(1)</script>'
units:
  opticalDensity: OD600
  cellCount: cells/mL
points:
  - [0.1, 100]
  - [0.2, 300]
`
	ds, err := Parse([]byte(data), "inline")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ds.Version != "2023-06" || ds.Name != "OD600 curve" || ds.Source != "inline" {
		t.Fatalf("unexpected metadata: %+v", ds)
	}
	if diff := cmp.Diff(Units{OpticalDensity: "OD600", CellCount: "cells/mL"}, ds.Units); diff != "" {
		t.Fatalf("units mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(ds.Description, "script") {
		t.Fatalf("description not sanitised: %q", ds.Description)
	}
	if !strings.Contains(ds.Description, "<em>600nm</em>") {
		t.Fatalf("description lost allowed markup: %q", ds.Description)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		data string
		want error
		msg  string
	}{
		{name: "empty", data: "  ", want: ErrEmpty},
		{name: "too few points", data: `[[0.1,100]]`, want: calibration.ErrTooFewPoints},
		{name: "unsorted", data: `[[0.2,100],[0.1,300]]`, want: calibration.ErrNotIncreasing},
		{name: "bad pair", data: `[[0.1,100,5],[0.2,300]]`, msg: "has 3 values"},
		{name: "garbage", data: `{{{`, msg: "invalid JSON or YAML"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data), tc.name)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
			if tc.msg != "" && !strings.Contains(err.Error(), tc.msg) {
				t.Fatalf("error %q does not mention %q", err, tc.msg)
			}
		})
	}
}

func TestParseSource(t *testing.T) {
	src, err := ParseSource("https://example.com/reference.json")
	if err != nil || src.Kind() != SourceKindURL {
		t.Fatalf("expected url source, got %v %v", src, err)
	}
	src, err = ParseSource(" data/reference.yaml ")
	if err != nil || src.Kind() != SourceKindFile || src.Location() != "data/reference.yaml" {
		t.Fatalf("expected file source, got %v %v", src, err)
	}
	if _, err := ParseSource(""); err == nil {
		t.Fatalf("expected error for empty source")
	}
	if _, err := SourceFromURL("http://"); err == nil {
		t.Fatalf("expected error for host-less url")
	}
}
