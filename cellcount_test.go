package cellcount

import (
	"context"
	"math"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cellcount/pkg/render"
	"github.com/goliatone/go-cellcount/pkg/testsupport"
)

func TestEstimateFacade(t *testing.T) {
	table, err := NewTable([]ReferencePoint{{X: 0.1, Y: 100}, {X: 0.2, Y: 300}})
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	got, ok := Estimate(0.15, table)
	if !ok || math.Abs(got-200) > 1e-9 {
		t.Fatalf("Estimate(0.15) = %v, %v", got, ok)
	}
	if _, ok := Estimate(0.05, table); ok {
		t.Fatalf("expected out of range reading to be undefined")
	}
	if idx := NearestIndex(0.12, table); idx != 0 {
		t.Fatalf("NearestIndex(0.12) = %d", idx)
	}
}

func TestLoadDatasetAndGenerate(t *testing.T) {
	path := testsupport.WriteDatasetFile(t, "scenario.json", testsupport.ScenarioJSON)

	ds, err := LoadDataset(context.Background(), path)
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	if ds.Table().Len() != 2 {
		t.Fatalf("unexpected table length %d", ds.Table().Len())
	}

	out, err := GenerateHTML(context.Background(), path, "0.2", "text")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(string(out), "0.2 = 300 cells/mL") {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := LoadDataset(context.Background(), ""); err == nil {
		t.Fatalf("expected empty location to fail")
	}
}

func TestGenerateHTML_WithThemeProvider(t *testing.T) {
	path := testsupport.WriteDatasetFile(t, "scenario.json", testsupport.ScenarioJSON)

	manifest := render.DefaultManifest()
	manifest.Variants["print"] = theme.Variant{Tokens: map[string]string{render.TokenHighlight: "#000000"}}
	provider, err := render.NewThemeRegistry(manifest)
	if err != nil {
		t.Fatalf("theme registry: %v", err)
	}

	out, err := GenerateHTML(context.Background(), path, "0.15", "html",
		WithThemeProvider(provider, render.DefaultThemeName, "print"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "--highlight: #000000;") {
		t.Fatalf("expected variant token in page styles")
	}
}
