package text_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-cellcount/pkg/render"
	"github.com/goliatone/go-cellcount/pkg/renderers/text"
	"github.com/goliatone/go-cellcount/pkg/testsupport"
)

func TestRenderer_RenderInRange(t *testing.T) {
	out, err := text.New().Render(testsupport.Context(), testsupport.ScenarioPage(t, "0.15"), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	lines := strings.Split(string(out), "\n")
	if lines[0] != "0.15 = 200 cells/mL" {
		t.Fatalf("unexpected estimate line: %q", lines[0])
	}
	report := string(out)
	for _, want := range []string{"Optical Density", "0.100", "0.200", "300"} {
		if !strings.Contains(report, want) {
			t.Errorf("expected report to contain %q\n%s", want, report)
		}
	}
	if strings.Count(report, "<") != 1 {
		t.Errorf("expected exactly one nearest marker\n%s", report)
	}
}

func TestRenderer_RenderUndefined(t *testing.T) {
	cases := map[string]string{
		"":     `"" = - (range 0.100 to 0.200)`,
		"abc":  "abc = - (range 0.100 to 0.200)",
		"0.05": "0.05 = - (range 0.100 to 0.200)",
	}
	for raw, want := range cases {
		out, err := text.New(text.WithoutTable()).Render(testsupport.Context(), testsupport.ScenarioPage(t, raw), render.RenderOptions{})
		if err != nil {
			t.Fatalf("render %q: %v", raw, err)
		}
		if got := string(out); got != want+"\n" {
			t.Errorf("input %q: got %q want %q", raw, got, want)
		}
	}
}

func TestRenderer_Markdown(t *testing.T) {
	out, err := text.New(text.WithStyle(text.StyleMarkdown)).Render(testsupport.Context(), testsupport.ScenarioPage(t, "0.2"), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "| 1 | 0.200 | 300 | < |") {
		t.Fatalf("expected markdown row for the nearest point\n%s", out)
	}
}
