package chart_test

import (
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cellcount/pkg/chart"
	"github.com/goliatone/go-cellcount/pkg/render"
	"github.com/goliatone/go-cellcount/pkg/testsupport"
)

func TestRenderer_UsesThemeColours(t *testing.T) {
	renderer := chart.NewRenderer(chart.WithSize(640, 320))
	if renderer.ContentType() != "image/svg+xml" {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}

	cfg := &theme.RendererConfig{Tokens: map[string]string{
		render.TokenLine:      "#123456",
		render.TokenHighlight: "#abcdef",
	}}
	out, err := renderer.Render(testsupport.Context(), testsupport.ScenarioPage(t, "0.15"), render.RenderOptions{Theme: cfg})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	svg := string(out)
	if !strings.HasPrefix(strings.TrimSpace(svg), "<svg") {
		t.Fatalf("expected svg document, got %.40q", svg)
	}
	for _, want := range []string{"rgba(18,52,86,", "rgba(171,205,239,", `width="640"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("expected svg to contain %q", want)
		}
	}
}
