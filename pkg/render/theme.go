package render

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Token names understood by the built-in renderers.
const (
	TokenBackground = "background"
	TokenSurface    = "surface"
	TokenText       = "text"
	TokenMuted      = "muted"
	TokenLine       = "line"
	TokenHighlight  = "highlight"
)

// DefaultThemeName names the built-in manifest.
const DefaultThemeName = "cellcount"

// DefaultManifest is the built-in theme: a dark page (as the original
// single-page app used) with a light variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenBackground: "#5c5f66",
			TokenSurface:    "#ffffff",
			TokenText:       "#000000",
			TokenMuted:      "#868e96",
			TokenLine:       "#2caffe",
			TokenHighlight:  "#ff0000",
		},
		Variants: map[string]theme.Variant{
			"light": {
				Tokens: map[string]string{
					TokenBackground: "#f1f3f5",
				},
			},
		},
	}
}

// NewThemeRegistry validates and registers manifests in a go-theme memory
// registry. Without arguments it holds DefaultManifest.
func NewThemeRegistry(manifests ...*theme.Manifest) (*theme.MemoryRegistry, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{DefaultManifest()}
	}
	registry := theme.NewRegistry()
	for _, manifest := range manifests {
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("render: register theme: %w", err)
		}
	}
	return registry, nil
}

// SelectTheme resolves name and variant through selector. go-theme accepts any
// variant name and falls back to base tokens; here a variant the manifest
// does not declare is an error.
func SelectTheme(selector theme.ThemeSelector, name, variant string) (*theme.Selection, error) {
	if selector == nil {
		return nil, fmt.Errorf("render: theme selector is required")
	}
	selection, err := selector.Select(name, strings.TrimSpace(variant))
	if err != nil {
		return nil, fmt.Errorf("render: select theme: %w", err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, fmt.Errorf("render: theme %q resolved to no manifest", name)
	}
	if selection.Variant != "" {
		if _, ok := selection.Manifest.Variants[selection.Variant]; !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", selection.Manifest.Name, selection.Variant)
		}
	}
	return selection, nil
}

// RendererTheme derives the renderer configuration for selection.
func RendererTheme(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	cfg := selection.RendererTheme(nil)
	return &cfg
}

// ThemeToken returns the token value or fallback when cfg is nil or the
// token is unset.
func ThemeToken(cfg *theme.RendererConfig, name, fallback string) string {
	if cfg == nil {
		return fallback
	}
	if v := strings.TrimSpace(cfg.Tokens[name]); v != "" {
		return v
	}
	return fallback
}

// CSSDeclarations renders the CSS variables of cfg as sorted "name: value;"
// pairs for a style attribute.
func CSSDeclarations(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	names := make([]string, 0, len(cfg.CSSVars))
	for name := range cfg.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %s;", name, cfg.CSSVars[name])
	}
	return b.String()
}
