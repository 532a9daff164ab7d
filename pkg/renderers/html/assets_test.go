package html

import (
	"io/fs"
	"strings"
	"testing"
)

func TestAssetsFSRuntimeDebouncesInput(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), RuntimeScriptName)
	if err != nil {
		t.Fatalf("expected runtime script to be readable: %v", err)
	}
	if !strings.Contains(string(data), "data-cc-debounce") {
		t.Fatalf("expected runtime script to read the debounce attribute")
	}
}

func TestAssetsFSStylesheetUsesThemeVariables(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), "var(--highlight") {
		t.Fatalf("expected stylesheet to consume the highlight token")
	}
}
