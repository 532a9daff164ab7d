package cellcount

import (
	"io/fs"
	"strings"
	"testing"
)

func TestRuntimeAssetsFSContainsRuntime(t *testing.T) {
	data, err := fs.ReadFile(RuntimeAssetsFS(), "cellcount.js")
	if err != nil {
		t.Fatalf("expected runtime script to be readable: %v", err)
	}
	if !strings.Contains(string(data), "/api/estimate") {
		t.Fatalf("expected runtime to call the estimate endpoint")
	}
}

func TestEmbeddedTemplatesContainsPage(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/page.tmpl"); err != nil {
		t.Fatalf("expected page template: %v", err)
	}
}
