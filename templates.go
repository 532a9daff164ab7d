package cellcount

import (
	"io/fs"

	"github.com/goliatone/go-cellcount/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
