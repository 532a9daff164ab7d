package render

import (
	"context"

	"github.com/goliatone/go-cellcount/pkg/model"
)

// Renderer converts a Page into a byte representation (HTML, text, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page model.Page, options RenderOptions) ([]byte, error)
}
