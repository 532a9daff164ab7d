package cellcount

import (
	internalLoader "github.com/goliatone/go-cellcount/internal/dataset/loader"
	"github.com/goliatone/go-cellcount/pkg/dataset"
)

// NewLoader constructs a dataset loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...dataset.LoaderOption) dataset.Loader {
	cfg := dataset.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}
