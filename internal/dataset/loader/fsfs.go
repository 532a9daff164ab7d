package loader

import (
	"context"
	"errors"
	"io/fs"
)

// loadFromFS reads name from filesystem, typically an embedded dataset
// bundle. name is an fs.FS path, so it is slash separated and unrooted.
func loadFromFS(ctx context.Context, filesystem fs.FS, name string) ([]byte, error) {
	if filesystem == nil {
		return nil, errors.New("dataset loader: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("dataset loader: fs path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(filesystem, name)
}
