package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// loadFile reads a dataset from disk. Relative paths resolve against the
// working directory so error messages carry the absolute location.
func loadFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("dataset loader: file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}
