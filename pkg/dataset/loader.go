package dataset

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches dataset documents from files, an fs.FS, or HTTP. The
// implementation lives in internal/dataset/loader.
type Loader interface {
	Load(ctx context.Context, src Source) (*Dataset, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS lookups.
	FileSystem fs.FS

	// HTTPClient enables URL sources. Nil keeps the loader offline unless
	// AllowHTTP is set.
	HTTPClient *http.Client

	// AllowHTTP enables URL sources with a default client.
	AllowHTTP bool

	// RequestTimeout caps remote fetch durations.
	RequestTimeout time.Duration
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS for SourceFromFS lookups.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote datasets.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTP enables remote datasets using a default client and timeout.
func WithHTTP(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTP = true
		opts.RequestTimeout = timeout
	}
}

// NewLoaderOptions applies options and returns the resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
