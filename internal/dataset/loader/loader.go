// Package loader fetches reference dataset documents from disk, an fs.FS or
// HTTP and hands them to dataset.Parse. Unlike a general document loader it
// returns parsed datasets, so a source that yields bytes which do not form a
// valid reference table fails here rather than at first use.
package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-cellcount/pkg/dataset"
)

// Loader implements dataset.Loader by delegating to file, fs.FS, or HTTP
// strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// Ensure the implementation satisfies the public interface.
var _ dataset.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options dataset.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTP:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches the document behind src and parses it into a Dataset.
func (l *Loader) Load(ctx context.Context, src dataset.Source) (*dataset.Dataset, error) {
	if src == nil {
		return nil, errors.New("dataset loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case dataset.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case dataset.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case dataset.SourceKindURL:
		if !l.allowHTTP {
			return nil, errors.New("dataset loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.New("dataset loader: unsupported source kind")
	}
	if err != nil {
		return nil, err
	}

	return dataset.Parse(data, src.Location())
}
