package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxDocumentBytes bounds remote dataset downloads.
const maxDocumentBytes = 4 << 20

// ErrDocumentTooLarge is returned when a remote dataset exceeds
// maxDocumentBytes.
var ErrDocumentTooLarge = errors.New("dataset loader: document too large")

// loadHTTP GETs url, asking for JSON or YAML. Non-2xx responses fail, and a
// body over maxDocumentBytes is rejected instead of truncated, since a cut
// points list would still parse.
func loadHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	if client == nil {
		return nil, errors.New("dataset loader: http client is not configured")
	}
	if url == "" {
		return nil, errors.New("dataset loader: url is required")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.1")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("dataset loader: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDocumentBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrDocumentTooLarge, url, maxDocumentBytes)
	}
	return data, nil
}
