package dataset

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// SourceKind identifies where a dataset document lives.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source points at a dataset document.
type Source interface {
	Kind() SourceKind
	Location() string
}

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a document inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }
func (s urlSource) Kind() SourceKind { return SourceKindURL }

// SourceFromURL validates raw and returns a Source for an HTTP(S) endpoint.
func SourceFromURL(raw string) (Source, error) {
	parsed, err := url.ParseRequestURI(raw)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("dataset: invalid URL %q", raw)
	}
	return urlSource{raw: parsed.String()}, nil
}

// ParseSource treats http:// and https:// locations as URLs and everything
// else as a file path.
func ParseSource(raw string) (Source, error) {
	target := strings.TrimSpace(raw)
	if target == "" {
		return nil, errors.New("dataset: source is required")
	}
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return SourceFromURL(target)
	}
	return SourceFromFile(target), nil
}
