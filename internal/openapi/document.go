// Package openapi embeds the description of the JSON API, loads it with
// kin-openapi at startup and checks payloads against its response schemas.
package openapi

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var embedded []byte

// ContentType is the media type the raw document is served with.
const ContentType = "application/yaml"

// Operation summarises one documented route.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

// Document is a loaded, validated API description.
type Document struct {
	raw  []byte
	spec *openapi3.T
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*Document, error) {
	return LoadFromData(ctx, embedded)
}

// LoadFromData parses and validates raw. External references are not
// followed.
func LoadFromData(ctx context.Context, raw []byte) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: false,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}
	if err := spec.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}

	return &Document{raw: append([]byte(nil), raw...), spec: spec}, nil
}

// Raw returns the document bytes as loaded.
func (d *Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Operations lists the documented operations sorted by path then method.
func (d *Document) Operations() []Operation {
	var out []Operation
	for path, item := range d.spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			out = append(out, Operation{ID: id, Method: method, Path: path, Summary: op.Summary})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// ValidateJSON checks body against the JSON schema documented for the
// response of method+path with the given status.
func (d *Document) ValidateJSON(method, path string, status int, body []byte) error {
	item := d.spec.Paths.Find(path)
	if item == nil {
		return fmt.Errorf("openapi: path %s not documented", path)
	}
	op := item.GetOperation(strings.ToUpper(method))
	if op == nil || op.Responses == nil {
		return fmt.Errorf("openapi: %s %s not documented", method, path)
	}
	resp := op.Responses.Status(status)
	if resp == nil || resp.Value == nil {
		return fmt.Errorf("openapi: %s %s has no %d response", method, path, status)
	}
	media := resp.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return fmt.Errorf("openapi: %s %s %d has no JSON schema", method, path, status)
	}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return fmt.Errorf("openapi: decode body: %w", err)
	}
	if err := media.Schema.Value.VisitJSON(value); err != nil {
		return fmt.Errorf("openapi: %s %s: %w", method, path, err)
	}
	return nil
}
