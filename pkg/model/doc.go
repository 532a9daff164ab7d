// Package model defines the page model consumed by renderers. A Builder
// holds the process-wide dataset and turns each committed input string into
// a Page: the parsed query, the interpolated estimate (when defined), the
// nearest reference row, and the formatted reference table. Renderers only
// format what the Page carries; they never compute estimates themselves.
//
// Float fields that may be undefined are pointers so a Page always survives
// JSON encoding (NaN has no JSON form).
package model
