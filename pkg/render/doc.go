// Package render defines the renderer contract shared by the HTML, text and
// JSON outputs, a name-keyed registry, per-request render options, and theme
// resolution on top of go-theme manifests.
package render
