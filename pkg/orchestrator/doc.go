// Package orchestrator wires the dataset loader → page builder → renderer
// pipeline, providing dependency injection friendly helpers for consumers that
// prefer a single entry point.
package orchestrator
