// Package tasks implements the two pipelines of the application.
//
// The core abstraction is CuratorEngine, which orchestrates playlist
// generation (title -> genre -> prompt -> provider -> parsed song list) and
// fulfillment (remote playlist creation, concurrent track resolution, batch
// addition). Operations emit progress updates via channels for non-blocking
// status reporting to CLI/UI layers.
//
// Fulfillment is at-least-partial-success: a single song failing to resolve
// never aborts the run. Only playlist creation and the final batch add are
// fatal.
package tasks
