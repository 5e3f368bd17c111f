// Package pipeline runs the full dataset build: filter raw movie rows,
// embed their text through the cached batch orchestrator, reduce the
// embedding matrix, quantize it, and write the two binary output files.
//
// The stage order is fixed. The embedding backend is probed first so a
// misconfigured host or missing model aborts the run before any work. The
// cache is persisted exactly once, after the embedding phase and optional
// pruning succeed; a failure in reduction or encoding therefore wastes no
// embedding work, while a failure during embedding saves nothing (unless
// mid-run checkpoints are configured). Output files are written through
// temp-and-rename, so a failed run never leaves partial outputs.
//
// Any stage error aborts the run; nothing is retried.
package pipeline
