// Package trace records what the compiler core is doing.
//
// It is the logging layer of the compiler: every pass, compilation unit and
// class load can open a span, and a tracer decides what to keep according to
// its Level. Tracers either stream events to a writer (text or NDJSON), keep
// the last N events in a ring buffer for post-mortem dumps, or both.
//
// Levels map to scopes:
//
//	phase  - driver and pass boundaries
//	detail - per compilation unit
//	debug  - per class load and member resolution
//
// The tracer travels in a context.Context (WithTracer/FromContext) or is
// handed to components explicitly; Nop is used when nothing is configured.
package trace
