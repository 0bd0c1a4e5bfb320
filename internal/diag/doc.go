// Package diag defines the diagnostic model shared by the semantic passes.
//
// A Diagnostic carries a Severity, a stable Code, a short Message, the
// primary source.Span and optional Notes pointing at related declarations.
// Producers emit through a Reporter (usually a BagReporter) so they do not
// depend on storage; the driver keeps one Bag per compilation unit and sorts
// and deduplicates it before handing it to internal/diagfmt.
//
// Internal compiler faults are not diagnostics: they travel as Go errors and
// abort the run.
package diag
