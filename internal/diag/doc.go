// Package diag defines the diagnostic model shared by the lexer, the parser
// and the driver.
//
// Diagnostic is the central record: a Severity, a stable Code, a short
// message, the primary source.Span and optional notes pointing at related
// spans. Producers emit through a Reporter so they never depend on where
// diagnostics end up; BagReporter collects them into a Bag which supports
// sorting and deduplication.
//
// Package diag does not format anything for terminals; rendering lives in
// internal/diagfmt. SourceCodeError is the one exception: it is a plain error
// value for hosts that only want "where and what".
package diag
