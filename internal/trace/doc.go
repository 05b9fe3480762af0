// Package trace records what the tokenizer, the parser and the driver are
// doing, for diagnosing slow or stuck inputs.
//
// # Tracers
//
//   - Nop: used when tracing is off
//   - StreamTracer: buffered text or NDJSON lines on an io.Writer
//   - Recorder: keeps the last N events in memory
//   - SlogTracer: forwards events to log/slog handlers
//   - Tee: fans out to several tracers
//
// # Levels and scopes
//
// LevelPhase shows driver and pass boundaries, LevelDetail adds one span
// per file, LevelDebug adds rule-level events such as the alternatives that
// were expected where a parse failed. Failures are kept from LevelError up.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeFile, "parse-file")
//	defer span.End("")
package trace
