// Package grammar is a small PEG engine: ordered choice, sequences,
// repetition, lookahead and atomic/compound scopes over a byte buffer.
//
// Matchers never panic and never return errors for ordinary mismatches.
// A failed matcher leaves the state exactly as it found it; the caller
// decides whether to try another alternative. Named rules (Node, Grammar.Ref)
// produce ast.Node values and take part in furthest-failure tracking, which
// is what a SyntaxError reports.
//
// A Grammar is built once, usually from a package initialiser, and is safe
// for concurrent use afterwards: every Parse/Match call owns its State.
package grammar
