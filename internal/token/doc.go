// Package token defines ECMAScript token kinds, goal symbols and the
// literal tables (reserved words, punctuators) the lexical grammar is built from.
// Invariants:
//   - Token.Text is exactly the source text of Token.Span.
//   - Trivia (white space, line terminators, comments) are ordinary tokens;
//     concatenating every token of a stream reproduces the input.
//   - ReservedWord and IdentifierName are distinct kinds even though they
//     share the same character grammar.
package token
