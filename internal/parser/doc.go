// Package parser assembles the top-level shape of ECMAScript source text:
// a Script or a Module made of statement lists. Tokens are not produced
// up front; the syntactic rules call into the lexical grammar directly and
// separators are skipped between children according to the skip policy.
//
// Only EmptyStatement and DebuggerStatement are recognised as statements
// so far; anything else is reported as an unexpected token.
package parser
