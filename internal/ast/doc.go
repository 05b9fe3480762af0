// Package ast holds the parse tree shared by the lexical and syntactic layers.
//
// A Node names the production that matched (Rule), the byte range it
// consumed and its children in source order. Trees are built bottom-up by
// the grammar engine and are never mutated afterwards.
package ast
