// Package lexer recognises ECMAScript input elements.
//
// The lexical grammar is expressed with the grammar package and built once
// at start-up. Next performs one recognition step at a position under a goal
// symbol; Recognize matches any single lexical production; Lexer streams a
// whole file, turning every step into a token.Token and reporting
// unrecognised input through a diag.Reporter.
package lexer
