package testkit_test

import (
	"strings"
	"testing"

	"github.com/arhadthedev/embedded-ecmascript/internal/ast"
	"github.com/arhadthedev/embedded-ecmascript/internal/lexer"
	"github.com/arhadthedev/embedded-ecmascript/internal/parser"
	"github.com/arhadthedev/embedded-ecmascript/internal/source"
	"github.com/arhadthedev/embedded-ecmascript/internal/testkit"
	"github.com/arhadthedev/embedded-ecmascript/internal/token"
)

func TestParsedTreesPassInvariants(t *testing.T) {
	srcs := []string{
		"",
		";",
		"#!/usr/bin/env node\n;debugger;",
		"  ; /* c */ debugger ;\n",
		strings.Repeat(";", 5000),
	}
	for _, src := range srcs {
		for _, goal := range []parser.Goal{parser.GoalScript, parser.GoalModule} {
			fs := source.NewFileSet()
			f := fs.Get(fs.AddVirtual("t.js", []byte(src)))
			res := parser.ParseFile(f, goal, parser.Options{Skip: parser.SkipTrivia})
			if !res.OK() {
				t.Fatalf("%s %q: %v", goal, src, res.Err)
			}
			if err := testkit.CheckNodeInvariants(&res.Root, f.Content); err != nil {
				t.Errorf("%s %q: %v", goal, src, err)
			}
		}
	}
}

func TestCheckNodeInvariantsRejects(t *testing.T) {
	src := []byte("abcdef")
	tests := []struct {
		name string
		root ast.Node
	}{
		{"past end", ast.Node{Rule: ast.Script, Start: 0, End: 7}},
		{"child outside", ast.Node{Rule: ast.Script, Start: 1, End: 4, Children: []ast.Node{
			{Rule: ast.EmptyStatement, Start: 0, End: 2},
		}}},
		{"overlap", ast.Node{Rule: ast.Script, Start: 0, End: 6, Children: []ast.Node{
			{Rule: ast.EmptyStatement, Start: 0, End: 3},
			{Rule: ast.EmptyStatement, Start: 2, End: 4},
		}}},
		{"gap between children", ast.Node{Rule: ast.Script, Start: 0, End: 4, Children: []ast.Node{
			{Rule: ast.EmptyStatement, Start: 0, End: 1},
			{Rule: ast.EmptyStatement, Start: 2, End: 4},
		}}},
		{"uncovered prefix", ast.Node{Rule: ast.PrivateIdentifier, Start: 0, End: 4, Children: []ast.Node{
			{Rule: ast.IdentifierName, Start: 1, End: 4},
		}}},
		{"uncovered tail", ast.Node{Rule: ast.Script, Start: 0, End: 4, Children: []ast.Node{
			{Rule: ast.EmptyStatement, Start: 0, End: 3},
		}}},
		{"invalid rule", ast.Node{Rule: ast.Script, Start: 0, End: 6, Children: []ast.Node{
			{Start: 0, End: 1},
		}}},
	}
	for _, tt := range tests {
		if err := testkit.CheckNodeInvariants(&tt.root, src); err == nil {
			t.Errorf("%s: accepted", tt.name)
		}
	}
}

func TestTokenStreamsPassInvariants(t *testing.T) {
	srcs := []string{
		"",
		"#!x\nlet a = b / c;",
		"x @ y \xff z",
		"/* never closed",
		"a?.5:b",
	}
	for _, src := range srcs {
		fs := source.NewFileSet()
		f := fs.Get(fs.AddVirtual("t.js", []byte(src)))
		toks := lexer.Tokenize(f, lexer.Options{})
		if err := testkit.CheckTokenStream(toks, f.Content); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestCheckTokenStreamRejects(t *testing.T) {
	src := []byte("ab")
	eof := token.Token{Kind: token.EOF, Span: source.Span{Start: 2, End: 2}}
	tests := []struct {
		name string
		toks []token.Token
	}{
		{"empty", nil},
		{"gap", []token.Token{
			{Kind: token.IdentifierName, Span: source.Span{Start: 1, End: 2}, Text: "b"},
			eof,
		}},
		{"text mismatch", []token.Token{
			{Kind: token.IdentifierName, Span: source.Span{Start: 0, End: 2}, Text: "xy"},
			eof,
		}},
		{"no eof", []token.Token{
			{Kind: token.IdentifierName, Span: source.Span{Start: 0, End: 2}, Text: "ab"},
		}},
		{"short", []token.Token{
			{Kind: token.IdentifierName, Span: source.Span{Start: 0, End: 1}, Text: "a"},
			{Kind: token.EOF, Span: source.Span{Start: 1, End: 1}},
		}},
	}
	for _, tt := range tests {
		if err := testkit.CheckTokenStream(tt.toks, src); err == nil {
			t.Errorf("%s: accepted", tt.name)
		}
	}
}
