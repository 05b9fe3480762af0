package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"fortio.org/safecast"

	"github.com/arhadthedev/embedded-ecmascript/internal/ast"
	"github.com/arhadthedev/embedded-ecmascript/internal/diag"
	"github.com/arhadthedev/embedded-ecmascript/internal/grammar"
	"github.com/arhadthedev/embedded-ecmascript/internal/source"
	"github.com/arhadthedev/embedded-ecmascript/internal/token"
	"github.com/arhadthedev/embedded-ecmascript/internal/trace"
)

// lookahead хранит уже распознанный, но не выданный токен
type lookahead struct {
	tok   token.Token
	goal  token.Goal
	end   uint32
	diags []diag.Diagnostic
}

// Lexer streams the tokens of one file. Every byte ends up in exactly one
// token: trivia are returned like any other token, and input that matches
// nothing becomes an Invalid token plus a diagnostic.
type Lexer struct {
	file *source.File
	cur  cursor
	opts Options
	look *lookahead
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file: file,
		cur:  newCursor(file),
		opts: opts,
	}
}

// Offset returns the position of the next token.
func (lx *Lexer) Offset() uint32 {
	return lx.cur.off
}

// Next returns the next token under goal. After the end of input it keeps
// returning EOF.
func (lx *Lexer) Next(goal token.Goal) token.Token {
	if lx.look != nil && lx.look.goal == goal {
		look := lx.look
		lx.look = nil
		lx.cur.seek(look.end)
		for _, d := range look.diags {
			lx.report(d)
		}
		return look.tok
	}
	lx.look = nil
	tok, diags := lx.scan(goal)
	lx.cur.seek(tok.Span.End)
	for _, d := range diags {
		lx.report(d)
	}
	return tok
}

// Peek returns the token Next(goal) would return without consuming it.
// Diagnostics are held back until the token is consumed.
func (lx *Lexer) Peek(goal token.Goal) token.Token {
	if lx.look != nil && lx.look.goal == goal {
		return lx.look.tok
	}
	tok, diags := lx.scan(goal)
	lx.look = &lookahead{tok: tok, goal: goal, end: tok.Span.End, diags: diags}
	return tok
}

func (lx *Lexer) scan(goal token.Goal) (token.Token, []diag.Diagnostic) {
	if lx.cur.eof() {
		return token.Token{Kind: token.EOF, Span: lx.cur.span(0), Goal: goal}, nil
	}

	node, err := NextWith(lx.cur.window, lx.cur.pos(), goal, grammar.Options{MaxDepth: lx.opts.MaxDepth})
	if err == nil {
		// "/" перед незакрытым "/*" под Div не должен маскировать ошибку
		if kind, _ := token.Classify(&node); kind == token.MultiLineComment || !lx.cur.hasPrefix("/*") {
			return lx.fromNode(&node, goal)
		}
		err = grammar.ErrNoMatch
	}
	return lx.recover(goal, err)
}

func (lx *Lexer) fromNode(n *ast.Node, goal token.Goal) (token.Token, []diag.Diagnostic) {
	kind, rule := token.Classify(n)
	sp := n.Span(lx.file.ID)
	tok := token.Token{Kind: kind, Rule: rule, Span: sp, Text: lx.file.Text(sp), Goal: goal}

	var diags []diag.Diagnostic
	switch kind {
	case token.IdentifierName, token.PrivateIdentifier:
		var err error
		if kind == token.IdentifierName {
			_, err = IdentifierValue(tok.Text)
		} else {
			_, err = PrivateIdentifierValue(tok.Text)
		}
		var ee *EscapeError
		if errors.As(err, &ee) {
			at := sp
			at.Start = advance(sp.Start, sp.End, ee.Offset)
			at.End = advance(at.Start, sp.End, ee.Len)
			diags = append(diags, diag.NewError(diag.LexInvalidIdentifierEscape, at, ee.Msg))
		}
	case token.HashbangComment:
		if sp.Start != 0 {
			diags = append(diags, diag.NewError(diag.LexMisplacedHashbang, sp, "hashbang comment must start the source text"))
		}
	}
	return tok, diags
}

// advance moves from by n bytes without passing limit.
func advance(from, limit uint32, n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil || v > limit-from {
		return limit
	}
	return from + v
}

// recover turns a failed recognition step into an Invalid token so the
// stream always makes progress.
func (lx *Lexer) recover(goal token.Goal, err error) (token.Token, []diag.Diagnostic) {
	rest := lx.cur.rest()
	var (
		size int
		code diag.Code
		msg  string
	)
	switch {
	case grammar.IsInternal(err):
		size, code, msg = runeLen(rest), diag.IntBrokenGrammar, err.Error()
		if errors.Is(err, grammar.ErrDepthExceeded) {
			code = diag.IntRecursionLimit
		}
	case lx.cur.hasPrefix("/*"):
		size, code, msg = len(rest), diag.LexUnterminatedBlockComment, "unterminated block comment"
	case lx.cur.hasPrefix("#!"):
		size, code = lineLen(rest), diag.LexMisplacedHashbang
		msg = fmt.Sprintf("hashbang comment is not allowed under goal %s", goal)
	default:
		r, n := utf8.DecodeRune(rest)
		size = n
		if r == utf8.RuneError && n <= 1 {
			code, msg = diag.LexInvalidUTF8, fmt.Sprintf("invalid UTF-8 byte 0x%02X", rest[0])
		} else {
			code, msg = diag.LexUnknownChar, "unknown character "+strconv.QuoteRune(r)
		}
	}
	sp := lx.cur.span(size)
	tok := token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Text(sp), Goal: goal}
	return tok, []diag.Diagnostic{diag.NewError(code, sp, msg)}
}

func runeLen(b []byte) int {
	_, n := utf8.DecodeRune(b)
	return max(n, 1)
}

// lineLen returns the length of b up to the first line terminator.
func lineLen(b []byte) int {
	for i := 0; i < len(b); {
		r, n := utf8.DecodeRune(b[i:])
		if isLineTerminator(r) {
			return i
		}
		i += n
	}
	return len(b)
}

// Tokenize streams the whole file under opts.Policy and returns every token,
// trivia included, followed by EOF.
func Tokenize(file *source.File, opts Options) []token.Token {
	policy := opts.Policy
	if policy == nil {
		policy = DefaultGoalPolicy
	}
	span := trace.Begin(opts.Tracer, trace.ScopePass, "tokenize", opts.Parent)
	span.WithExtra("file", file.Path)

	lx := New(file, opts)
	var (
		out  []token.Token
		prev *token.Token
	)
	for {
		tok := lx.Next(policy(prev, lx.Offset()))
		out = append(out, tok)
		if tok.Kind == token.EOF {
			break
		}
		if !tok.IsTrivia() {
			prev = &out[len(out)-1]
		}
	}
	span.WithExtra("tokens", strconv.Itoa(len(out)))
	span.End("")
	return out
}
