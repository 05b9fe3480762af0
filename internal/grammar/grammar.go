package grammar

import (
	"errors"
	"fmt"

	"github.com/arhadthedev/embedded-ecmascript/internal/ast"
)

type ruleKey struct {
	rule   ast.Rule
	params ast.Params
}

type ruleCell struct {
	key     ruleKey
	body    Matcher
	defined int
	used    bool
}

// Grammar is a table of named rules. Rules refer to each other through Ref,
// which resolves lazily, so definition order does not matter and rules may
// be recursive.
type Grammar struct {
	name  string
	cells map[ruleKey]*ruleCell
	order []ruleKey
	skip  Matcher
}

// New creates an empty grammar. name only appears in error messages.
func New(name string) *Grammar {
	return &Grammar{name: name, cells: make(map[ruleKey]*ruleCell)}
}

// Name returns the grammar name.
func (g *Grammar) Name() string { return g.name }

func (g *Grammar) cell(k ruleKey) *ruleCell {
	c, ok := g.cells[k]
	if !ok {
		c = &ruleCell{key: k}
		g.cells[k] = c
		g.order = append(g.order, k)
	}
	return c
}

// Define sets the body of rule r.
func (g *Grammar) Define(r ast.Rule, body Matcher) {
	g.DefineParams(r, 0, body)
}

// DefineParams sets the body of rule r instantiated with parameters p.
func (g *Grammar) DefineParams(r ast.Rule, p ast.Params, body Matcher) {
	c := g.cell(ruleKey{r, p})
	c.body = body
	c.defined++
}

// SetSkip installs the separator matcher used by compound scopes.
func (g *Grammar) SetSkip(m Matcher) { g.skip = m }

// Ref returns a matcher for rule r that produces an r node.
func (g *Grammar) Ref(r ast.Rule) Matcher {
	return g.RefParams(r, 0)
}

// RefParams returns a matcher for rule r instantiated with parameters p.
func (g *Grammar) RefParams(r ast.Rule, p ast.Params) Matcher {
	c := g.cell(ruleKey{r, p})
	c.used = true
	return func(s *State) bool {
		if c.body == nil {
			if s.err == nil {
				s.err = g.undefined(c.key)
			}
			return false
		}
		return s.node(c.key.rule, c.key.params, c.body, true)
	}
}

// Lookup returns a matcher for an already defined rule, for embedding into
// another grammar. Unlike Ref it never modifies the table, so it is safe to
// call once the grammar is in use. The body runs as an atomic scope: the
// embedding grammar sees the rule as one token.
func (g *Grammar) Lookup(r ast.Rule) (Matcher, bool) {
	c, ok := g.cells[ruleKey{r, 0}]
	if !ok || c.body == nil {
		return nil, false
	}
	body := Atomic(c.body)
	return func(s *State) bool {
		return s.node(c.key.rule, 0, body, true)
	}, true
}

// Has reports whether rule r has a body.
func (g *Grammar) Has(r ast.Rule) bool {
	c, ok := g.cells[ruleKey{r, 0}]
	return ok && c.body != nil
}

func (g *Grammar) undefined(k ruleKey) error {
	return &GrammarError{Grammar: g.name, Rule: k.rule, Params: k.params, Reason: "referenced but never defined"}
}

// Validate checks that every referenced rule is defined exactly once.
func (g *Grammar) Validate() error {
	var errs []error
	for _, k := range g.order {
		c := g.cells[k]
		switch {
		case c.body == nil && c.used:
			errs = append(errs, g.undefined(k))
		case c.defined > 1:
			errs = append(errs, &GrammarError{Grammar: g.name, Rule: k.rule, Params: k.params, Reason: "defined more than once"})
		case !k.rule.Valid():
			errs = append(errs, &GrammarError{Grammar: g.name, Rule: k.rule, Params: k.params, Reason: "unknown rule"})
		}
	}
	return errors.Join(errs...)
}

// MustValidate panics when Validate fails. Meant for package initialisers.
func (g *Grammar) MustValidate() *Grammar {
	if err := g.Validate(); err != nil {
		panic(err)
	}
	return g
}

// Options tune a single Parse or Match call.
type Options struct {
	// MaxDepth limits rule nesting; zero means DefaultMaxDepth.
	MaxDepth int
	// Skip replaces the grammar separator matcher for this call.
	Skip Matcher
}

func (g *Grammar) run(r ast.Rule, src []byte, pos int, opts Options, full bool) (ast.Node, error) {
	c, ok := g.cells[ruleKey{r, 0}]
	if !ok || c.body == nil {
		return ast.Node{}, g.undefined(ruleKey{r, 0})
	}
	// корневой узел не попадает в expected: полезнее видеть его альтернативы
	return g.exec(r, src, pos, opts, full, func(s *State) bool {
		return s.node(r, 0, c.body, false)
	})
}

func (g *Grammar) exec(r ast.Rule, src []byte, pos int, opts Options, full bool, root Matcher) (ast.Node, error) {
	skip := g.skip
	if opts.Skip != nil {
		skip = opts.Skip
	}
	s := newState(src, pos, skip, opts.MaxDepth)
	ok := root(s)
	if ok && full {
		ok = EOI(s)
	}
	if s.err != nil {
		return ast.Node{}, s.err
	}
	if !ok {
		return ast.Node{}, s.syntaxError()
	}
	if len(s.nodes) != 1 {
		return ast.Node{}, &GrammarError{Grammar: g.name, Rule: r, Reason: fmt.Sprintf("root produced %d nodes", len(s.nodes))}
	}
	return s.nodes[0], nil
}

// Parse matches rule r against the whole of src.
func (g *Grammar) Parse(r ast.Rule, src []byte, opts Options) (ast.Node, error) {
	return g.run(r, src, 0, opts, true)
}

// ParseInline matches m against the whole of src, for productions that have
// no table entry of their own, such as a List built inline. m must produce
// exactly one node; r only names it in errors.
func (g *Grammar) ParseInline(r ast.Rule, m Matcher, src []byte, opts Options) (ast.Node, error) {
	return g.exec(r, src, 0, opts, true, m)
}

// Match matches rule r as a prefix of src[pos:]. Node offsets are absolute
// positions in src.
func (g *Grammar) Match(r ast.Rule, src []byte, pos int, opts Options) (ast.Node, error) {
	if pos < 0 || pos > len(src) {
		return ast.Node{}, &SyntaxError{Pos: pos}
	}
	return g.run(r, src, pos, opts, false)
}
