package grammar

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"github.com/arhadthedev/embedded-ecmascript/internal/ast"
)

// DefaultMaxDepth bounds rule nesting when Options.MaxDepth is zero.
const DefaultMaxDepth = 2048

// State is the mutable cursor of a single match call.
type State struct {
	src      []byte
	pos      int
	nodes    []ast.Node
	atomic   bool
	skip     Matcher
	quiet    int
	depth    int
	maxDepth int

	furthest int
	expected []ast.Rule

	err error
}

func newState(src []byte, pos int, skip Matcher, maxDepth int) *State {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &State{
		src:      src,
		pos:      pos,
		skip:     skip,
		maxDepth: maxDepth,
		furthest: pos,
		nodes:    make([]ast.Node, 0, 16),
	}
}

// Pos returns the current byte offset.
func (s *State) Pos() int { return s.pos }

// Rest returns the unconsumed input.
func (s *State) Rest() []byte { return s.src[s.pos:] }

// AtEnd reports whether the whole input has been consumed.
func (s *State) AtEnd() bool { return s.pos >= len(s.src) }

func (s *State) restore(pos, base int) {
	s.pos = pos
	clear(s.nodes[base:])
	s.nodes = s.nodes[:base]
}

func (s *State) off(pos int) uint32 {
	v, err := safecast.Conv[uint32](pos)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return v
}

// takeChildren detaches nodes pushed since base into a fresh slice.
func (s *State) takeChildren(base int) []ast.Node {
	if len(s.nodes) == base {
		return nil
	}
	out := slices.Clone(s.nodes[base:])
	clear(s.nodes[base:])
	s.nodes = s.nodes[:base]
	return out
}

func (s *State) attemptsAt(pos int) int {
	if pos == s.furthest {
		return len(s.expected)
	}
	return 0
}

// track records a failed attempt of rule r at pos. Children that failed at
// the same position are replaced by their parent unless exactly one child
// was attempted, which is the more precise report.
func (s *State) track(r ast.Rule, pos, prev int) {
	if s.quiet > 0 || s.atomic {
		return
	}
	cur := s.attemptsAt(pos)
	if cur > prev && cur-prev == 1 {
		return
	}
	switch {
	case pos > s.furthest:
		s.furthest = pos
		s.expected = s.expected[:0]
	case pos == s.furthest:
		s.expected = s.expected[:prev]
	default:
		return
	}
	if !slices.Contains(s.expected, r) {
		s.expected = append(s.expected, r)
	}
}

// skipSeparators consumes separators between children of a compound scope.
// Separator nodes stay on the node stack so parents keep covering their text.
func (s *State) skipSeparators() {
	if s.atomic || s.skip == nil || s.err != nil {
		return
	}
	s.atomic = true
	s.quiet++
	for {
		p := s.pos
		if !s.skip(s) || s.pos == p {
			break
		}
	}
	s.quiet--
	s.atomic = false
}

// node runs body as rule r and pushes the produced node on success.
func (s *State) node(r ast.Rule, p ast.Params, body Matcher, tracked bool) bool {
	if s.err != nil {
		return false
	}
	if s.depth >= s.maxDepth {
		s.err = &DepthError{Pos: s.pos, Limit: s.maxDepth, Rule: r}
		return false
	}
	start, base := s.pos, len(s.nodes)
	prev := s.attemptsAt(start)
	s.depth++
	ok := body(s)
	s.depth--
	if !ok {
		s.restore(start, base)
		if tracked {
			s.track(r, start, prev)
		}
		return false
	}
	children := s.takeChildren(base)
	s.nodes = append(s.nodes, ast.Node{
		Rule:     r,
		Start:    s.off(start),
		End:      s.off(s.pos),
		Params:   p,
		Children: children,
	})
	return true
}

func (s *State) syntaxError() *SyntaxError {
	return &SyntaxError{Pos: s.furthest, Expected: slices.Clone(s.expected)}
}
