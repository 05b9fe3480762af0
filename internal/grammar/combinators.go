package grammar

import (
	"bytes"
	"unicode/utf8"

	"github.com/arhadthedev/embedded-ecmascript/internal/ast"
)

// Matcher tries to match at the current position of s. On failure it must
// leave s unchanged.
type Matcher func(s *State) bool

// Lit matches the exact text lit.
func Lit(lit string) Matcher {
	b := []byte(lit)
	return func(s *State) bool {
		if s.err != nil || !bytes.HasPrefix(s.src[s.pos:], b) {
			return false
		}
		s.pos += len(b)
		return true
	}
}

// Char matches one code point accepted by pred. Invalid UTF-8 decodes to
// utf8.RuneError with width 1, so pred decides whether such bytes match.
func Char(pred func(rune) bool) Matcher {
	return func(s *State) bool {
		if s.err != nil || s.pos >= len(s.src) {
			return false
		}
		r, size := decode(s.src[s.pos:])
		if !pred(r) {
			return false
		}
		s.pos += size
		return true
	}
}

// Range matches one code point in [lo, hi].
func Range(lo, hi rune) Matcher {
	return Char(func(r rune) bool { return r >= lo && r <= hi })
}

// Any matches one code point (or one invalid byte).
func Any(s *State) bool {
	if s.err != nil || s.pos >= len(s.src) {
		return false
	}
	_, size := decode(s.src[s.pos:])
	s.pos += size
	return true
}

// EOI matches only at the end of input.
func EOI(s *State) bool {
	if s.err != nil {
		return false
	}
	if s.pos >= len(s.src) {
		return true
	}
	s.track(ast.EOI, s.pos, s.attemptsAt(s.pos))
	return false
}

func decode(b []byte) (rune, int) {
	if b[0] < utf8.RuneSelf {
		return rune(b[0]), 1
	}
	return utf8.DecodeRune(b)
}

// Seq matches all ms one after another. In a compound scope separators are
// skipped between elements.
func Seq(ms ...Matcher) Matcher {
	return func(s *State) bool {
		start, base := s.pos, len(s.nodes)
		for i, m := range ms {
			if i > 0 {
				s.skipSeparators()
			}
			if !m(s) {
				s.restore(start, base)
				return false
			}
		}
		return true
	}
}

// Choice tries ms in order and commits to the first that matches.
func Choice(ms ...Matcher) Matcher {
	return func(s *State) bool {
		for _, m := range ms {
			if m(s) {
				return true
			}
			if s.err != nil {
				return false
			}
		}
		return false
	}
}

// Opt matches m or nothing.
func Opt(m Matcher) Matcher {
	return func(s *State) bool {
		m(s)
		return s.err == nil
	}
}

// Star matches m greedily zero or more times. An iteration that consumes
// nothing ends the loop.
func Star(m Matcher) Matcher {
	return func(s *State) bool {
		repeat(s, m, false)
		return s.err == nil
	}
}

// Plus matches m greedily one or more times.
func Plus(m Matcher) Matcher {
	return func(s *State) bool {
		start, base := s.pos, len(s.nodes)
		if !m(s) {
			return false
		}
		if s.pos == start {
			return true
		}
		repeat(s, m, true)
		if s.err != nil {
			s.restore(start, base)
			return false
		}
		return true
	}
}

func repeat(s *State, m Matcher, skipFirst bool) {
	for i := 0; ; i++ {
		p, b := s.pos, len(s.nodes)
		if i > 0 || skipFirst {
			s.skipSeparators()
		}
		if !m(s) || s.pos == p {
			s.restore(p, b)
			return
		}
	}
}

// Ahead succeeds, without consuming input, when m would match.
func Ahead(m Matcher) Matcher {
	return func(s *State) bool {
		start, base := s.pos, len(s.nodes)
		s.quiet++
		ok := m(s)
		s.quiet--
		s.restore(start, base)
		return ok && s.err == nil
	}
}

// NotAhead succeeds, without consuming input, when m would not match.
func NotAhead(m Matcher) Matcher {
	return func(s *State) bool {
		start, base := s.pos, len(s.nodes)
		s.quiet++
		ok := m(s)
		s.quiet--
		s.restore(start, base)
		return !ok && s.err == nil
	}
}

// Atomic runs m without separator skipping between its parts.
func Atomic(m Matcher) Matcher {
	return scoped(true, m)
}

// Compound runs m with separator skipping between its parts.
func Compound(m Matcher) Matcher {
	return scoped(false, m)
}

func scoped(atomic bool, m Matcher) Matcher {
	return func(s *State) bool {
		saved := s.atomic
		s.atomic = atomic
		ok := m(s)
		s.atomic = saved
		return ok
	}
}

// Node wraps m into the named rule r.
func Node(r ast.Rule, m Matcher) Matcher {
	return func(s *State) bool {
		return s.node(r, 0, m, true)
	}
}

// ParamNode is Node for a parameterised production.
func ParamNode(r ast.Rule, p ast.Params, m Matcher) Matcher {
	return func(s *State) bool {
		return s.node(r, p, m, true)
	}
}

// List matches one or more items and shapes them as a right-nested list
// (Item List?), the way a right-recursive production would. Items are
// gathered in a loop and the nesting is assembled afterwards, so the number
// of items does not touch the depth guard or the Go stack.
func List(list ast.Rule, p ast.Params, item Matcher) Matcher {
	return func(s *State) bool {
		if s.err != nil {
			return false
		}
		start, base := s.pos, len(s.nodes)
		prev := s.attemptsAt(start)
		var firsts []int // индекс первого узла каждого элемента в s.nodes
		for {
			pos, b := s.pos, len(s.nodes)
			if len(firsts) > 0 {
				s.skipSeparators()
			}
			at := len(s.nodes)
			if !item(s) || s.pos == pos {
				s.restore(pos, b)
				break
			}
			firsts = append(firsts, at)
		}
		if s.err != nil || len(firsts) == 0 {
			s.restore(start, base)
			if s.err == nil {
				s.track(list, start, prev)
			}
			return false
		}

		end := s.off(s.pos)
		itemStart := func(i int) uint32 { return s.nodes[firsts[i]].Start }
		last := len(firsts) - 1
		tail := ast.Node{
			Rule:     list,
			Start:    itemStart(last),
			End:      end,
			Params:   p,
			Children: append([]ast.Node(nil), s.nodes[firsts[last]:]...),
		}
		for i := last - 1; i >= 0; i-- {
			children := make([]ast.Node, 0, firsts[i+1]-firsts[i]+1)
			children = append(children, s.nodes[firsts[i]:firsts[i+1]]...)
			children = append(children, tail)
			tail = ast.Node{Rule: list, Start: itemStart(i), End: end, Params: p, Children: children}
		}
		clear(s.nodes[base:])
		s.nodes = append(s.nodes[:base], tail)
		return true
	}
}
