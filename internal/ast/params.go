package ast

import "strings"

// Params is the set of grammar parameters a syntactic production was
// instantiated with.
type Params uint8

const (
	ParamYield Params = 1 << iota
	ParamAwait
	ParamReturn
)

// ScriptParams and ModuleParams are the parameters of the top-level statement lists.
const (
	ScriptParams Params = 0
	ModuleParams Params = ParamAwait
)

// Has reports whether every flag in f is set.
func (p Params) Has(f Params) bool {
	return p&f == f
}

// With returns p with f set.
func (p Params) With(f Params) Params {
	return p | f
}

// Without returns p with f cleared.
func (p Params) Without(f Params) Params {
	return p &^ f
}

// String renders the set in grammar notation, e.g. "[~Yield,+Await,~Return]".
func (p Params) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, f := range [...]struct {
		flag Params
		name string
	}{{ParamYield, "Yield"}, {ParamAwait, "Await"}, {ParamReturn, "Return"}} {
		if i > 0 {
			sb.WriteByte(',')
		}
		if p.Has(f.flag) {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('~')
		}
		sb.WriteString(f.name)
	}
	sb.WriteByte(']')
	return sb.String()
}
