package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/arhadthedev/embedded-ecmascript/internal/source"
	"github.com/arhadthedev/embedded-ecmascript/internal/token"
)

type TokenOutput struct {
	Kind string      `json:"kind"`
	Rule string      `json:"rule,omitempty"`
	Text string      `json:"text,omitempty"`
	Goal string      `json:"goal"`
	Span source.Span `json:"span"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-17s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		// для ключевых слов и пунктуаторов правило точнее вида
		if tok.Kind == token.ReservedWord || tok.Kind == token.Punctuator {
			fmt.Fprintf(w, " %-28s", tok.Rule.String())
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d [%s]\n",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col, tok.Goal)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Goal: tok.Goal.String(),
			Span: tok.Span,
		}
		if tok.Rule.Valid() {
			out.Rule = tok.Rule.String()
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
