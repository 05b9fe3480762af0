package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/arhadthedev/embedded-ecmascript/internal/diag"
	"github.com/arhadthedev/embedded-ecmascript/internal/source"
)

const tabWidth = 4

type palette struct {
	sev    map[diag.Severity]*color.Color
	code   *color.Color
	path   *color.Color
	gutter *color.Color
	caret  *color.Color
	note   *color.Color
}

func newPalette(on bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   mk(color.FgRed, color.Bold),
			diag.SevWarning: mk(color.FgYellow, color.Bold),
			diag.SevInfo:    mk(color.FgCyan, color.Bold),
		},
		code:   mk(color.Bold),
		path:   mk(color.FgWhite, color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		note:   mk(color.FgGreen),
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, &d, fs, opts, pal)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "... %d more diagnostic(s) not shown\n", n)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sev := pal.sev[d.Severity]
	if sev == nil {
		sev = pal.sev[diag.SevInfo]
	}
	f := fs.Get(d.Primary.File)
	if f == nil {
		fmt.Fprintf(w, "%s %s: %s\n", sev.Sprint(d.Severity.String()), pal.code.Sprint(d.Code.ID()), d.Message)
		return
	}
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		pal.path.Sprintf("%s:%d:%d", formatPath(f, opts.PathMode, fs), start.Line, start.Col),
		sev.Sprint(d.Severity.String()), pal.code.Sprint(d.Code.ID()), d.Message)
	snippet(w, f, fs, d.Primary, opts, pal)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nf := fs.Get(n.Span.File)
		if nf == nil {
			fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
			continue
		}
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"),
			formatPath(nf, opts.PathMode, fs), ns.Line, ns.Col, n.Msg)
	}
}

// snippet prints the lines around sp with a caret line under the span.
func snippet(w io.Writer, f *source.File, fs *source.FileSet, sp source.Span, opts PrettyOpts, pal palette) {
	start, end := fs.Resolve(sp)
	ctx := uint32(max(opts.Context, 0))
	lines := uint32(len(f.LineIdx) + 1)
	first := start.Line - min(ctx, start.Line-1)
	last := min(start.Line+ctx, lines)
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := expandTabs(f.GetLine(ln))
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "...")
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), text)
		if ln != start.Line {
			continue
		}
		raw := f.GetLine(ln)
		from := min(int(start.Col-1), len(raw))
		to := len(raw)
		if end.Line == start.Line {
			to = min(int(end.Col-1), len(raw))
		}
		pad := runewidth.StringWidth(expandTabs(raw[:from]))
		width := max(runewidth.StringWidth(expandTabs(raw[from:to])), 1)
		if opts.Width > 0 && pad >= int(opts.Width) {
			continue
		}
		marks := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""),
			strings.Repeat(" ", pad), pal.caret.Sprint(marks))
	}
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
