package fuzztests

import (
	"context"
	"testing"
	"time"

	"github.com/arhadthedev/embedded-ecmascript/internal/diag"
	"github.com/arhadthedev/embedded-ecmascript/internal/parser"
	"github.com/arhadthedev/embedded-ecmascript/internal/source"
	"github.com/arhadthedev/embedded-ecmascript/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserTrees(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)
		for _, goal := range []parser.Goal{parser.GoalScript, parser.GoalModule} {
			for _, skip := range []parser.SkipPolicy{parser.SkipWhiteSpace, parser.SkipTrivia} {
				fs := source.NewFileSet()
				file := fs.Get(fs.AddVirtual("fuzz.js", input))
				bag := diag.NewBag(16)
				res := parser.ParseFile(file, goal, parser.Options{
					Skip:     skip,
					Reporter: diag.BagReporter{Bag: bag},
				})
				if !res.OK() {
					if bag.Len() != 1 {
						t.Fatalf("%s/%s: failure reported %d diagnostics on %q", goal, skip, bag.Len(), input)
					}
					continue
				}
				if err := testkit.CheckNodeInvariants(&res.Root, input); err != nil {
					t.Fatalf("%s/%s: %v\ninput: %q", goal, skip, err, input)
				}
			}
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte(";;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;;x"))
	f.Add([]byte("debugger debugger debugger"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.mjs", input))
			_ = parser.ParseFile(file, parser.GoalFor(file), parser.Options{Skip: parser.SkipTrivia})
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
