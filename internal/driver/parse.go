package driver

import (
	"context"

	"github.com/arhadthedev/embedded-ecmascript/internal/diag"
	"github.com/arhadthedev/embedded-ecmascript/internal/observ"
	"github.com/arhadthedev/embedded-ecmascript/internal/parser"
	"github.com/arhadthedev/embedded-ecmascript/internal/source"
	"github.com/arhadthedev/embedded-ecmascript/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Result  parser.Result
	Bag     *diag.Bag
	Timing  *observ.Report
}

// Parse loads one file and parses it as a Module (.mjs) or as cfg.ParseGoal.
func Parse(ctx context.Context, path string, cfg Config) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(cfg.MaxDiagnostics)
	timer := newTimer(cfg)
	res := parseFile(ctx, file, cfg, bag, timer)
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Result:  res,
		Bag:     bag,
		Timing:  timer.Report(),
	}, nil
}

// GoalFor picks the parse goal for file under cfg.
func GoalFor(file *source.File, cfg Config) parser.Goal {
	if parser.GoalFor(file) == parser.GoalModule {
		return parser.GoalModule
	}
	return cfg.ParseGoal
}

func parseFile(ctx context.Context, file *source.File, cfg Config, bag *diag.Bag, timer *observ.Timer) parser.Result {
	ctx, span := trace.Start(ctx, trace.ScopeFile, "parse-file")
	span.WithExtra("file", file.Path)

	opts := cfg.ParseOptions()
	opts.Reporter = diag.BagReporter{Bag: bag}
	opts.Tracer = trace.FromContext(ctx)
	opts.Parent = span.ID()
	goal := GoalFor(file, cfg)
	done := timer.Track("parse")
	res := parser.ParseFile(file, goal, opts)
	done(goal.String())
	if res.OK() {
		span.End("ok")
	} else {
		span.End("failed")
	}
	return res
}
