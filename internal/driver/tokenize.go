package driver

import (
	"context"
	"strconv"

	"github.com/arhadthedev/embedded-ecmascript/internal/diag"
	"github.com/arhadthedev/embedded-ecmascript/internal/lexer"
	"github.com/arhadthedev/embedded-ecmascript/internal/observ"
	"github.com/arhadthedev/embedded-ecmascript/internal/source"
	"github.com/arhadthedev/embedded-ecmascript/internal/token"
	"github.com/arhadthedev/embedded-ecmascript/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
	Cached  bool // поток взят из кэша токенов
	Timing  *observ.Report
}

// Tokenize loads one file and streams it into tokens under cfg's goal policy.
func Tokenize(ctx context.Context, path string, cfg Config) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	cache, err := openCache(cfg)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(cfg.MaxDiagnostics)
	timer := newTimer(cfg)
	tokens, cached := tokenizeFile(ctx, file, cfg, cache, bag, timer)
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
		Cached:  cached,
		Timing:  timer.Report(),
	}, nil
}

func openCache(cfg Config) (*TokenCache, error) {
	if cfg.CacheDir == "" {
		return nil, nil
	}
	return OpenTokenCache(cfg.CacheDir)
}

// newTimer returns nil unless timings are enabled; a nil timer records nothing.
func newTimer(cfg Config) *observ.Timer {
	if !cfg.Timings {
		return nil
	}
	return observ.NewTimer()
}

// tokenizeFile consults the cache first; cache failures only cost a warning.
func tokenizeFile(ctx context.Context, file *source.File, cfg Config, cache *TokenCache, bag *diag.Bag, timer *observ.Timer) ([]token.Token, bool) {
	ctx, span := trace.Start(ctx, trace.ScopeFile, "tokenize-file")
	span.WithExtra("file", file.Path)
	policy := cfg.policyKey()

	if cache != nil {
		done := timer.Track("cache_load")
		toks, diags, ok, err := cache.Load(file, policy)
		if ok {
			done("hit")
		} else {
			done("miss")
		}
		if err != nil {
			bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: file.ID}, "token cache read failed: "+err.Error()))
		}
		if ok {
			for _, d := range diags {
				bag.Add(d)
			}
			span.WithExtra("cache", "hit")
			span.End(strconv.Itoa(len(toks)) + " tokens")
			return toks, true
		}
	}

	// собираем всё без лимита: в кэш должен попасть полный набор
	collected := diag.NewBag(0)
	lexDone := timer.Track("tokenize")
	toks := lexer.Tokenize(file, lexer.Options{
		Reporter: diag.BagReporter{Bag: collected},
		Policy:   cfg.GoalPolicy(),
		MaxDepth: cfg.MaxDepth,
		Tracer:   trace.FromContext(ctx),
		Parent:   span.ID(),
	})
	lexDone(strconv.Itoa(len(toks)) + " tokens")
	for _, d := range collected.Items() {
		bag.Add(d)
	}
	if cache != nil {
		storeDone := timer.Track("cache_store")
		err := cache.Store(file, policy, toks, collected.Items())
		storeDone("")
		if err != nil {
			bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: file.ID}, "token cache write failed: "+err.Error()))
		}
		span.WithExtra("cache", "miss")
	}
	span.End(strconv.Itoa(len(toks)) + " tokens")
	return toks, false
}
