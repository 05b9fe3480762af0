package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/arhadthedev/embedded-ecmascript/internal/diag"
	"github.com/arhadthedev/embedded-ecmascript/internal/observ"
	"github.com/arhadthedev/embedded-ecmascript/internal/parser"
	"github.com/arhadthedev/embedded-ecmascript/internal/source"
	"github.com/arhadthedev/embedded-ecmascript/internal/token"
	"github.com/arhadthedev/embedded-ecmascript/internal/trace"
)

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string        // Путь к файлу
	FileID source.FileID // ID файла в FileSet
	Tokens []token.Token // Токены файла
	Bag    *diag.Bag     // Диагностики
	Cached bool
	Timing *observ.Report
}

// ParseDirResult содержит результат парсинга одного файла
type ParseDirResult struct {
	Path   string
	FileID source.FileID
	Result parser.Result
	Bag    *diag.Bag
	Timing *observ.Report
}

// IsSourceFile reports whether path names an ECMAScript source file.
func IsSourceFile(path string) bool {
	return strings.HasSuffix(path, ".js") || strings.HasSuffix(path, ".mjs")
}

// listSourceFiles возвращает отсортированный список всех *.js и *.mjs файлов
// в директории; node_modules пропускается
func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "node_modules" && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSourceFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// loaded is the preloaded state shared by the directory batches.
type loaded struct {
	fileSet    *source.FileSet
	files      []string
	fileIDs    map[string]source.FileID
	loadErrors map[string]error
}

func loadDir(dir string) (*loaded, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	l := &loaded{
		fileSet:    source.NewFileSetWithBase(dir),
		files:      files,
		fileIDs:    make(map[string]source.FileID, len(files)),
		loadErrors: make(map[string]error),
	}
	for _, path := range files {
		fileID, err := l.fileSet.Load(path)
		if err != nil {
			// Сохраняем ошибку загрузки для последующей обработки
			l.loadErrors[path] = err
			continue
		}
		l.fileIDs[path] = fileID
	}
	return l, nil
}

func loadFailure(bag *diag.Bag, err error) {
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+err.Error()))
}

// forEachFile runs fn for every file on a bounded errgroup. Indices are
// unique per goroutine, so results need no locking.
func forEachFile(ctx context.Context, name string, l *loaded, jobs int, fn func(ctx context.Context, i int, path string) error) error {
	if len(l.files) == 0 {
		return nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, name)
	span.WithExtra("files", strconv.Itoa(len(l.files)))
	span.WithExtra("jobs", strconv.Itoa(min(jobs, len(l.files))))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(l.files)))
	for i, path := range l.files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return fn(gctx, i, path)
		})
	}
	err := g.Wait()
	if err != nil {
		span.Fail(err)
		return err
	}
	span.End("")
	return nil
}

// TokenizeDir токенизирует все *.js и *.mjs файлы в директории параллельно
func TokenizeDir(ctx context.Context, dir string, cfg Config) (*source.FileSet, []TokenizeDirResult, error) {
	l, err := loadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	cache, err := openCache(cfg)
	if err != nil {
		return l.fileSet, nil, err
	}

	results := make([]TokenizeDirResult, len(l.files))
	err = forEachFile(ctx, "tokenize-dir", l, cfg.Jobs, func(ctx context.Context, i int, path string) error {
		bag := diag.NewBag(cfg.MaxDiagnostics)
		results[i] = TokenizeDirResult{Path: path, Bag: bag}
		if loadErr, hadError := l.loadErrors[path]; hadError {
			loadFailure(bag, loadErr)
			return nil
		}
		fileID := l.fileIDs[path]
		timer := newTimer(cfg)
		tokens, cached := tokenizeFile(ctx, l.fileSet.Get(fileID), cfg, cache, bag, timer)
		results[i].FileID = fileID
		results[i].Tokens = tokens
		results[i].Cached = cached
		results[i].Timing = timer.Report()
		return nil
	})
	return l.fileSet, results, err
}

// ParseDir парсит все *.js и *.mjs файлы в директории параллельно
func ParseDir(ctx context.Context, dir string, cfg Config) (*source.FileSet, []ParseDirResult, error) {
	l, err := loadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	results := make([]ParseDirResult, len(l.files))
	err = forEachFile(ctx, "parse-dir", l, cfg.Jobs, func(ctx context.Context, i int, path string) error {
		bag := diag.NewBag(cfg.MaxDiagnostics)
		results[i] = ParseDirResult{Path: path, Bag: bag}
		if loadErr, hadError := l.loadErrors[path]; hadError {
			loadFailure(bag, loadErr)
			return nil
		}
		fileID := l.fileIDs[path]
		results[i].FileID = fileID
		timer := newTimer(cfg)
		results[i].Result = parseFile(ctx, l.fileSet.Get(fileID), cfg, bag, timer)
		results[i].Timing = timer.Report()
		return nil
	})
	return l.fileSet, results, err
}

// Summary counts failed files and diagnostics of a parse batch.
func Summary(results []ParseDirResult) (failed, diagnostics int) {
	for _, r := range results {
		if r.Bag != nil {
			diagnostics += r.Bag.Len()
		}
		if !r.Result.OK() || r.Result.File == nil {
			failed++
		}
	}
	return failed, diagnostics
}

// Collect merges per-file bags into one sorted bag, e.g. for a single
// rendering of a whole batch; limit <= 0 keeps everything.
func Collect(limit int, bags ...*diag.Bag) *diag.Bag {
	out := diag.NewBag(limit)
	for _, b := range bags {
		out.Merge(b)
	}
	out.Sort()
	out.Dedup()
	return out
}
