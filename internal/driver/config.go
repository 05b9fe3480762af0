package driver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arhadthedev/embedded-ecmascript/internal/grammar"
	"github.com/arhadthedev/embedded-ecmascript/internal/lexer"
	"github.com/arhadthedev/embedded-ecmascript/internal/parser"
	"github.com/arhadthedev/embedded-ecmascript/internal/token"
	"github.com/arhadthedev/embedded-ecmascript/internal/trace"
)

// ConfigFileName is looked up from the working directory upwards.
const ConfigFileName = "esparse.toml"

// ErrInvalidConfig wraps every value error found in a config file.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config drives tokenisation and parsing of files and directories.
type Config struct {
	// Goal for the first token of a stream; later goals come from the
	// default goal policy unless FixedGoal is set.
	LexGoal   token.Goal
	FixedGoal bool

	// ParseGoal is used for .js files; .mjs files are always modules.
	ParseGoal parser.Goal
	Skip      parser.SkipPolicy
	MaxDepth  int

	MaxDiagnostics int
	Timings        bool // замер фаз на каждый файл
	Jobs           int  // 0: GOMAXPROCS

	CacheDir   string // пусто: без кэша токенов
	TraceLevel trace.Level

	// Path of the file the config was read from, empty for defaults.
	Path string
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		LexGoal:        token.GoalHashbangOrRegExp,
		ParseGoal:      parser.GoalScript,
		Skip:           parser.SkipWhiteSpace,
		MaxDepth:       grammar.DefaultMaxDepth,
		MaxDiagnostics: 100,
	}
}

type configFile struct {
	Lexer struct {
		Goal  string `toml:"goal"`
		Fixed bool   `toml:"fixed"`
	} `toml:"lexer"`
	Parser struct {
		Goal     string `toml:"goal"`
		Skip     string `toml:"skip"`
		MaxDepth int    `toml:"max_depth"`
		Jobs     int    `toml:"jobs"`
	} `toml:"parser"`
	Diagnostics struct {
		Max     int  `toml:"max"`
		Timings bool `toml:"timings"`
	} `toml:"diagnostics"`
	Cache struct {
		Dir string `toml:"dir"`
	} `toml:"cache"`
	Trace struct {
		Level string `toml:"level"`
	} `toml:"trace"`
}

// LoadConfig parses a config file. Missing keys keep their defaults;
// unknown enum values are errors. A relative cache dir is resolved against
// the directory of the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	var raw configFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return cfg, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.Path = path

	var errs []error
	bad := func(key string, err error) {
		errs = append(errs, fmt.Errorf("%s: %s: %w: %w", path, key, ErrInvalidConfig, err))
	}

	if meta.IsDefined("lexer", "goal") {
		if g, err := token.ParseGoal(raw.Lexer.Goal); err != nil {
			bad("lexer.goal", err)
		} else {
			cfg.LexGoal = g
		}
	}
	cfg.FixedGoal = raw.Lexer.Fixed

	if meta.IsDefined("parser", "goal") {
		if g, err := parser.ParseGoal(raw.Parser.Goal); err != nil {
			bad("parser.goal", err)
		} else {
			cfg.ParseGoal = g
		}
	}
	if meta.IsDefined("parser", "skip") {
		if p, err := parser.ParseSkipPolicy(raw.Parser.Skip); err != nil {
			bad("parser.skip", err)
		} else {
			cfg.Skip = p
		}
	}
	if meta.IsDefined("parser", "max_depth") {
		if raw.Parser.MaxDepth <= 0 {
			bad("parser.max_depth", fmt.Errorf("must be positive, got %d", raw.Parser.MaxDepth))
		} else {
			cfg.MaxDepth = raw.Parser.MaxDepth
		}
	}
	if meta.IsDefined("parser", "jobs") {
		if raw.Parser.Jobs < 0 {
			bad("parser.jobs", fmt.Errorf("must not be negative, got %d", raw.Parser.Jobs))
		} else {
			cfg.Jobs = raw.Parser.Jobs
		}
	}
	if meta.IsDefined("diagnostics", "max") {
		if raw.Diagnostics.Max < 0 {
			bad("diagnostics.max", fmt.Errorf("must not be negative, got %d", raw.Diagnostics.Max))
		} else {
			cfg.MaxDiagnostics = raw.Diagnostics.Max
		}
	}
	cfg.Timings = raw.Diagnostics.Timings
	if dir := strings.TrimSpace(raw.Cache.Dir); dir != "" {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(filepath.Dir(path), dir)
		}
		cfg.CacheDir = dir
	}
	if meta.IsDefined("trace", "level") {
		if l, err := trace.ParseLevel(raw.Trace.Level); err != nil {
			bad("trace.level", err)
		} else {
			cfg.TraceLevel = l
		}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		bad("unknown keys", errors.New(strings.Join(keys, ", ")))
	}

	if len(errs) > 0 {
		return DefaultConfig(), errors.Join(errs...)
	}
	return cfg, nil
}

// FindConfig walks up from startDir to locate esparse.toml.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadConfigFrom finds and loads the nearest config, or returns defaults.
func LoadConfigFrom(startDir string) (Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return DefaultConfig(), err
	}
	return LoadConfig(path)
}

// GoalPolicy returns the lexer goal policy the config describes.
func (c Config) GoalPolicy() lexer.GoalPolicy {
	if c.FixedGoal {
		return lexer.FixedGoal(c.LexGoal)
	}
	first := c.LexGoal
	return func(prev *token.Token, offset uint32) token.Goal {
		if prev == nil && offset == 0 {
			return first
		}
		return lexer.DefaultGoalPolicy(prev, offset)
	}
}

// policyKey identifies everything besides the text that shapes a token
// stream: the goal policy and the nesting limit (INT9001 recovery depends on it).
func (c Config) policyKey() string {
	mode := "default"
	if c.FixedGoal {
		mode = "fixed"
	}
	depth := c.MaxDepth
	if depth <= 0 {
		depth = grammar.DefaultMaxDepth
	}
	return fmt.Sprintf("%s:%s:depth=%d", mode, c.LexGoal, depth)
}

// ParseOptions converts the config into parser options.
func (c Config) ParseOptions() parser.Options {
	return parser.Options{Skip: c.Skip, MaxDepth: c.MaxDepth}
}

// NewTracer builds the tracer for c.TraceLevel writing to w. Extra slog
// handlers receive the same events.
func (c Config) NewTracer(w io.Writer, handlers ...slog.Handler) (trace.Tracer, error) {
	return trace.New(trace.Config{
		Level:    c.TraceLevel,
		Format:   trace.FormatText,
		Output:   w,
		Handlers: handlers,
	})
}
