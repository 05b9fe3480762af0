package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/arhadthedev/embedded-ecmascript/internal/ast"
	"github.com/arhadthedev/embedded-ecmascript/internal/diag"
	"github.com/arhadthedev/embedded-ecmascript/internal/source"
	"github.com/arhadthedev/embedded-ecmascript/internal/token"
	"github.com/arhadthedev/embedded-ecmascript/internal/version"
)

// Current schema version - increment when tokenPayload format changes
const tokenCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [32]byte

// TokenCache хранит потоки токенов на диске по хешу содержимого и политике целей.
// Thread-safe for concurrent access.
type TokenCache struct {
	mu  sync.RWMutex
	dir string
}

type cachedToken struct {
	Kind  uint8  `msgpack:"k"`
	Rule  uint16 `msgpack:"r"`
	Start uint32 `msgpack:"s"`
	End   uint32 `msgpack:"e"`
	Goal  uint8  `msgpack:"g"`
}

type cachedDiag struct {
	Code     uint16 `msgpack:"c"`
	Severity uint8  `msgpack:"v"`
	Start    uint32 `msgpack:"s"`
	End      uint32 `msgpack:"e"`
	Message  string `msgpack:"m"`
}

type tokenPayload struct {
	Schema uint16        `msgpack:"schema"`
	Tokens []cachedToken `msgpack:"tokens"`
	Diags  []cachedDiag  `msgpack:"diags"`
}

// OpenTokenCache opens (creating if needed) a cache rooted at dir.
func OpenTokenCache(dir string) (*TokenCache, error) {
	if dir == "" {
		return nil, errors.New("token cache: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &TokenCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *TokenCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// tokenKey: H(schema || build fingerprint || content hash || policy).
func tokenKey(file *source.File, policy string) Digest {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "tokens/v%d\x00%s\x00", tokenCacheSchemaVersion, version.Fingerprint())
	_, _ = h.Write(file.Hash[:])
	_, _ = h.Write([]byte(policy))
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (c *TokenCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// двухсимвольный подкаталог, чтобы не держать все файлы в одном каталоге
	return filepath.Join(c.dir, "tokens", hexKey[:2], hexKey+".mp")
}

// put serializes and writes a payload to the disk cache.
func (c *TokenCache) put(key Digest, payload *tokenPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после успешного Rename временного файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// get reads and deserializes a payload from the disk cache. A payload with
// another schema counts as a miss.
func (c *TokenCache) get(key Digest, out *tokenPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == tokenCacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *TokenCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	tokens := filepath.Join(c.dir, "tokens")
	old := tokens + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(tokens, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// Load returns the cached stream for file under the policy, if present.
// Token text and spans are rebuilt from the file itself.
func (c *TokenCache) Load(file *source.File, policy string) ([]token.Token, []diag.Diagnostic, bool, error) {
	var payload tokenPayload
	ok, err := c.get(tokenKey(file, policy), &payload)
	if err != nil || !ok {
		return nil, nil, false, err
	}
	toks := make([]token.Token, len(payload.Tokens))
	for i, ct := range payload.Tokens {
		if ct.Start > ct.End || ct.End > file.Len() {
			return nil, nil, false, fmt.Errorf("token cache: entry for %s is out of range", file.Path)
		}
		sp := source.Span{File: file.ID, Start: ct.Start, End: ct.End}
		toks[i] = token.Token{
			Kind: token.Kind(ct.Kind),
			Rule: ast.Rule(ct.Rule),
			Span: sp,
			Text: file.Text(sp),
			Goal: token.Goal(ct.Goal),
		}
	}
	diags := make([]diag.Diagnostic, len(payload.Diags))
	for i, cd := range payload.Diags {
		diags[i] = diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code),
			source.Span{File: file.ID, Start: cd.Start, End: cd.End}, cd.Message)
	}
	return toks, diags, true, nil
}

// Store saves the stream for file under the policy.
func (c *TokenCache) Store(file *source.File, policy string, toks []token.Token, diags []diag.Diagnostic) error {
	payload := tokenPayload{
		Schema: tokenCacheSchemaVersion,
		Tokens: make([]cachedToken, len(toks)),
		Diags:  make([]cachedDiag, len(diags)),
	}
	for i, t := range toks {
		payload.Tokens[i] = cachedToken{
			Kind:  uint8(t.Kind),
			Rule:  uint16(t.Rule),
			Start: t.Span.Start,
			End:   t.Span.End,
			Goal:  uint8(t.Goal),
		}
	}
	for i, d := range diags {
		payload.Diags[i] = cachedDiag{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		}
	}
	return c.put(tokenKey(file, policy), &payload)
}
