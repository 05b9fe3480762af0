package lexer

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"

	"github.com/arhadthedev/embedded-ecmascript/internal/source"
)

// cursor: позиция лексера в файле; window ограничивает видимую часть
type cursor struct {
	file   *source.File
	off    uint32
	window []byte // file.Content[:limit]
}

func newCursor(f *source.File) cursor {
	return cursor{file: f, window: f.Content}
}

func (c *cursor) eof() bool {
	return int(c.off) >= len(c.window)
}

// pos is the offset as the grammar engine takes it.
func (c *cursor) pos() int {
	return int(c.off)
}

// rest returns the unread bytes of the window.
func (c *cursor) rest() []byte {
	if c.eof() {
		return nil
	}
	return c.window[c.off:]
}

func (c *cursor) hasPrefix(p string) bool {
	return bytes.HasPrefix(c.rest(), []byte(p))
}

// limit is the window length as an offset.
func (c *cursor) limit() uint32 {
	n, err := safecast.Conv[uint32](len(c.window))
	if err != nil {
		panic(fmt.Errorf("lexer: window length overflow: %w", err))
	}
	return n
}

// seek moves to an absolute offset, clamped to the window.
func (c *cursor) seek(off uint32) {
	c.off = min(off, c.limit())
}

// span covers size bytes from the current offset, clamped to the window.
func (c *cursor) span(size int) source.Span {
	n, err := safecast.Conv[uint32](size)
	if err != nil {
		panic(fmt.Errorf("lexer: span size overflow: %w", err))
	}
	end := min(c.off+n, c.limit())
	return source.Span{File: c.file.ID, Start: c.off, End: end}
}
