package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	// FileHasBOM marks content that starts with U+FEFF. The mark stays in
	// Content: ECMAScript treats it as WhiteSpace.
	FileHasBOM
	// FileInvalidUTF8 marks content that is not well-formed UTF-8.
	FileInvalidUTF8
	// FileModule marks a source unit that is meant to be parsed with the Module goal (.mjs).
	FileModule
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx holds the offset of the first byte of every line after the first one.
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, в байтах
}
