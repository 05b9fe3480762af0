package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса

// builtinSeeds cover every goal-sensitive corner of the lexical grammar.
var builtinSeeds = []string{
	"",
	";",
	"debugger;",
	"#!/usr/bin/env node\n;",
	"a / b /= c",
	"x?.5:y?.z",
	"}`tail`",
	"/* unterminated",
	"// line\r\n\u2028\u2029",
	"#priv \\u0061bc \\u{1F600}",
	"instanceofx in inx",
	">>>= >>= >> > ... ?? ??= ?.",
	"\u00A0\uFEFF\t\v\f await yield",
	"\xff\xfe@",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.js и *.mjs файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if ext := filepath.Ext(path); ext != ".js" && ext != ".mjs" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
