// Package fuzztests houses Go fuzz harnesses for the lexical and syntactic
// grammars (source -> lexer -> parser). They smoke test robustness: no
// panics, no hangs, and every stream or tree that comes out satisfies the
// testkit invariants.
//
// Назначение: загружать произвольные байты в FileSet и прогонять их через
// лексер под каждой целью и через парсер Script/Module.
//
// Не делает: генерацию корпусов, запись файлов.
//
// Зависимости: internal/source, internal/lexer, internal/parser,
// internal/diag, internal/testkit.

package fuzztests
