// Package diagfmt renders diagnostics, token streams and parse trees for
// people (Pretty, FormatTokensPretty, FormatTreePretty) and for tools
// (JSON, FormatTokensJSON, FormatTreeJSON).
package diagfmt
