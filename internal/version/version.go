package version

import (
	"strings"

	"github.com/fatih/color"

	"github.com/arhadthedev/embedded-ecmascript/internal/uniprop"
)

// Version information for the library.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the grammar and tokenizer.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Fingerprint identifies everything that can change a token stream for the
// same input: the library build and the Unicode tables it was compiled with.
func Fingerprint() string {
	var sb strings.Builder
	sb.WriteString(Version)
	if GitCommit != "" {
		sb.WriteString("+")
		sb.WriteString(GitCommit)
	}
	sb.WriteString(" unicode/")
	sb.WriteString(uniprop.Version)
	return sb.String()
}

// String renders a one-line banner, coloured when useColor is set.
func String(useColor bool) string {
	major, rest, _ := strings.Cut(Version, ".")
	minor, patch, _ := strings.Cut(rest, ".")

	parts := []struct {
		text string
		c    *color.Color
	}{
		{major, color.New(color.FgYellow, color.Bold)},
		{minor, color.New(color.FgGreen, color.Bold)},
		{patch, color.New(color.FgBlue, color.Bold)},
	}
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p.text == "" {
			continue
		}
		if useColor {
			p.c.EnableColor()
		} else {
			p.c.DisableColor()
		}
		segs = append(segs, p.c.Sprint(p.text))
	}
	out := strings.Join(segs, ".")
	if GitCommit != "" {
		out += " (" + GitCommit + ")"
	}
	if BuildDate != "" {
		out += " built " + BuildDate
	}
	return out + ", Unicode " + uniprop.Version
}
