package storage

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	maxFileNameBytes = 100
	defaultFileName  = "file"
)

// SanitizeFileName makes name safe for an object key: accents are folded,
// anything outside [A-Za-z0-9._-] becomes '_', runs of '_' collapse and the
// result is capped at 100 bytes with the extension kept where possible.
func SanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))

	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	lastUnderscore := false
	for _, r := range folded {
		if isKeySafe(r) {
			b.WriteRune(r)
			lastUnderscore = r == '_'
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	out := strings.Trim(b.String(), "_.")
	if out == "" {
		return defaultFileName
	}
	if len(out) <= maxFileNameBytes {
		return out
	}

	ext := path.Ext(out)
	if len(ext) > 10 {
		ext = ""
	}
	return strings.TrimRight(out[:maxFileNameBytes-len(ext)], "_.") + ext
}

func isKeySafe(r rune) bool {
	return r < unicode.MaxASCII && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '.' || r == '-' || r == '_')
}
