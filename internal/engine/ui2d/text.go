package ui2d

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldText reduces s to the atlas' printable ASCII range. Accents are
// stripped ("é" becomes "e"); anything else outside the range becomes '?'.
func FoldText(s string) string {
	if isPrintableASCII(s) {
		return s
	}
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			if r == '\n' || (r >= firstGlyph && r <= lastGlyph) {
				return r
			}
			return '?'
		}),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\n' && (c < firstGlyph || c > lastGlyph) {
			return false
		}
	}
	return true
}
