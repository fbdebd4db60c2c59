package extract

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeSpaces collapses every run of whitespace (including newlines and
// tabs) into a single space and trims the result. PDF text extraction tends
// to pad labels with uneven spacing, so every value returned to a caller goes
// through this first.
func NormalizeSpaces(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

var intraLineRun = regexp.MustCompile(`\s{2,}`)

// splitLines breaks text into trimmed lines with intra-line space runs
// collapsed. Line boundaries are preserved, unlike NormalizeSpaces, because
// the block heuristics depend on them.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = intraLineRun.ReplaceAllString(strings.TrimSpace(l), " ")
	}
	return lines
}

// TitleCase capitalizes the first letter of every space-separated word and
// lowercases the rest, keeping Spanish accented letters intact.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
