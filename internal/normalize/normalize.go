// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize splits raw text into the candidate lines and sentences
// that every extractor works on. Text is NFC-normalized first so that
// decomposed Turkish letters compare equal to their composed forms, and case
// folding follows Turkish rules (I/ı, İ/i).
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/study-engine/pkg/types"
)

// Text returns s in Unicode NFC with CRLF and CR line endings folded to LF.
func Text(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// RawLines returns every trimmed, non-empty line of text that is not a
// document boundary marker.
func RawLines(text string) []string {
	var out []string
	for _, line := range strings.Split(Text(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, ok := types.ParseBoundary(line); ok {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Lines returns the trimmed lines of text that are at least minLen
// characters long, in source order. Boundary markers are dropped.
func Lines(text string, minLen int) []string {
	var out []string
	for _, line := range RawLines(text) {
		if RuneLen(line) >= minLen {
			out = append(out, line)
		}
	}
	return out
}

// Sentences returns the sentences of text that are at least minLen
// characters long. Sentences never span lines.
func Sentences(text string, minLen int) []string {
	var out []string
	for _, line := range RawLines(text) {
		for _, s := range SplitSentences(line) {
			if RuneLen(s) >= minLen {
				out = append(out, s)
			}
		}
	}
	return out
}

// SplitSentences splits one line at sentence terminators (. ! ?). A
// terminator ends a sentence only when followed by whitespace or the end of
// the line, so decimals and abbreviations like "3.5" stay intact. The
// terminator stays attached to its sentence.
func SplitSentences(line string) []string {
	var out []string
	runes := []rune(line)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		j := i
		for j+1 < len(runes) && isTerminator(runes[j+1]) {
			j++
		}
		if j+1 == len(runes) || unicode.IsSpace(runes[j+1]) {
			if s := strings.TrimSpace(string(runes[start : j+1])); s != "" {
				out = append(out, s)
			}
			start = j + 1
		}
		i = j
	}
	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// RuneLen returns the length of s in characters.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Lower folds s to lower case with Turkish rules.
func Lower(s string) string {
	return cases.Lower(language.Turkish).String(s)
}

// UpperFirst upper-cases the first letter of s with Turkish rules and
// leaves the rest untouched, so "kalp" becomes "Kalp" and "iskelet"
// becomes "İskelet".
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return s
	}
	return cases.Upper(language.Turkish).String(string(r)) + s[size:]
}

// Words splits s into lower-cased tokens of letters and digits.
func Words(s string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, Lower(cur.String()))
			cur.Reset()
		}
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			cur.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// WordCount returns the number of whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
