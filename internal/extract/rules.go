// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/study-engine/internal/normalize"
	"github.com/pdiddy/study-engine/internal/vocab"
	"github.com/pdiddy/study-engine/pkg/types"
)

// Rule is one entry of an ordered extraction table. Apply reports whether
// the rule matches line and, if so, the value extracted from it. Tables are
// evaluated in order and the first matching rule wins.
type Rule[T any] struct {
	Name  string
	Apply func(line string) (T, bool)
}

// firstMatch runs rules against line in order.
func firstMatch[T any](rules []Rule[T], line string) (T, string, bool) {
	for _, r := range rules {
		if v, ok := r.Apply(line); ok {
			return v, r.Name, true
		}
	}
	var zero T
	return zero, "", false
}

var (
	bulletPattern        = regexp.MustCompile(`^[-•*▪►]\s+`)
	numberedItemPattern  = regexp.MustCompile(`^\d+[.)]\s+`)
	numberedTitlePattern = regexp.MustCompile(`^\d+\.?\s+\p{Lu}`)
	titleColonPattern    = regexp.MustCompile(`^\p{Lu}[\p{Ll}\s]+:$`)
)

// stripListMarker removes a leading bullet or item number.
func stripListMarker(line string) string {
	if loc := bulletPattern.FindStringIndex(line); loc != nil {
		return strings.TrimSpace(line[loc[1]:])
	}
	if loc := numberedItemPattern.FindStringIndex(line); loc != nil {
		return strings.TrimSpace(line[loc[1]:])
	}
	return line
}

func identity(line string) string { return line }

// predicate adapts a boolean test and a transform into a rule.
func predicate(name string, match func(string) bool, transform func(string) string) Rule[string] {
	return Rule[string]{
		Name: name,
		Apply: func(line string) (string, bool) {
			if !match(line) {
				return "", false
			}
			out := strings.TrimSpace(transform(line))
			return out, out != ""
		},
	}
}

// HeadingRules returns the heading table. Lengths are checked by the caller.
func HeadingRules(v *vocab.Vocabulary) []Rule[string] {
	markers := v.Markers.Headings
	return []Rule[string]{
		predicate("all-caps", isAllCaps, identity),
		predicate("numbered", numberedTitlePattern.MatchString, identity),
		predicate("title-colon", titleColonPattern.MatchString, identity),
		predicate("question", func(l string) bool { return strings.HasSuffix(l, "?") }, identity),
		predicate("marker", func(l string) bool {
			lower := normalize.Lower(l)
			for _, m := range markers {
				if strings.HasPrefix(lower, m) {
					return true
				}
			}
			return false
		}, identity),
	}
}

// isAllCaps reports whether line starts with an upper-case letter and holds
// at least six characters, all of them upper-case letters or spaces.
func isAllCaps(line string) bool {
	first, _ := utf8.DecodeRuneInString(line)
	if !unicode.IsUpper(first) || utf8.RuneCountInString(line) < 6 {
		return false
	}
	for _, r := range line {
		if !unicode.IsUpper(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// KeyPointRules returns the key-point table. Lengths are checked by the
// caller on the unstripped line.
func KeyPointRules(v *vocab.Vocabulary) []Rule[string] {
	importance := v.Markers.Importance
	questions := make([][]string, 0, len(v.Markers.Questions))
	for _, q := range v.Markers.Questions {
		questions = append(questions, strings.Fields(q))
	}
	return []Rule[string]{
		predicate("bullet", bulletPattern.MatchString, stripListMarker),
		predicate("numbered", numberedItemPattern.MatchString, stripListMarker),
		predicate("single-colon", func(l string) bool { return strings.Count(l, ":") == 1 }, identity),
		predicate("importance", func(l string) bool {
			return slices.ContainsFunc(normalize.Words(l), func(w string) bool {
				return slices.Contains(importance, w)
			})
		}, identity),
		predicate("question", func(l string) bool {
			words := normalize.Words(l)
			for _, phrase := range questions {
				if containsPhrase(words, phrase) {
					return true
				}
			}
			return false
		}, identity),
	}
}

// containsPhrase reports whether phrase occurs as consecutive words.
func containsPhrase(words, phrase []string) bool {
	if len(phrase) == 0 {
		return false
	}
	for i := 0; i+len(phrase) <= len(words); i++ {
		if slices.Equal(words[i:i+len(phrase)], phrase) {
			return true
		}
	}
	return false
}

// DefinitionRules returns the definition table: colon, spaced dash, and
// equals sign, in that priority.
func DefinitionRules(cfg types.ExtractionConfig) []Rule[types.DefinitionPair] {
	return []Rule[types.DefinitionPair]{
		delimiterRule("colon", cfg, ":"),
		delimiterRule("dash", cfg, " - ", " – ", " — "),
		delimiterRule("equals", cfg, "="),
	}
}

// delimiterRule splits a line at the first occurrence of the earliest
// delimiter and validates both sides.
func delimiterRule(name string, cfg types.ExtractionConfig, delims ...string) Rule[types.DefinitionPair] {
	return Rule[types.DefinitionPair]{
		Name: name,
		Apply: func(line string) (types.DefinitionPair, bool) {
			line = stripListMarker(line)
			idx, width := -1, 0
			for _, d := range delims {
				if i := strings.Index(line, d); i >= 0 && (idx < 0 || i < idx) {
					idx, width = i, len(d)
				}
			}
			if idx <= 0 || isClockSeparator(line, idx, width) {
				return types.DefinitionPair{}, false
			}
			pair := types.DefinitionPair{
				Term:       strings.TrimSpace(line[:idx]),
				Definition: strings.TrimSpace(line[idx+width:]),
			}
			return pair, validPair(pair, cfg)
		},
	}
}

// isClockSeparator reports whether a one-byte delimiter at idx sits between
// two digits, as in "10:30".
func isClockSeparator(line string, idx, width int) bool {
	if width != 1 || idx+1 >= len(line) {
		return false
	}
	return isDigit(line[idx-1]) && isDigit(line[idx+1])
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func validPair(p types.DefinitionPair, cfg types.ExtractionConfig) bool {
	first, _ := utf8.DecodeRuneInString(p.Term)
	if !unicode.IsUpper(first) {
		return false
	}
	tl := normalize.RuneLen(p.Term)
	dl := normalize.RuneLen(p.Definition)
	return tl >= cfg.TermMinLength && tl <= cfg.TermMaxLength &&
		dl >= cfg.DefinitionMinLength && dl <= cfg.DefinitionMaxLength
}
