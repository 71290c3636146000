// ABOUTME: Word-level helpers shared by the router and the extractors
// ABOUTME: Tokenizing, phrase containment and filler trimming
package core

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// normalize lowercases text, folds curly apostrophes and collapses whitespace
func normalize(text string) string {
	text = strings.NewReplacer("’", "'", "‘", "'").Replace(strings.ToLower(text))
	return strings.Join(strings.Fields(text), " ")
}

// tokens splits text into lowercase words; apostrophes stay inside words
func tokens(text string) []string {
	return strings.FieldsFunc(normalize(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

// wordSet builds a lookup set from words
func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// hasAnyToken reports whether any token of text is in set
func hasAnyToken(text string, set map[string]bool) bool {
	for _, tok := range tokens(text) {
		if set[tok] {
			return true
		}
	}
	return false
}

// containsPhrase reports whether phrase occurs in text on word boundaries
func containsPhrase(text, phrase string) bool {
	padded := " " + strings.Join(tokens(text), " ") + " "
	return strings.Contains(padded, " "+strings.Join(tokens(phrase), " ")+" ")
}

// bareWord strips surrounding punctuation from a whitespace-delimited word
func bareWord(word string) string {
	return strings.TrimFunc(strings.ToLower(word), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

// trimFiller drops filler words from both ends of words until none remain
func trimFiller(words []string, leading, trailing map[string]bool) []string {
	for len(words) > 0 && leading[bareWord(words[0])] {
		words = words[1:]
	}
	for len(words) > 0 && trailing[bareWord(words[len(words)-1])] {
		words = words[:len(words)-1]
	}
	return words
}

// stripSpan removes text[start:end] and rejoins the remainder
func stripSpan(text string, start, end int) string {
	return strings.Join(strings.Fields(text[:start]+" "+text[end:]), " ")
}

// capitalize upper-cases the first letter of s
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// truncate shortens s to at most n runes, appending "..." when cut
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
