// Package lexical holds the keyword matching primitives shared by the scorers.
// All functions expect lower-cased input.
package lexical

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ContainsTerm reports whether term occurs in text on word boundaries.
// A boundary is the start or end of text or any rune that is not a letter or digit,
// so "mit" does not match "submit" while "c++" still matches "c++ and go".
func ContainsTerm(text, term string) bool {
	if term == "" || len(term) > len(text) {
		return false
	}

	for offset := 0; offset <= len(text)-len(term); {
		idx := strings.Index(text[offset:], term)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(term)

		if boundaryBefore(text, start, term) && boundaryAfter(text, end, term) {
			return true
		}

		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}

	return false
}

// ContainsAny reports whether any of terms occurs in text.
func ContainsAny(text string, terms []string) bool {
	for _, term := range terms {
		if ContainsTerm(text, term) {
			return true
		}
	}
	return false
}

// CountTerms returns how many distinct terms occur in text.
func CountTerms(text string, terms []string) int {
	return len(MatchedTerms(text, terms))
}

// MatchedTerms returns the terms found in text, in the order of terms and without duplicates.
func MatchedTerms(text string, terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	matched := make([]string, 0)
	for _, term := range terms {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		if ContainsTerm(text, term) {
			matched = append(matched, term)
		}
	}
	return matched
}

// Words splits text on whitespace into a set, dropping the given stopwords.
func Words(text string, stopwords map[string]struct{}) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(text) {
		if _, skip := stopwords[w]; skip {
			continue
		}
		words[w] = struct{}{}
	}
	return words
}

// Jaccard returns |a∩b| / |a∪b|, or 0 when both sets are empty.
func Jaccard(a, b map[string]struct{}) float64 {
	union := len(a)
	overlap := 0
	for w := range b {
		if _, ok := a[w]; ok {
			overlap++
			continue
		}
		union++
	}
	if union == 0 {
		return 0
	}
	return float64(overlap) / float64(union)
}

// Join lower-cases and joins the non-empty parts with single spaces.
func Join(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		kept = append(kept, strings.ToLower(p))
	}
	return strings.Join(kept, " ")
}

func boundaryBefore(text string, start int, term string) bool {
	if start == 0 || !isWordRune(firstRune(term)) {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:start])
	return !isWordRune(r)
}

func boundaryAfter(text string, end int, term string) bool {
	if end >= len(text) || !isWordRune(lastRune(term)) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[end:])
	return !isWordRune(r)
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
