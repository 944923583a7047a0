// Package bm25 implements Okapi BM25 ranking over small in-memory corpora.
//
// A Corpus is built from raw document strings in two passes (tokenize every
// document, then derive document frequencies and IDF) and is immutable
// afterwards. A Scorer holds the k1/b parameters and ranks a Corpus against a
// tokenized query. Nothing here is persisted; callers rebuild the corpus per query.
package bm25

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minTokenLen is the shortest token kept; shorter tokens are dropped.
const minTokenLen = 3

// Tokenize normalizes text into lowercase tokens.
//
// Every rune that is not a letter, digit or whitespace becomes a space, the
// text is lowercased and split on whitespace, and tokens of two runes or
// fewer are discarded. Empty or whitespace-only input yields nil.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, text)

	var tokens []string
	for _, tok := range strings.Fields(strings.ToLower(cleaned)) {
		if utf8.RuneCountInString(tok) >= minTokenLen {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
