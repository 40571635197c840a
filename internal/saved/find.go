// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package saved

import (
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"

	"github.com/pdiddy/papershelf/pkg/types"
)

// Find returns the saved records whose title or abstract contain every
// query word after English stemming. Stop words in the query are ignored;
// a query of only stop words matches nothing.
func (s *Store) Find(query string) []types.Record {
	want := stems(query)
	if len(want) == 0 {
		return []types.Record{}
	}

	out := []types.Record{}
	for _, r := range s.All() {
		have := make(map[string]bool)
		for _, st := range stems(r.Title + " " + r.Abstract) {
			have[st] = true
		}
		if matchesAll(have, want) {
			out = append(out, r)
		}
	}
	return out
}

func matchesAll(have map[string]bool, want []string) bool {
	for _, w := range want {
		if !have[w] {
			return false
		}
	}
	return true
}

// stems tokenizes text on non-alphanumeric runes, drops stop words, and
// stems what remains.
func stems(text string) []string {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.ToLower(tok)
		if snowballeng.IsStopWord(tok) {
			continue
		}
		out = append(out, snowballeng.Stem(tok, false))
	}
	return out
}
