// Package analysis holds the transformation steps of the word-frequency
// run: popularity filtering, title cleaning, stop-word removal, counting
// and ranking. Every function is pure so each can serve as a pipeline
// task body.
package analysis

import (
	"strings"
	"unicode"

	"github.com/humblenginr/hn_wordfreq/hn"
)

// FilterPopular keeps stories at or above both popularity thresholds.
func FilterPopular(stories []hn.Story, minScore, minComments int) []hn.Story {
	var out []hn.Story
	for _, s := range stories {
		if s.Score >= minScore && s.Descendants >= minComments {
			out = append(out, s)
		}
	}
	return out
}

// Titles extracts the title of every story, in order.
func Titles(stories []hn.Story) []string {
	titles := make([]string, len(stories))
	for i, s := range stories {
		titles[i] = s.Title
	}
	return titles
}

// CleanTitle lowercases a title, strips punctuation and digits, and splits
// it into words. "Show HN: My $0-cost GPU cluster" -> [show hn my cost gpu cluster].
func CleanTitle(title string) []string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}

// CleanTitles flattens the cleaned words of every title into one list.
func CleanTitles(titles []string) []string {
	var words []string
	for _, t := range titles {
		words = append(words, CleanTitle(t)...)
	}
	return words
}

// CountWords builds a word -> occurrence map, skipping stop words and
// single-letter fragments left over from cleaning.
func CountWords(words []string, stop Stopwords) map[string]int {
	freq := make(map[string]int)
	for _, w := range words {
		if len(w) < 2 || stop.Contains(w) {
			continue
		}
		if _, ok := freq[w]; ok {
			freq[w]++
		} else {
			freq[w] = 1
		}
	}
	return freq
}
