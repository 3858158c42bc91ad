package analysis

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed stopwords.txt
var defaultStopwords string

// Stopwords is the set of words excluded from counting.
type Stopwords map[string]struct{}

// DefaultStopwords returns the embedded English stop-word list.
func DefaultStopwords() Stopwords {
	return parseStopwords(defaultStopwords)
}

// LoadStopwords merges the words in the file at path (one word per line,
// '#' starts a comment) on top of the embedded defaults.
func LoadStopwords(path string) (Stopwords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stopwords: %w", err)
	}
	stop := DefaultStopwords()
	for w := range parseStopwords(string(data)) {
		stop[w] = struct{}{}
	}
	return stop, nil
}

// Contains reports whether w is a stop word.
func (s Stopwords) Contains(w string) bool {
	_, ok := s[w]
	return ok
}

func parseStopwords(text string) Stopwords {
	stop := make(Stopwords)
	for _, line := range strings.Split(text, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		w := strings.ToLower(strings.TrimSpace(line))
		if w == "" {
			continue
		}
		stop[w] = struct{}{}
	}
	return stop
}
