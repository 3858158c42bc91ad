package analysis

import "sort"

// Entry is one ranked word with its occurrence count.
type Entry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TopN returns the n most frequent words, highest count first. Ties are
// broken alphabetically so repeated runs over the same input rank
// identically. n <= 0 or n beyond the vocabulary returns everything.
func TopN(freq map[string]int, n int) []Entry {
	entries := make([]Entry, 0, len(freq))
	for w, c := range freq {
		entries = append(entries, Entry{Word: w, Count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Word < entries[j].Word
	})
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}
