package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/humblenginr/hn_wordfreq/hn"
)

func TestFilterPopular(t *testing.T) {
	stories := []hn.Story{
		{ID: 1, Title: "big", Score: 100, Descendants: 50},
		{ID: 2, Title: "score only", Score: 100, Descendants: 2},
		{ID: 3, Title: "comments only", Score: 5, Descendants: 50},
		{ID: 4, Title: "boundary", Score: 50, Descendants: 10},
	}
	kept := FilterPopular(stories, 50, 10)
	assert.Len(t, kept, 2)
	assert.Equal(t, 1, kept[0].ID)
	assert.Equal(t, 4, kept[1].ID)
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  []string
	}{
		{"plain", "Go is great", []string{"go", "is", "great"}},
		{"punctuation", "Show HN: My $0-cost GPU cluster!", []string{"show", "hn", "my", "cost", "gpu", "cluster"}},
		{"digits stripped", "GPT4 beats GPT3.5", []string{"gpt", "beats", "gpt"}},
		{"unicode", "Curl über alles", []string{"curl", "über", "alles"}},
		{"empty", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTitle(tt.title))
		})
	}
}

func TestCountWords(t *testing.T) {
	stop := Stopwords{"the": {}, "a": {}}
	words := []string{"the", "kernel", "kernel", "a", "x", "rust"}
	freq := CountWords(words, stop)

	// Stop words and single letters are excluded; each remaining word is
	// counted once per occurrence, including its first.
	assert.Equal(t, map[string]int{"kernel": 2, "rust": 1}, freq)
}

func TestCountWordsDefaultStopwords(t *testing.T) {
	words := CleanTitles([]string{"The state of the art in Go"})
	freq := CountWords(words, DefaultStopwords())
	assert.Equal(t, map[string]int{"state": 1, "art": 1, "go": 1}, freq)
}

func TestTopN(t *testing.T) {
	freq := map[string]int{"go": 3, "rust": 3, "zig": 5, "odin": 1}

	top := TopN(freq, 3)
	assert.Equal(t, []Entry{{"zig", 5}, {"go", 3}, {"rust", 3}}, top)

	all := TopN(freq, 0)
	assert.Len(t, all, 4)
	assert.Equal(t, Entry{"odin", 1}, all[3])
}

func TestLoadStopwordsMergesOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.txt")
	if err := os.WriteFile(path, []byte("hn # forum prefix\nshow\n"), 0600); err != nil {
		t.Fatal(err)
	}
	stop, err := LoadStopwords(path)
	assert.NoError(t, err)
	assert.True(t, stop.Contains("hn"))
	assert.True(t, stop.Contains("show"))
	assert.True(t, stop.Contains("the")) // from defaults
}
