package hn

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpRoundTrip(t *testing.T) {
	stories := []Story{
		{ID: 101, Type: "story", By: "pg", Time: 1700000000, Title: "A title", URL: "https://example.com", Score: 42, Descendants: 7},
		{ID: 102, Type: "story", Title: "Another"},
	}

	path := filepath.Join(t.TempDir(), "nested", "stories.json")
	require.NoError(t, WriteDump(path, stories))

	loaded, err := LoadDump(path)
	require.NoError(t, err)
	assert.Equal(t, stories, loaded)
}

func TestLoadDumpErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadDump(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not an array"), 0600))
		_, err := LoadDump(path)
		assert.ErrorContains(t, err, "unmarshal dump")
	})
}

func TestMemoryCacheTTL(t *testing.T) {
	c := newMemoryCache(-time.Minute)
	c.Set("k", []byte("v"))
	_, ok := c.Get("k")
	assert.False(t, ok, "expired entries are misses")

	c = newMemoryCache(time.Minute)
	c.Set("k", []byte("v"))
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}
