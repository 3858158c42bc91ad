package hn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/humblenginr/hn_wordfreq/ctxlog"
)

const defaultBase = "https://hacker-news.firebaseio.com/v0"

// Fetcher collects stories from the Hacker News Firebase API. Transient
// failures (network errors, 429, 5xx) are retried with exponential backoff;
// item payloads are cached for the fetcher's lifetime so overlapping fetches
// do not re-request the same id.
type Fetcher struct {
	base       string
	client     *http.Client
	cache      *memoryCache
	maxRetries uint64
	pace       time.Duration
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		base:       defaultBase,
		client:     &http.Client{Timeout: 15 * time.Second},
		cache:      newMemoryCache(10 * time.Minute),
		maxRetries: 3,
		pace:       50 * time.Millisecond,
	}
}

// TopStories fetches up to limit items from the current top-stories list and
// returns those that are stories with a title. Dead or deleted items come
// back from the API as nulls or non-story types and are skipped.
func (f *Fetcher) TopStories(ctx context.Context, limit int) ([]Story, error) {
	logger := ctxlog.FromContext(ctx)

	var ids []int
	if err := f.getJSON(ctx, f.base+"/topstories.json", &ids); err != nil {
		return nil, fmt.Errorf("fetch topstories: %w", err)
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	logger.Info("fetching stories", "count", len(ids))

	stories := make([]Story, 0, len(ids))
	for _, id := range ids {
		var s Story
		if err := f.getJSON(ctx, fmt.Sprintf("%s/item/%d.json", f.base, id), &s); err != nil {
			return nil, fmt.Errorf("fetch item %d: %w", id, err)
		}
		if s.Type != "story" || s.Title == "" {
			continue
		}
		stories = append(stories, s)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.pace):
		}
	}
	return stories, nil
}

func (f *Fetcher) getJSON(ctx context.Context, url string, v any) error {
	if body, ok := f.cache.Get(url); ok {
		return json.Unmarshal(body, v)
	}

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := f.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("http %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("http %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), f.maxRetries)
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return err
	}

	f.cache.Set(url, body)
	return json.Unmarshal(body, v)
}
