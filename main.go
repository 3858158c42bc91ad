package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/humblenginr/hn_wordfreq/analysis"
	"github.com/humblenginr/hn_wordfreq/config"
	"github.com/humblenginr/hn_wordfreq/ctxlog"
	"github.com/humblenginr/hn_wordfreq/hn"
	"github.com/humblenginr/hn_wordfreq/pipeline"
	"github.com/humblenginr/hn_wordfreq/report"
	"github.com/humblenginr/hn_wordfreq/store"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("hn_wordfreq", flag.ContinueOnError)
	configPath := fs.String("config", "", "HCL config file")
	fetch := fs.Bool("fetch", false, "refresh the story dump from the live API first")
	out := fs.String("out", "", "output path (overrides config)")
	format := fs.String("format", "", "output format: csv|json|pdf (overrides config)")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return err
		}
	}
	if *out != "" {
		cfg.Analysis.Output = *out
	}
	if *format != "" {
		cfg.Analysis.Format = *format
	}

	if *fetch || cfg.Fetch.Enabled {
		stories, err := hn.NewFetcher().TopStories(ctx, cfg.Fetch.Limit)
		if err != nil {
			return fmt.Errorf("fetch stories: %w", err)
		}
		if err := hn.WriteDump(cfg.Analysis.Input, stories); err != nil {
			return err
		}
		logger.Info("refreshed dump", "path", cfg.Analysis.Input, "stories", len(stories))
	}

	stop := analysis.DefaultStopwords()
	if cfg.Analysis.Stopwords != "" {
		var err error
		stop, err = analysis.LoadStopwords(cfg.Analysis.Stopwords)
		if err != nil {
			return err
		}
	}

	rank, p, err := buildPipeline(cfg, stop)
	if err != nil {
		return err
	}

	results, err := p.Run(ctx)
	if err != nil {
		return err
	}

	entries := results[rank].([]analysis.Entry)
	data, err := report.Export(entries, cfg.Analysis.Format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.Analysis.Output, data, 0644); err != nil {
		return err
	}
	logger.Info("wrote report", "path", cfg.Analysis.Output, "format", cfg.Analysis.Format, "words", len(entries))

	if cfg.Store != nil && cfg.Store.DSN != "" {
		st, err := store.Open(cfg.Store.DSN)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		if err := st.SaveRun(ctx, entries, time.Now()); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		logger.Info("persisted run", "entries", len(entries))
	}
	return nil
}

// buildPipeline registers the analysis steps as one dependency chain:
// load -> filter -> serialize -> extract -> clean -> count -> rank.
// The returned handle is the rank task, whose output is the final ranking.
func buildPipeline(cfg *config.Config, stop analysis.Stopwords) (*pipeline.Task, *pipeline.Pipeline, error) {
	p := pipeline.New()

	load, err := p.AddTask("load", func(ctx context.Context, _ any) (any, error) {
		return hn.LoadDump(cfg.Analysis.Input)
	}, nil)
	if err != nil {
		return nil, nil, err
	}

	filter, err := p.AddTask("filter", func(ctx context.Context, in any) (any, error) {
		stories := in.([]hn.Story)
		kept := analysis.FilterPopular(stories, cfg.Analysis.MinScore, cfg.Analysis.MinComments)
		ctxlog.FromContext(ctx).Info("filtered stories", "kept", len(kept), "of", len(stories))
		return kept, nil
	}, load)
	if err != nil {
		return nil, nil, err
	}

	// Serialize is a pass-through: it writes the filtered set as a CSV
	// sidecar and hands the stories on unchanged.
	serialize, err := p.AddTask("serialize", func(ctx context.Context, in any) (any, error) {
		if cfg.Analysis.StoriesOut == "" {
			return in, nil
		}
		data, err := report.StoriesCSV(in.([]hn.Story))
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(cfg.Analysis.StoriesOut, data, 0644); err != nil {
			return nil, err
		}
		return in, nil
	}, filter)
	if err != nil {
		return nil, nil, err
	}

	extract, err := p.AddTask("extract", func(ctx context.Context, in any) (any, error) {
		return analysis.Titles(in.([]hn.Story)), nil
	}, serialize)
	if err != nil {
		return nil, nil, err
	}

	clean, err := p.AddTask("clean", func(ctx context.Context, in any) (any, error) {
		return analysis.CleanTitles(in.([]string)), nil
	}, extract)
	if err != nil {
		return nil, nil, err
	}

	count, err := p.AddTask("count", func(ctx context.Context, in any) (any, error) {
		return analysis.CountWords(in.([]string), stop), nil
	}, clean)
	if err != nil {
		return nil, nil, err
	}

	rank, err := p.AddTask("rank", func(ctx context.Context, in any) (any, error) {
		return analysis.TopN(in.(map[string]int), cfg.Analysis.TopN), nil
	}, count)
	if err != nil {
		return nil, nil, err
	}

	return rank, p, nil
}
