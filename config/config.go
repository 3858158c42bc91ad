// Package config loads the analyzer's run configuration from an HCL file.
// Expressions in the file can reference process environment variables as
// env.NAME, e.g. dsn = env.STORE_DSN.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
)

type Config struct {
	Analysis Analysis
	Fetch    *Fetch
	Store    *Store
}

// Analysis configures the word-frequency run itself.
type Analysis struct {
	// Input is the path of the JSON story dump to analyze.
	Input string
	// MinScore and MinComments are the popularity thresholds. Zero disables
	// a threshold.
	MinScore    int
	MinComments int
	// TopN is how many ranked words to report; zero reports the full ranking.
	TopN int
	// Stopwords optionally names a file merged on top of the built-in list.
	Stopwords string
	// StoriesOut optionally names a CSV sidecar of the filtered stories.
	StoriesOut string
	Output     string
	Format     string
}

// Fetch configures refreshing the dump from the live API before analyzing.
type Fetch struct {
	Enabled bool
	Limit   int
}

// Store configures optional persistence of ranked results. Persistence is
// off unless a DSN is set.
type Store struct {
	DSN string
}

// rawConfig mirrors Config for HCL decoding. The numeric analysis fields
// are pointers so an explicitly configured zero is distinguishable from an
// unset attribute.
type rawConfig struct {
	Analysis rawAnalysis `hcl:"analysis,block"`
	Fetch    *rawFetch   `hcl:"fetch,block"`
	Store    *rawStore   `hcl:"store,block"`
}

type rawAnalysis struct {
	Input       string `hcl:"input"`
	MinScore    *int   `hcl:"min_score,optional"`
	MinComments *int   `hcl:"min_comments,optional"`
	TopN        *int   `hcl:"top_n,optional"`
	Stopwords   string `hcl:"stopwords,optional"`
	StoriesOut  string `hcl:"stories_out,optional"`
	Output      string `hcl:"output,optional"`
	Format      string `hcl:"format,optional"`
}

type rawFetch struct {
	Enabled bool `hcl:"enabled,optional"`
	Limit   int  `hcl:"limit,optional"`
}

type rawStore struct {
	DSN string `hcl:"dsn,optional"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Analysis: Analysis{
			Input:       "stories.json",
			MinScore:    50,
			MinComments: 10,
			TopN:        25,
			Output:      "top_words.csv",
			Format:      "csv",
		},
		Fetch: &Fetch{Limit: 500},
	}
}

// Load decodes the HCL file at path and fills unset fields from Default.
func Load(path string) (*Config, error) {
	var raw rawConfig
	if err := hclsimple.DecodeFile(path, envEvalContext(), &raw); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	def := Default()
	cfg := &Config{
		Analysis: Analysis{
			Input:       raw.Analysis.Input,
			MinScore:    intOr(raw.Analysis.MinScore, def.Analysis.MinScore),
			MinComments: intOr(raw.Analysis.MinComments, def.Analysis.MinComments),
			TopN:        intOr(raw.Analysis.TopN, def.Analysis.TopN),
			Stopwords:   raw.Analysis.Stopwords,
			StoriesOut:  raw.Analysis.StoriesOut,
			Output:      raw.Analysis.Output,
			Format:      raw.Analysis.Format,
		},
	}
	if cfg.Analysis.Output == "" {
		cfg.Analysis.Output = def.Analysis.Output
	}
	if cfg.Analysis.Format == "" {
		cfg.Analysis.Format = def.Analysis.Format
	}
	if raw.Fetch == nil {
		cfg.Fetch = def.Fetch
	} else {
		cfg.Fetch = &Fetch{Enabled: raw.Fetch.Enabled, Limit: raw.Fetch.Limit}
		if cfg.Fetch.Limit == 0 {
			cfg.Fetch.Limit = def.Fetch.Limit
		}
	}
	if raw.Store != nil {
		cfg.Store = &Store{DSN: raw.Store.DSN}
	}
	return cfg, nil
}

func intOr(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}

// envEvalContext exposes the process environment to HCL expressions as the
// env object.
func envEvalContext() *hcl.EvalContext {
	vals := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vals[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vals),
		},
	}
}
