package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/sourcing-agent/internal/outreach"
	"github.com/spigell/sourcing-agent/internal/ranking"
	"github.com/spigell/sourcing-agent/internal/scoring"
	"github.com/spigell/sourcing-agent/internal/source"
)

func newTestViper(values map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestDecodeConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := decodeConfig(newTestViper(map[string]any{
		"job.text":    "Senior ML engineer, python and pytorch",
		"source.file": "candidates.json",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Source.Type != SourceTypeFile {
		t.Fatalf("expected default source type %q, got %q", SourceTypeFile, cfg.Source.Type)
	}
	if cfg.Ranking.MinScore != ranking.DefaultMinScore || cfg.Ranking.TopN != ranking.DefaultTopN {
		t.Fatalf("unexpected ranking defaults: %+v", cfg.Ranking)
	}
	if cfg.GitHub == nil || cfg.GitHub.APIURL != source.DefaultGitHubURL {
		t.Fatalf("expected default github api url, got %+v", cfg.GitHub)
	}
	if cfg.Outreach == nil || cfg.Outreach.Provider != ProviderTemplate {
		t.Fatalf("expected template provider by default, got %+v", cfg.Outreach)
	}
}

func TestDecodeConfigValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values map[string]any
	}{
		{
			name:   "missing job",
			values: map[string]any{"source.file": "candidates.json"},
		},
		{
			name:   "http source without url",
			values: map[string]any{"job.text": "jd", "source.type": "http"},
		},
		{
			name:   "unknown source type",
			values: map[string]any{"job.text": "jd", "source.type": "ftp"},
		},
		{
			name:   "min score out of range",
			values: map[string]any{"job.text": "jd", "source.file": "c.json", "ranking.min-score": 11},
		},
		{
			name:   "unknown tone",
			values: map[string]any{"job.text": "jd", "source.file": "c.json", "outreach.tone": "grumpy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := decodeConfig(newTestViper(tt.values)); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoadJob(t *testing.T) {
	t.Parallel()

	job, err := loadJob(&JobConfig{Text: "  ML engineer  ", Location: " Palo Alto, CA "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Description != "ML engineer" || job.Location != "Palo Alto, CA" {
		t.Fatalf("unexpected job: %+v", job)
	}

	path := filepath.Join(t.TempDir(), "jd.txt")
	if err := os.WriteFile(path, []byte("From file\n"), 0o600); err != nil {
		t.Fatalf("write job file: %v", err)
	}
	job, err = loadJob(&JobConfig{File: path, Text: "ignored"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Description != "From file" {
		t.Fatalf("expected file to win over inline text, got %q", job.Description)
	}

	if _, err := loadJob(&JobConfig{Text: "   "}); err == nil {
		t.Fatalf("expected error for empty description")
	}
	if _, err := loadJob(&JobConfig{File: filepath.Join(t.TempDir(), "missing.txt")}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestNewSource(t *testing.T) {
	logger := zap.NewNop()

	src, err := newSource(&SourceConfig{Type: SourceTypeFile, File: "c.json"}, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f, ok := src.(*source.File); !ok || f.Path != "c.json" {
		t.Fatalf("expected file source, got %#v", src)
	}

	tokenFile := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(tokenFile, []byte("secret\n"), 0o600); err != nil {
		t.Fatalf("write token: %v", err)
	}
	src, err = newSource(&SourceConfig{
		Type:      SourceTypeHTTP,
		URL:       "https://api.example.com/",
		TokenFile: tokenFile,
		PerPage:   25,
		Query:     source.SearchParams{Text: "ml engineer", PerPage: 10},
	}, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	search, ok := src.(*source.Search)
	if !ok {
		t.Fatalf("expected search source, got %#v", src)
	}
	if search.Client.APIURL != "https://api.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", search.Client.APIURL)
	}
	if search.Params.PerPage != 25 || search.Params.Text != "ml engineer" {
		t.Fatalf("unexpected params: %+v", search.Params)
	}

	_, err = newSource(&SourceConfig{Type: SourceTypeHTTP, URL: "https://api.example.com"}, logger)
	if err == nil || !strings.Contains(err.Error(), "SOURCING_TOKEN_FILE") {
		t.Fatalf("expected missing token error, got %v", err)
	}

	if _, err := newSource(&SourceConfig{Type: "ftp"}, logger); err == nil {
		t.Fatalf("expected unsupported type error")
	}
}

func TestNewEnricherDisabled(t *testing.T) {
	t.Parallel()

	if e := newEnricher(nil, zap.NewNop()); e != nil {
		t.Fatalf("expected nil enricher without config")
	}
	if e := newEnricher(&GitHubConfig{}, zap.NewNop()); e != nil {
		t.Fatalf("expected nil enricher when disabled")
	}
}

func TestNewScorer(t *testing.T) {
	t.Parallel()

	s, err := newScorer(nil, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Weights() != scoring.DefaultWeights() {
		t.Fatalf("expected default weights, got %+v", s.Weights())
	}

	if _, err := newScorer(&ScoringConfig{Weights: &scoring.Weights{}}, zap.NewNop()); err == nil {
		t.Fatalf("expected error for all-zero weights")
	}
}

func TestOutreachOptions(t *testing.T) {
	t.Parallel()

	opts, err := outreachOptions(nil, &JobConfig{Title: "ML Engineer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Role != "ML Engineer" {
		t.Fatalf("expected role from job title, got %q", opts.Role)
	}
	if opts.Type != outreach.InitialOutreach || opts.Tone != outreach.Professional {
		t.Fatalf("unexpected defaults: %+v", opts)
	}

	opts, err = outreachOptions(&OutreachConfig{Type: "follow_up", Tone: "casual", Role: "Staff Engineer"}, &JobConfig{Title: "ML Engineer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Role != "Staff Engineer" || opts.Type != outreach.FollowUp || opts.Tone != outreach.Casual {
		t.Fatalf("unexpected options: %+v", opts)
	}

	if _, err := outreachOptions(&OutreachConfig{Type: "cold_call"}, nil); err == nil {
		t.Fatalf("expected error for unknown message type")
	}
}

func TestNewGenerator(t *testing.T) {
	gen, err := newGenerator(context.Background(), nil, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gen.Name() != "template" {
		t.Fatalf("expected template generator, got %q", gen.Name())
	}

	t.Setenv("GEMINI_API_KEY", "")
	_, err = newGenerator(context.Background(), &OutreachConfig{Provider: ProviderGemini}, zap.NewNop())
	if err == nil || !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Fatalf("expected missing api key error, got %v", err)
	}

	if _, err := newGenerator(context.Background(), &OutreachConfig{Provider: "openai"}, zap.NewNop()); err == nil {
		t.Fatalf("expected unsupported provider error")
	}
}
