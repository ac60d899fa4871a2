package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/sourcing-agent/internal/outreach"
	"github.com/spigell/sourcing-agent/internal/outreach/gemini"
	"github.com/spigell/sourcing-agent/internal/pipeline"
	"github.com/spigell/sourcing-agent/internal/ranking"
	"github.com/spigell/sourcing-agent/internal/scoring"
	"github.com/spigell/sourcing-agent/internal/secrets"
	"github.com/spigell/sourcing-agent/internal/source"
)

func loadJob(cfg *JobConfig) (scoring.Job, error) {
	text := strings.TrimSpace(cfg.Text)
	if cfg.File != "" {
		data, err := os.ReadFile(cfg.File)
		if err != nil {
			return scoring.Job{}, fmt.Errorf("reading job description: %w", err)
		}
		text = strings.TrimSpace(string(data))
	}
	if text == "" {
		return scoring.Job{}, errors.New("job description is empty")
	}
	return scoring.Job{Description: text, Location: strings.TrimSpace(cfg.Location)}, nil
}

func newSource(cfg *SourceConfig, logger *zap.Logger) (pipeline.Source, error) {
	switch cfg.Type {
	case SourceTypeFile:
		return &source.File{Path: cfg.File, Logger: logger}, nil
	case SourceTypeHTTP:
		token, err := secrets.Load(secrets.Source{
			Name: "sourcing api token",
			File: cfg.TokenFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set source.token-file or SOURCING_TOKEN_FILE)", err)
		}

		client := source.New(logger, strings.TrimRight(cfg.URL, "/"), token)
		client.PageDelay = cfg.PageDelay
		if cfg.UserAgent != "" {
			client.UserAgent = cfg.UserAgent
		}

		params := cfg.Query
		if cfg.PerPage > 0 {
			params.PerPage = cfg.PerPage
		}
		return &source.Search{Client: client, Params: params}, nil
	default:
		return nil, fmt.Errorf("unsupported source type: %s", cfg.Type)
	}
}

// newEnricher returns nil when github enrichment is disabled.
func newEnricher(cfg *GitHubConfig, logger *zap.Logger) pipeline.Enricher {
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	token, err := secrets.Load(secrets.Source{
		Name: "github token",
		File: cfg.TokenFile,
		Env:  "GITHUB_TOKEN",
	})
	if err != nil {
		logger.Warn("github token is not set, using unauthenticated requests", zap.Error(err))
		token = ""
	}

	return source.NewGitHub(logger, cfg.APIURL, token)
}

func newScorer(cfg *ScoringConfig, logger *zap.Logger) (*scoring.Scorer, error) {
	opts := []scoring.Option{scoring.WithLogger(logger)}
	if cfg != nil {
		if cfg.Weights != nil {
			opts = append(opts, scoring.WithWeights(*cfg.Weights))
		}
		if cfg.MultiSourceWeights != nil {
			opts = append(opts, scoring.WithMultiSourceWeights(*cfg.MultiSourceWeights))
		}
		if cfg.Lexicon != nil {
			opts = append(opts, scoring.WithLexicon(*cfg.Lexicon))
		}
	}
	return scoring.New(opts...)
}

func rankingConfig(cfg *RankingConfig) *ranking.Config {
	return &ranking.Config{
		MinScore:      cfg.MinScore,
		TopN:          cfg.TopN,
		ContactedFile: cfg.ContactedFile,
		KeepErrored:   cfg.KeepErrored,
	}
}

func outreachOptions(cfg *OutreachConfig, job *JobConfig) (pipeline.OutreachOptions, error) {
	if cfg == nil {
		cfg = &OutreachConfig{}
	}

	mt, err := outreach.ParseMessageType(cfg.Type)
	if err != nil {
		return pipeline.OutreachOptions{}, err
	}
	tone, err := outreach.ParseTone(cfg.Tone)
	if err != nil {
		return pipeline.OutreachOptions{}, err
	}

	role := cfg.Role
	if role == "" && job != nil {
		role = job.Title
	}

	return pipeline.OutreachOptions{
		Type:    mt,
		Tone:    tone,
		Role:    role,
		Sender:  cfg.Sender,
		Company: cfg.Company,
		Context: cfg.Context,
	}, nil
}

// newGenerator builds the message generator. The template generator is
// always the last resort.
func newGenerator(ctx context.Context, cfg *OutreachConfig, logger *zap.Logger) (outreach.Generator, error) {
	tmpl, err := outreach.NewTemplate()
	if err != nil {
		return nil, err
	}

	provider := ProviderTemplate
	if cfg != nil && cfg.Provider != "" {
		provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	}

	switch provider {
	case ProviderTemplate:
		return tmpl, nil
	case ProviderGemini:
		gcfg := cfg.Gemini
		if gcfg == nil {
			gcfg = &GeminiConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: gcfg.APIKeyFile,
			Env:  "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set outreach.gemini.api-key-file or GEMINI_API_KEY)", err)
		}

		client, err := gemini.NewClient(ctx, apiKey, gcfg.Model, gcfg.MaxRetries, logger)
		if err != nil {
			return nil, err
		}

		return outreach.WithFallback(gemini.NewGenerator(client, logger, gcfg.MaxLogLength), tmpl, logger), nil
	default:
		return nil, fmt.Errorf("unsupported outreach provider: %s", provider)
	}
}
