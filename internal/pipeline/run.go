// Package pipeline wires acquisition, enrichment, scoring, ranking and
// outreach into one sourcing run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/sourcing-agent/internal/logger"
	"github.com/spigell/sourcing-agent/internal/outreach"
	"github.com/spigell/sourcing-agent/internal/profile"
	"github.com/spigell/sourcing-agent/internal/ranking"
	"github.com/spigell/sourcing-agent/internal/scoring"
)

const (
	StageEnrich   = "enrich"
	StageOutreach = "outreach"
)

type Source interface {
	Candidates(ctx context.Context) ([]*profile.Candidate, error)
}

type Enricher interface {
	Enrich(ctx context.Context, c *profile.Candidate) error
}

type Deps struct {
	Source   Source
	Enricher Enricher
	Scorer   *scoring.Scorer
	// Generator is optional. Without it no messages are drafted.
	Generator outreach.Generator
	Logger    *zap.Logger
	// Steps defaults to ranking.DefaultSteps.
	Steps []ranking.Filter
	Now   func() time.Time
}

type OutreachOptions struct {
	Type    outreach.MessageType
	Tone    outreach.Tone
	Role    string
	Sender  string
	Company string
	Context string
}

type Options struct {
	Job         scoring.Job
	MultiSource bool
	// Concurrency bounds enrichment, scoring and outreach. Zero means GOMAXPROCS.
	Concurrency int
	Ranking     *ranking.Config
	Outreach    OutreachOptions
}

// Run executes one sourcing run. Only source, ranking and cancellation
// errors abort it; per-candidate failures are recorded in the report.
func Run(ctx context.Context, deps Deps, opts Options) (*Report, error) {
	if deps.Source == nil {
		return nil, errors.New("pipeline: source is required")
	}
	if deps.Scorer == nil {
		return nil, errors.New("pipeline: scorer is required")
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}

	report := &Report{
		RunID:     uuid.New().String(),
		StartedAt: deps.Now().UTC(),
		Job:       opts.Job,
	}
	log := logger.WithFields(deps.Logger, zap.String(logger.FieldRunID, report.RunID))

	log.Info("fetching candidates")
	candidates, err := deps.Source.Candidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}
	report.Total = len(candidates)

	for _, c := range candidates {
		if c == nil {
			continue
		}
		c.Normalize()
		for _, mismatch := range c.SourceMismatches() {
			logger.WithCandidate(log, c.Name, c.LinkedInURL).Debug("data source mismatch", zap.String("detail", mismatch))
		}
	}

	if deps.Enricher != nil {
		if err := enrich(ctx, deps.Enricher, candidates, opts.Concurrency, report, log); err != nil {
			return nil, err
		}
	}

	log.Info("scoring candidates", zap.Int("count", len(candidates)), zap.Bool("multi_source", opts.MultiSource))
	results, err := deps.Scorer.ScoreBatch(ctx, candidates, opts.Job, scoring.BatchOptions{
		MultiSource: opts.MultiSource,
		Concurrency: opts.Concurrency,
	})
	if err != nil {
		return nil, fmt.Errorf("score candidates: %w", err)
	}
	report.Scored = len(results)

	all, err := ranking.NewShortlist(candidates, results)
	if err != nil {
		return nil, err
	}

	steps := deps.Steps
	if steps == nil {
		steps = ranking.DefaultSteps()
	}
	counts := map[string]ranking.Step{}
	shortlist, err := ranking.Run(ctx, opts.Ranking, ranking.Deps{
		Logger: log,
		OnStep: func(name string, info ranking.Step) { counts[name] = info },
	}, steps, all)
	if err != nil {
		return nil, fmt.Errorf("rank candidates: %w", err)
	}
	report.Shortlist = shortlist
	report.Filters = summarize(steps, counts)

	if deps.Generator != nil && shortlist.Len() > 0 {
		messages, err := Draft(ctx, deps.Generator, shortlist, opts, report, log)
		if err != nil {
			return nil, err
		}
		report.Messages = messages
	}

	report.FinishedAt = deps.Now().UTC()

	log.Info("run finished",
		zap.Int("total", report.Total),
		zap.Int("shortlisted", shortlist.Len()),
		zap.Int("messages", len(report.Messages)),
		zap.Int("failures", len(report.Failures)),
	)

	return report, nil
}

func enrich(ctx context.Context, enricher Enricher, candidates []*profile.Candidate, limit int, report *Report, log *zap.Logger) error {
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, c := range candidates {
		if c == nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := enricher.Enrich(gctx, c); err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logger.WithCandidate(log, c.Name, c.LinkedInURL).Warn("enrichment failed", zap.Error(err))
				mu.Lock()
				report.addFailure(c, StageEnrich, err)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("enrich candidates: %w", err)
	}
	return ctx.Err()
}

// Draft generates a message per shortlisted candidate, in shortlist order.
// Failed candidates are recorded in report and left out.
func Draft(ctx context.Context, gen outreach.Generator, s *ranking.Shortlist, opts Options, report *Report, log *zap.Logger) ([]*outreach.Message, error) {
	log = logger.WithFields(log)
	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	messages := make([]*outreach.Message, len(s.Items))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, item := range s.Items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			req := outreach.Request{
				Candidate:      item.Candidate,
				Result:         item.Result,
				JobDescription: opts.Job.Description,
				Type:           opts.Outreach.Type,
				Tone:           opts.Outreach.Tone,
				Role:           opts.Outreach.Role,
				Sender:         opts.Outreach.Sender,
				Company:        opts.Outreach.Company,
				Context:        opts.Outreach.Context,
			}

			msg, err := gen.Generate(gctx, req)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logger.WithCandidate(log, item.Name(), item.Candidate.LinkedInURL).Warn("outreach failed", zap.Error(err))
				if report != nil {
					mu.Lock()
					report.addFailure(item.Candidate, StageOutreach, err)
					mu.Unlock()
				}
				return nil
			}
			messages[i] = msg
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("draft outreach: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]*outreach.Message, 0, len(messages))
	for _, m := range messages {
		if m != nil {
			out = append(out, m)
		}
	}
	return out, nil
}
