package scoring

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/spigell/sourcing-agent/internal/profile"
)

type BatchOptions struct {
	MultiSource bool
	// Concurrency bounds parallel scoring. Zero means GOMAXPROCS.
	Concurrency int
}

// ScoreBatch scores every candidate and returns the results in input order.
// The only error is cancellation of ctx.
func (s *Scorer) ScoreBatch(ctx context.Context, candidates []*profile.Candidate, job Job, opts BatchOptions) ([]*Result, error) {
	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, c := range candidates {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if opts.MultiSource {
				results[i] = s.ScoreJobWithMultiSource(c, job)
			} else {
				results[i] = s.ScoreJob(c, job)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
