package ranking

import (
	"cmp"
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

type erroredFilter struct {
	toggle
	keep bool
}

// NewErrored creates a step that drops candidates whose scoring fell back.
func NewErrored() Filter {
	return &erroredFilter{}
}

func (f *erroredFilter) Name() string { return "errored" }

func (f *erroredFilter) Validate(cfg *Config) error {
	f.keep = cfg.KeepErrored
	return nil
}

func (f *erroredFilter) Apply(_ context.Context, deps Deps, s *Shortlist) (*Shortlist, Step, error) {
	initial := s.Len()
	if f.keep {
		return s, Step{Initial: initial, Left: initial}, nil
	}

	var errored []string
	for _, item := range s.Items {
		if item.Result == nil || item.Result.Error {
			errored = append(errored, item.Key())
		}
	}
	removed := s.Exclude(errored)

	if len(removed) > 0 {
		deps.Logger.Info("excluding candidates with scoring errors",
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", s.Len()),
		)
	}

	return s, Step{Initial: initial, Dropped: len(removed), Left: s.Len()}, nil
}

func (f *erroredFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"keep_errored": strconv.FormatBool(f.keep)},
	}
}

type duplicatesFilter struct {
	toggle
}

// NewDuplicates creates a step that keeps the best scored entry per candidate key.
func NewDuplicates() Filter {
	return &duplicatesFilter{}
}

func (f *duplicatesFilter) Name() string { return "duplicates" }

func (f *duplicatesFilter) Validate(*Config) error { return nil }

func (f *duplicatesFilter) Apply(_ context.Context, deps Deps, s *Shortlist) (*Shortlist, Step, error) {
	initial := s.Len()

	best := make(map[string]int, initial)
	kept := make([]*Scored, 0, initial)
	var dropped []string

	for _, item := range s.Items {
		key := item.Key()
		idx, seen := best[key]
		switch {
		case !seen:
			best[key] = len(kept)
			kept = append(kept, item)
		case item.FitScore() > kept[idx].FitScore():
			kept[idx] = item
			dropped = append(dropped, key)
		default:
			dropped = append(dropped, key)
		}
	}
	s.Items = kept

	if len(dropped) > 0 {
		deps.Logger.Info("excluding duplicate candidates",
			zap.Strings("excluded_candidates", dropped),
			zap.Int("candidates_left", s.Len()),
		)
	}

	return s, Step{Initial: initial, Dropped: initial - s.Len(), Left: s.Len()}, nil
}

type contactedFileFilter struct {
	toggle
	path string
}

// NewContactedFile creates a step that drops candidates already listed in the contacted file.
func NewContactedFile() Filter {
	return &contactedFileFilter{}
}

func (f *contactedFileFilter) Name() string { return "contacted_file" }

func (f *contactedFileFilter) Validate(cfg *Config) error {
	f.path = strings.TrimSpace(cfg.ContactedFile)
	return nil
}

func (f *contactedFileFilter) Apply(_ context.Context, deps Deps, s *Shortlist) (*Shortlist, Step, error) {
	initial := s.Len()
	if f.path == "" {
		return s, Step{Initial: initial, Left: initial}, nil
	}

	contacted, err := ContactedFromFile(f.path)
	if err != nil {
		return s, Step{}, fmt.Errorf("getting contacted candidates from file: %w", err)
	}

	removed := s.Exclude(contacted.Keys())
	if len(removed) > 0 {
		deps.Logger.Info("excluding candidates based on contacted file",
			zap.String("path", f.path),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", s.Len()),
		)
	}

	return s, Step{Initial: initial, Dropped: len(removed), Left: s.Len()}, nil
}

func (f *contactedFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type minScoreFilter struct {
	toggle
	threshold float64
}

// NewMinScore creates a step that drops candidates below the fit score threshold.
func NewMinScore() Filter {
	return &minScoreFilter{}
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) Validate(cfg *Config) error {
	if cfg.MinScore < 0 || cfg.MinScore > 10 {
		return fmt.Errorf("minimum score must be within [0, 10], got %.2f", cfg.MinScore)
	}
	f.threshold = cfg.MinScore
	return nil
}

func (f *minScoreFilter) Apply(_ context.Context, deps Deps, s *Shortlist) (*Shortlist, Step, error) {
	initial := s.Len()

	var below []string
	for _, item := range s.Items {
		if item.FitScore() < f.threshold {
			below = append(below, item.Key())
		}
	}
	removed := s.Exclude(below)

	if len(removed) > 0 {
		deps.Logger.Info("excluding candidates below minimum score",
			zap.Float64("min_score", f.threshold),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", s.Len()),
		)
	}

	return s, Step{Initial: initial, Dropped: len(removed), Left: s.Len()}, nil
}

func (f *minScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"min_score": strconv.FormatFloat(f.threshold, 'f', 2, 64)},
	}
}

type topNFilter struct {
	toggle
	n int
}

// NewTopN creates a step that ranks the shortlist and keeps the best n entries.
// A non-positive n ranks without truncating.
func NewTopN() Filter {
	return &topNFilter{}
}

func (f *topNFilter) Name() string { return "top_n" }

func (f *topNFilter) Validate(cfg *Config) error {
	f.n = cfg.TopN
	return nil
}

func (f *topNFilter) Apply(_ context.Context, _ Deps, s *Shortlist) (*Shortlist, Step, error) {
	initial := s.Len()

	s.Sort()
	if f.n > 0 && s.Len() > f.n {
		s.Items = s.Items[:f.n]
	}

	return s, Step{Initial: initial, Dropped: initial - s.Len(), Left: s.Len()}, nil
}

func (f *topNFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"top_n": strconv.Itoa(f.n)},
	}
}

// compareScored orders by fit score desc, confidence desc, then name.
func compareScored(a, b *Scored) int {
	if c := cmp.Compare(b.FitScore(), a.FitScore()); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Confidence(), a.Confidence()); c != 0 {
		return c
	}
	return strings.Compare(a.Name(), b.Name())
}
