// Package ranking turns scored candidates into an outreach shortlist by
// running an ordered list of filter steps.
package ranking

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const (
	// DefaultMinScore is the lowest fit score worth contacting.
	DefaultMinScore = 6.0
	DefaultTopN     = 5
)

// Filter is a single shortlist step.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, s *Shortlist) (*Shortlist, Step, error)
}

// Deps aggregates dependencies shared across all steps.
type Deps struct {
	Logger *zap.Logger
	// OnStep, when set, receives the counts of every applied step.
	OnStep func(name string, info Step)
}

// Step describes the result of executing one step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

type Config struct {
	MinScore      float64
	TopN          int
	ContactedFile string
	KeepErrored   bool
}

// DefaultConfig mirrors the recruiting agent defaults.
func DefaultConfig() *Config {
	return &Config{MinScore: DefaultMinScore, TopN: DefaultTopN}
}

// Status represents runtime information about a step.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

// DefaultSteps returns the standard pipeline in execution order.
func DefaultSteps() []Filter {
	return []Filter{
		NewErrored(),
		NewDuplicates(),
		NewContactedFile(),
		NewMinScore(),
		NewTopN(),
	}
}

// DisableByName marks the named step as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates every enabled step and then applies them in order.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, s *Shortlist) (*Shortlist, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if s == nil {
		s = &Shortlist{}
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !step.IsEnabled() {
			deps.Logger.Info("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, deps, s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		deps.Logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)
		if deps.OnStep != nil {
			deps.OnStep(step.Name(), info)
		}

		s = next
	}

	return s, nil
}

// Describe returns status entries for the provided steps.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}
		statuses = append(statuses, Status{Name: step.Name(), Enabled: step.IsEnabled()})
	}
	return statuses
}

// toggle carries the disable bookkeeping shared by every step.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }
