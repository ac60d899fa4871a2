// Package scoring rates how well a candidate profile fits a job description.
//
// A Scorer runs six heuristic criteria over the profile, combines them with
// configurable weights and adds confidence, completeness and insight
// annotations. The multi-source entry points additionally grade the
// github, twitter and website enrichments. Scoring never fails: invalid
// input or an internal fault produces a flagged fallback result.
package scoring

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/sourcing-agent/internal/logger"
	"github.com/spigell/sourcing-agent/internal/multisource"
	"github.com/spigell/sourcing-agent/internal/profile"
)

const (
	githubBonus   = 0.3
	twitterBonus  = 0.1
	websiteBonus  = 0.1
	maxBasicBonus = 0.5
)

// Scorer is safe for concurrent use once constructed.
type Scorer struct {
	lex       Lexicon
	weights   Weights
	msWeights multisource.Weights
	logger    *zap.Logger
	now       func() time.Time
}

type Option func(*Scorer)

func WithWeights(w Weights) Option {
	return func(s *Scorer) { s.weights = w }
}

// WithLexicon overrides the non-empty lists of the default lexicon.
func WithLexicon(l Lexicon) Option {
	return func(s *Scorer) { s.lex = DefaultLexicon().Merge(l) }
}

func WithMultiSourceWeights(w multisource.Weights) Option {
	return func(s *Scorer) { s.msWeights = w }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Scorer) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces the clock used for scoring_timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		if now != nil {
			s.now = now
		}
	}
}

// New builds a Scorer. Weights that do not sum to one are rescaled with a warning.
func New(opts ...Option) (*Scorer, error) {
	s := &Scorer{
		lex:       DefaultLexicon(),
		weights:   DefaultWeights(),
		msWeights: multisource.DefaultWeights(),
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.weights.Validate(); err != nil {
		return nil, err
	}
	if err := s.msWeights.Validate(); err != nil {
		return nil, err
	}

	if !s.weights.Normalized() {
		s.logger.Warn("normalizing scoring weights", zap.Float64("sum", s.weights.Sum()))
		s.weights = s.weights.Normalize()
	}

	s.lex = s.lex.clone()

	return s, nil
}

// Weights returns the effective, normalized weights.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score runs the basic scoring against a job description.
func (s *Scorer) Score(c *profile.Candidate, jobDescription string) *Result {
	return s.ScoreJob(c, Job{Description: jobDescription})
}

// ScoreJob runs the basic scoring. It always returns a result.
func (s *Scorer) ScoreJob(c *profile.Candidate, job Job) (res *Result) {
	if c == nil {
		s.logger.Warn("scoring skipped", zap.String("reason", "candidate is nil"))
		return s.fallback("candidate is nil")
	}

	log := logger.WithCandidate(s.logger, c.Name, c.LinkedInURL)

	defer func() {
		if r := recover(); r != nil {
			log.Error("scoring failed", zap.Any("panic", r))
			res = s.fallback(fmt.Sprint(r))
		}
	}()

	res, _ = s.basic(c, job, log)
	return res
}

// ScoreWithMultiSource runs the multi-source scoring against a job description.
func (s *Scorer) ScoreWithMultiSource(c *profile.Candidate, jobDescription string) *Result {
	return s.ScoreJobWithMultiSource(c, Job{Description: jobDescription})
}

// ScoreJobWithMultiSource adds the enrichment assessment on top of the basic
// scoring. A fault in the enhancement degrades to ScoreJob.
func (s *Scorer) ScoreJobWithMultiSource(c *profile.Candidate, job Job) (res *Result) {
	if c == nil {
		s.logger.Warn("scoring skipped", zap.String("reason", "candidate is nil"))
		return s.fallback("candidate is nil")
	}

	log := logger.WithCandidate(s.logger, c.Name, c.LinkedInURL)

	defer func() {
		if r := recover(); r != nil {
			log.Warn("multi-source scoring failed, using basic scoring", zap.Any("panic", r))
			res = s.ScoreJob(c, job)
		}
	}()

	res, ev := s.basic(c, job, log)
	a := multisource.Evaluate(c, s.msWeights)

	res.FitScore = round(clamp(ev.base+a.Bonus, 0, maxScore), 1)
	res.MultiSourceBonus = round(a.Bonus, 2)

	conf := round(enhancedConfidence(c, confidence(c)), 2)
	res.ConfidenceScore = conf
	res.ConfidenceLevel = confidenceLevel(conf)

	res.Insights = evaluateInsights(insightInput{candidate: c, scores: ev.scores}, basicInsightRules, multiSourceInsightRules)

	breakdown := a.Breakdown()
	for k, v := range breakdown {
		breakdown[k] = round(v, 1)
	}

	res.Enhancement = &Enhancement{
		MultiSourceBreakdown:  breakdown,
		TotalMultiSourceBonus: round(a.Bonus, 2),
		MultiSourceQuality:    multiSourceQuality(c),
		VerificationStatus: map[string]bool{
			"linkedin_verified": c.LinkedInURL != "",
			"github_verified":   c.HasGitHub(),
			"twitter_verified":  c.HasTwitter(),
			"website_verified":  c.HasWebsite(),
		},
		VerificationLevel:   a.Verification,
		PlatformConsistency: round(a.Consistency, 2),
		DataRichness:        a.Richness,
		MultiSourceInsights: a.Insights,
	}

	log.Debug("multi-source scoring done",
		zap.Float64("base_score", res.BaseScore),
		zap.Float64("bonus", res.MultiSourceBonus),
		zap.Float64("fit_score", res.FitScore),
	)

	return res
}

type evaluation struct {
	scores map[Criterion]float64
	base   float64
}

func (s *Scorer) basic(c *profile.Candidate, job Job, log *zap.Logger) (*Result, evaluation) {
	for _, mismatch := range c.SourceMismatches() {
		log.Debug("data source mismatch", zap.String("detail", mismatch))
	}

	scores := s.scoreAll(c, job)

	breakdown := make(map[Criterion]float64, len(Criteria))
	weighted := make(map[Criterion]float64, len(Criteria))
	base := 0.0
	for _, criterion := range Criteria {
		v := clamp(scores[criterion], 0, maxScore)
		scores[criterion] = v
		w := s.weights.For(criterion)
		base += v * w
		breakdown[criterion] = round(v, 1)
		weighted[criterion] = round(v*w, 2)
	}

	sources := c.Sources()
	bonus := basicBonus(sources)
	conf := round(confidence(c), 2)

	res := &Result{
		FitScore:         round(clamp(base+bonus, 0, maxScore), 1),
		BaseScore:        round(base, 1),
		MultiSourceBonus: round(bonus, 2),
		ScoreBreakdown:   breakdown,
		WeightedScores:   weighted,
		ConfidenceScore:  conf,
		ConfidenceLevel:  confidenceLevel(conf),
		DataCompleteness: completeness(c),
		DataSources:      sources,
		Insights:         evaluateInsights(insightInput{candidate: c, scores: scores}, basicInsightRules),
		Metadata:         s.metadata(),
	}

	log.Debug("scoring candidate",
		zap.Float64("base_score", res.BaseScore),
		zap.Float64("fit_score", res.FitScore),
		zap.String("confidence", string(res.ConfidenceLevel)),
	)

	return res, evaluation{scores: scores, base: base}
}

func basicBonus(sources []string) float64 {
	bonus := 0.0
	for _, source := range sources {
		switch source {
		case profile.SourceGitHub:
			bonus += githubBonus
		case profile.SourceTwitter:
			bonus += twitterBonus
		case profile.SourceWebsite:
			bonus += websiteBonus
		}
	}
	return min(bonus, maxBasicBonus)
}

func (s *Scorer) metadata() *Metadata {
	return &Metadata{
		WeightsUsed:      s.weights,
		ScoringTimestamp: s.now().UTC(),
		ScorerVersion:    ScorerVersion,
	}
}

func (s *Scorer) fallback(reason string) *Result {
	res := fallbackResult(reason)
	res.Metadata = s.metadata()
	return res
}
