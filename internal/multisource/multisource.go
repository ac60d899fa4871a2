// Package multisource grades the enrichment blocks of a candidate: code hosting,
// social following, content creation and cross-platform branding.
package multisource

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/spigell/sourcing-agent/internal/profile"
)

const (
	maxSubScore = 10.0
	// bonusScale converts the weighted sub-score sum into fit score points.
	bonusScale = 1.5
)

// Breakdown keys.
const (
	KeyGitHub   = "github_contribution"
	KeySocial   = "social_presence"
	KeyContent  = "content_creation"
	KeyBranding = "professional_branding"
)

var validate = validator.New()

type Weights struct {
	GitHubContribution   float64 `mapstructure:"github-contribution" json:"github_contribution" validate:"gte=0"`
	SocialPresence       float64 `mapstructure:"social-presence" json:"social_presence" validate:"gte=0"`
	ContentCreation      float64 `mapstructure:"content-creation" json:"content_creation" validate:"gte=0"`
	ProfessionalBranding float64 `mapstructure:"professional-branding" json:"professional_branding" validate:"gte=0"`
}

func DefaultWeights() Weights {
	return Weights{
		GitHubContribution:   0.35,
		SocialPresence:       0.20,
		ContentCreation:      0.25,
		ProfessionalBranding: 0.20,
	}
}

func (w Weights) Validate() error {
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("invalid multi-source weights: %w", err)
	}
	if w.GitHubContribution+w.SocialPresence+w.ContentCreation+w.ProfessionalBranding <= 0 {
		return errors.New("invalid multi-source weights: sum must be positive")
	}
	return nil
}

// Assessment is the full multi-source evaluation of one candidate.
type Assessment struct {
	GitHub   float64
	Social   float64
	Content  float64
	Branding float64

	// Bonus is the weighted sub-score sum scaled to fit score points.
	Bonus        float64
	Consistency  float64
	Richness     string
	Verification string
	Insights     []string
}

// Breakdown returns the four sub-scores keyed by their report names.
func (a Assessment) Breakdown() map[string]float64 {
	return map[string]float64{
		KeyGitHub:   a.GitHub,
		KeySocial:   a.Social,
		KeyContent:  a.Content,
		KeyBranding: a.Branding,
	}
}

// Evaluate runs every multi-source heuristic over the candidate.
func Evaluate(c *profile.Candidate, w Weights) Assessment {
	if c == nil {
		c = &profile.Candidate{}
	}

	a := Assessment{
		GitHub:   GitHubContribution(c),
		Social:   SocialPresence(c),
		Content:  ContentCreation(c),
		Branding: ProfessionalBranding(c),
	}

	weighted := a.GitHub*w.GitHubContribution +
		a.Social*w.SocialPresence +
		a.Content*w.ContentCreation +
		a.Branding*w.ProfessionalBranding

	a.Bonus = weighted * bonusScale
	a.Consistency = PlatformConsistency(c)
	a.Richness = DataRichness(c)
	a.Verification = VerificationLevel(c)
	a.Insights = insights(a)

	return a
}

func tier(value int, steps []step) float64 {
	for _, s := range steps {
		if value >= s.min {
			return s.points
		}
	}
	return 0
}

type step struct {
	min    int
	points float64
}
