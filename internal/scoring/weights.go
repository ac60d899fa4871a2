package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

const weightSumTolerance = 1e-6

var validate = validator.New()

// Weights sets how much each criterion contributes to the base score.
type Weights struct {
	Education        float64 `mapstructure:"education" json:"education" validate:"gte=0"`
	CareerTrajectory float64 `mapstructure:"career-trajectory" json:"career_trajectory" validate:"gte=0"`
	CompanyRelevance float64 `mapstructure:"company-relevance" json:"company_relevance" validate:"gte=0"`
	ExperienceMatch  float64 `mapstructure:"experience-match" json:"experience_match" validate:"gte=0"`
	LocationMatch    float64 `mapstructure:"location-match" json:"location_match" validate:"gte=0"`
	Tenure           float64 `mapstructure:"tenure" json:"tenure" validate:"gte=0"`
}

// DefaultWeights returns the general-purpose weight set.
func DefaultWeights() Weights {
	return Weights{
		Education:        0.20,
		CareerTrajectory: 0.20,
		CompanyRelevance: 0.15,
		ExperienceMatch:  0.25,
		LocationMatch:    0.10,
		Tenure:           0.10,
	}
}

// Validate rejects negative weights and an all-zero set.
func (w Weights) Validate() error {
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("invalid scoring weights: %w", err)
	}
	if w.Sum() <= 0 {
		return errors.New("invalid scoring weights: sum must be positive")
	}
	return nil
}

func (w Weights) Sum() float64 {
	return w.Education + w.CareerTrajectory + w.CompanyRelevance + w.ExperienceMatch + w.LocationMatch + w.Tenure
}

// Normalized reports whether the weights already sum to one.
func (w Weights) Normalized() bool {
	return math.Abs(w.Sum()-1) <= weightSumTolerance
}

// Normalize rescales the weights so they sum to one. A non-positive sum is returned unchanged.
func (w Weights) Normalize() Weights {
	sum := w.Sum()
	if sum <= 0 {
		return w
	}
	return Weights{
		Education:        w.Education / sum,
		CareerTrajectory: w.CareerTrajectory / sum,
		CompanyRelevance: w.CompanyRelevance / sum,
		ExperienceMatch:  w.ExperienceMatch / sum,
		LocationMatch:    w.LocationMatch / sum,
		Tenure:           w.Tenure / sum,
	}
}

// For returns the weight of one criterion.
func (w Weights) For(c Criterion) float64 {
	switch c {
	case CriterionEducation:
		return w.Education
	case CriterionCareerTrajectory:
		return w.CareerTrajectory
	case CriterionCompanyRelevance:
		return w.CompanyRelevance
	case CriterionExperienceMatch:
		return w.ExperienceMatch
	case CriterionLocationMatch:
		return w.LocationMatch
	case CriterionTenure:
		return w.Tenure
	default:
		return 0
	}
}

// Map returns the weights keyed by criterion name.
func (w Weights) Map() map[Criterion]float64 {
	out := make(map[Criterion]float64, len(Criteria))
	for _, c := range Criteria {
		out[c] = w.For(c)
	}
	return out
}
