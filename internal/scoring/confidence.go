package scoring

import (
	"github.com/spigell/sourcing-agent/internal/profile"
)

type ConfidenceLevel string

const (
	ConfidenceVeryLow ConfidenceLevel = "very_low"
	ConfidenceLow     ConfidenceLevel = "low"
	ConfidenceMedium  ConfidenceLevel = "medium"
	ConfidenceHigh    ConfidenceLevel = "high"
)

// Quality grades completeness, multi-source coverage and data richness.
type Quality string

const (
	QualityLimited   Quality = "limited"
	QualityModerate  Quality = "moderate"
	QualityGood      Quality = "good"
	QualityExcellent Quality = "excellent"
)

const (
	maxSourceBonus    = 0.3
	perSourceBonus    = 0.1
	trackedFieldCount = 6
)

// confidence adds completeness points per present field plus a source-count bonus.
func confidence(c *profile.Candidate) float64 {
	score := 0.0
	if c.Name != "" {
		score += 0.10
	}
	if c.Headline != "" {
		score += 0.10
	}
	if c.Location != "" {
		score += 0.05
	}
	if len(c.Experience) > 0 {
		score += 0.20
	}
	if len(c.Education) > 0 {
		score += 0.15
	}
	if len(c.Skills) > 0 {
		score += 0.10
	}

	score += min(float64(len(c.Sources()))*perSourceBonus, maxSourceBonus)
	return min(score, 1.0)
}

// enhancedConfidence credits each attached enrichment block on top of the base confidence.
func enhancedConfidence(c *profile.Candidate, base float64) float64 {
	if c.HasGitHub() {
		base += 0.15
	}
	if c.HasTwitter() {
		base += 0.10
	}
	if c.HasWebsite() {
		base += 0.10
	}
	return min(base, 1.0)
}

func confidenceLevel(score float64) ConfidenceLevel {
	switch {
	case score >= 0.8:
		return ConfidenceHigh
	case score >= 0.6:
		return ConfidenceMedium
	case score >= 0.4:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

func completeness(c *profile.Candidate) Quality {
	present := 0
	for _, ok := range []bool{
		c.Name != "",
		c.Headline != "",
		c.Location != "",
		len(c.Experience) > 0,
		len(c.Education) > 0,
		len(c.Skills) > 0,
	} {
		if ok {
			present++
		}
	}

	switch ratio := float64(present) / trackedFieldCount; {
	case ratio >= 0.8:
		return QualityExcellent
	case ratio >= 0.6:
		return QualityGood
	case ratio >= 0.4:
		return QualityModerate
	default:
		return QualityLimited
	}
}

func multiSourceQuality(c *profile.Candidate) Quality {
	switch n := len(c.Sources()); {
	case n >= 4:
		return QualityExcellent
	case n == 3:
		return QualityGood
	case n == 2:
		return QualityModerate
	default:
		return QualityLimited
	}
}
