package scoring

import (
	"math"
	"time"
)

const ScorerVersion = "2.0"

// Result is the outcome of scoring one candidate. It is built fresh per call.
type Result struct {
	FitScore         float64               `json:"fit_score"`
	BaseScore        float64               `json:"base_score"`
	MultiSourceBonus float64               `json:"multi_source_bonus"`
	ScoreBreakdown   map[Criterion]float64 `json:"score_breakdown"`
	WeightedScores   map[Criterion]float64 `json:"weighted_scores"`
	ConfidenceScore  float64               `json:"confidence_score"`
	ConfidenceLevel  ConfidenceLevel       `json:"confidence_level"`
	DataCompleteness Quality               `json:"data_completeness"`
	DataSources      []string              `json:"data_sources"`
	Insights         []string              `json:"insights"`
	Metadata         *Metadata             `json:"scoring_metadata,omitempty"`
	Error            bool                  `json:"error,omitempty"`

	// Enhancement is set only by the multi-source entry points.
	*Enhancement
}

type Metadata struct {
	WeightsUsed      Weights   `json:"weights_used"`
	ScoringTimestamp time.Time `json:"scoring_timestamp"`
	ScorerVersion    string    `json:"scorer_version"`
}

// Enhancement carries the multi-source details.
type Enhancement struct {
	MultiSourceBreakdown  map[string]float64 `json:"multi_source_breakdown"`
	TotalMultiSourceBonus float64            `json:"total_multi_source_bonus"`
	MultiSourceQuality    Quality            `json:"multi_source_quality"`
	VerificationStatus    map[string]bool    `json:"verification_status"`
	VerificationLevel     string             `json:"verification_level"`
	PlatformConsistency   float64            `json:"platform_consistency"`
	DataRichness          string             `json:"data_richness"`
	MultiSourceInsights   []string           `json:"multi_source_insights"`
}

// Enhanced reports whether the multi-source path produced this result.
func (r *Result) Enhanced() bool {
	return r != nil && r.Enhancement != nil
}

func fallbackResult(reason string) *Result {
	breakdown := make(map[Criterion]float64, len(Criteria))
	weighted := make(map[Criterion]float64, len(Criteria))
	for _, c := range Criteria {
		breakdown[c] = 5.0
		weighted[c] = 1.0
	}

	return &Result{
		FitScore:         5.0,
		BaseScore:        5.0,
		ScoreBreakdown:   breakdown,
		WeightedScores:   weighted,
		ConfidenceScore:  0.3,
		ConfidenceLevel:  ConfidenceLow,
		DataCompleteness: QualityLimited,
		DataSources:      []string{"linkedin"},
		Insights:         []string{"Scoring error occurred: " + reason},
		Error:            true,
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
