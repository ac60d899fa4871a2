package scoring

import (
	"math"
	"testing"
)

func TestDefaultWeightsSumToOne(t *testing.T) {
	t.Parallel()

	w := DefaultWeights()
	if err := w.Validate(); err != nil {
		t.Fatalf("default weights invalid: %v", err)
	}
	if !w.Normalized() {
		t.Fatalf("default weights sum to %.6f", w.Sum())
	}
}

func TestWeightsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		w       Weights
		wantErr bool
	}{
		{name: "defaults", w: DefaultWeights()},
		{name: "single criterion", w: Weights{ExperienceMatch: 1}},
		{name: "negative", w: Weights{Education: -0.1, Tenure: 1.1}, wantErr: true},
		{name: "all zero", w: Weights{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.w.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestWeightsNormalize(t *testing.T) {
	t.Parallel()

	w := Weights{Education: 2, CareerTrajectory: 2, CompanyRelevance: 1, ExperienceMatch: 3, LocationMatch: 1, Tenure: 1}.Normalize()
	if math.Abs(w.Sum()-1) > 1e-9 {
		t.Fatalf("expected normalized sum 1, got %.9f", w.Sum())
	}
	if math.Abs(w.ExperienceMatch-0.3) > 1e-9 {
		t.Fatalf("expected experience weight 0.3, got %.9f", w.ExperienceMatch)
	}

	zero := Weights{}.Normalize()
	if zero != (Weights{}) {
		t.Fatalf("zero weights must be returned unchanged, got %+v", zero)
	}
}

func TestWeightsMap(t *testing.T) {
	t.Parallel()

	m := DefaultWeights().Map()
	if len(m) != len(Criteria) {
		t.Fatalf("expected %d entries, got %d", len(Criteria), len(m))
	}
	if m[CriterionExperienceMatch] != 0.25 {
		t.Fatalf("expected experience weight 0.25, got %.2f", m[CriterionExperienceMatch])
	}
	if DefaultWeights().For(Criterion("unknown")) != 0 {
		t.Fatalf("unknown criterion must weigh zero")
	}
}
