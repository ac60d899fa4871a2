package scoring

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spigell/sourcing-agent/internal/profile"
)

func TestParseDurationYears(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"3 years", 3},
		{"1 year", 1},
		{"2.5 yrs", 2.5},
		{"18 months", 1.5},
		{"6 mos", 0.5},
		{"2019 - Present", 2.0},
		{"current", 2.0},
		{"a long time", 1.5},
	}

	for _, tt := range tests {
		if got := parseDurationYears(tt.in); got != tt.want {
			t.Errorf("parseDurationYears(%q): expected %.2f, got %.2f", tt.in, tt.want, got)
		}
	}
}

func TestClassifyDegree(t *testing.T) {
	t.Parallel()

	tests := map[string]degreeLevel{
		"PhD Computer Science": degreeDoctorate,
		"Ph.D.":                degreeDoctorate,
		"Doctor of Philosophy": degreeDoctorate,
		"M.S. Statistics":      degreeMaster,
		"MEng":                 degreeMaster,
		"MBA":                  degreeMaster,
		"BS":                   degreeBase,
		"Bachelor of Arts":     degreeBase,
		"":                     degreeBase,
		"Systems Engineering":  degreeBase,
	}

	for in, want := range tests {
		if got := classifyDegree(in); got != want {
			t.Errorf("classifyDegree(%q): expected %d, got %d", in, want, got)
		}
	}
}

func TestExtractEducation(t *testing.T) {
	t.Parallel()

	got := extractEducation("Graduated from MIT, then Stanford and Harvard and CMU")
	want := []profile.Education{
		{School: "mit"},
		{School: "stanford"},
		{School: "harvard"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("education mismatch (-want +got):\n%s", diff)
	}

	got = extractEducation("University of Toronto")
	if diff := cmp.Diff([]profile.Education{{School: "university of toronto"}}, got); diff != "" {
		t.Fatalf("expected one deduplicated school (-want +got):\n%s", diff)
	}

	if got := extractEducation("I submit pull requests"); len(got) != 0 {
		t.Fatalf("expected no schools, got %v", got)
	}
}

func TestExtractLocation(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"based in Palo Alto":      "palo alto",
		"open to Remote roles":    "remote",
		"currently in NYC":        "nyc",
		"loves sfx and music":     "",
		"previously in chicagoan": "",
	}

	for in, want := range tests {
		if got := extractLocation(in); got != want {
			t.Errorf("extractLocation(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestNormalizeSchool(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"University of Michigan": "michigan",
		"The Ohio State":         "ohio state",
		"  MIT ":                 "mit",
	}
	for in, want := range tests {
		if got := normalizeSchool(in); got != want {
			t.Errorf("normalizeSchool(%q): expected %q, got %q", in, want, got)
		}
	}
}
