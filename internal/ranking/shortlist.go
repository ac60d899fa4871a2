package ranking

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spigell/sourcing-agent/internal/profile"
	"github.com/spigell/sourcing-agent/internal/scoring"
)

// Scored pairs a candidate with its scoring result.
type Scored struct {
	Candidate *profile.Candidate `json:"candidate"`
	Result    *scoring.Result    `json:"result"`
}

func (s *Scored) Key() string {
	if s == nil {
		return ""
	}
	return s.Candidate.Key()
}

func (s *Scored) Name() string {
	if s == nil || s.Candidate == nil {
		return ""
	}
	return s.Candidate.Name
}

func (s *Scored) FitScore() float64 {
	if s == nil || s.Result == nil {
		return 0
	}
	return s.Result.FitScore
}

func (s *Scored) Confidence() float64 {
	if s == nil || s.Result == nil {
		return 0
	}
	return s.Result.ConfidenceScore
}

type Shortlist struct {
	Items []*Scored `json:"items"`
}

// NewShortlist zips candidates with their results. Both slices must be in the same order.
func NewShortlist(candidates []*profile.Candidate, results []*scoring.Result) (*Shortlist, error) {
	if len(candidates) != len(results) {
		return nil, fmt.Errorf("got %d candidates but %d results", len(candidates), len(results))
	}
	s := &Shortlist{Items: make([]*Scored, 0, len(candidates))}
	for i, c := range candidates {
		if c == nil {
			c = &profile.Candidate{}
		}
		s.Items = append(s.Items, &Scored{Candidate: c, Result: results[i]})
	}
	return s, nil
}

func (s *Shortlist) Len() int {
	return len(s.Items)
}

// FindByURL looks a candidate up by LinkedIn URL, ignoring scheme, www and trailing slash.
func (s *Shortlist) FindByURL(url string) *Scored {
	key := (&profile.Candidate{LinkedInURL: url}).Key()
	for _, item := range s.Items {
		if item.Key() == key {
			return item
		}
	}
	return nil
}

// Exclude removes every entry whose key is listed, preserving order. It returns the removed keys.
func (s *Shortlist) Exclude(keys []string) []string {
	if len(keys) == 0 {
		return nil
	}

	targets := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		targets[k] = struct{}{}
	}

	var removed []string
	s.Items = slices.DeleteFunc(s.Items, func(item *Scored) bool {
		if _, ok := targets[item.Key()]; ok {
			removed = append(removed, item.Key())
			return true
		}
		return false
	})
	return removed
}

// Sort ranks the shortlist by fit score, then confidence, then name.
func (s *Shortlist) Sort() {
	slices.SortStableFunc(s.Items, compareScored)
}

// ToContacted converts the shortlist into contacted records stamped with at.
func (s *Shortlist) ToContacted(at time.Time) *ContactedCandidates {
	contacted := &ContactedCandidates{}
	for _, item := range s.Items {
		contacted.Items = append(contacted.Items, &Contacted{
			URL:         item.Candidate.LinkedInURL,
			Name:        item.Candidate.Name,
			ContactedAt: at.UTC(),
		})
	}
	return contacted
}

// DumpToFile writes the shortlist as indented JSON, replacing the file.
func (s *Shortlist) DumpToFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return encodeIndented(file, s)
}

func (s *Shortlist) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "shortlist_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := encodeIndented(file, s); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportByCompany groups the shortlist by the most recent company.
func (s *Shortlist) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, item := range s.Items {
		c := item.Candidate
		company := "unknown"
		if len(c.Experience) > 0 && strings.TrimSpace(c.Experience[0].Company) != "" {
			company = strings.TrimSpace(c.Experience[0].Company)
		}

		entry := map[string]string{
			"name":     c.Name,
			"url":      c.LinkedInURL,
			"headline": c.Headline,
			"location": c.Location,
		}
		if r := item.Result; r != nil {
			entry["fit_score"] = fmt.Sprintf("%.1f", r.FitScore)
			entry["confidence"] = string(r.ConfidenceLevel)
			if len(r.Insights) > 0 {
				entry["top_insight"] = r.Insights[0]
			}
		}
		report[company] = append(report[company], entry)
	}
	return report
}

func encodeIndented(file *os.File, v any) error {
	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
