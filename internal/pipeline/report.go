package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/spigell/sourcing-agent/internal/outreach"
	"github.com/spigell/sourcing-agent/internal/profile"
	"github.com/spigell/sourcing-agent/internal/ranking"
	"github.com/spigell/sourcing-agent/internal/scoring"
)

type Report struct {
	RunID      string              `json:"run_id"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt time.Time           `json:"finished_at"`
	Job        scoring.Job         `json:"job"`
	Total      int                 `json:"total"`
	Scored     int                 `json:"scored"`
	Shortlist  *ranking.Shortlist  `json:"shortlist"`
	Messages   []*outreach.Message `json:"messages,omitempty"`
	Failures   []Failure           `json:"failures,omitempty"`
	Filters    []FilterSummary     `json:"filters"`
}

// Failure is a per-candidate error that did not abort the run.
type Failure struct {
	Candidate   string `json:"candidate"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	Stage       string `json:"stage"`
	Error       string `json:"error"`
}

type FilterSummary struct {
	Name    string            `json:"name"`
	Enabled bool              `json:"enabled"`
	Reason  string            `json:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty"`
	Initial int               `json:"initial"`
	Dropped int               `json:"dropped"`
	Left    int               `json:"left"`
}

func (r *Report) addFailure(c *profile.Candidate, stage string, err error) {
	f := Failure{Stage: stage, Error: err.Error()}
	if c != nil {
		f.Candidate = c.Name
		f.LinkedInURL = c.LinkedInURL
	}
	r.Failures = append(r.Failures, f)
	slices.SortStableFunc(r.Failures, func(a, b Failure) int {
		if a.Stage != b.Stage {
			return stageOrder(a.Stage) - stageOrder(b.Stage)
		}
		switch {
		case a.Candidate < b.Candidate:
			return -1
		case a.Candidate > b.Candidate:
			return 1
		}
		return 0
	})
}

// AddFailure records an out-of-run failure, such as a message drafted later
// from the interactive loop.
func (r *Report) AddFailure(c *profile.Candidate, stage string, err error) {
	r.addFailure(c, stage, err)
}

func stageOrder(stage string) int {
	switch stage {
	case StageEnrich:
		return 0
	case StageOutreach:
		return 1
	}
	return 2
}

// MessageFor returns the drafted message for a LinkedIn URL, if any.
func (r *Report) MessageFor(url string) *outreach.Message {
	for _, m := range r.Messages {
		if m.LinkedInURL == url {
			return m
		}
	}
	return nil
}

func (r *Report) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func summarize(steps []ranking.Filter, counts map[string]ranking.Step) []FilterSummary {
	out := make([]FilterSummary, 0, len(steps))
	for _, st := range ranking.Describe(steps) {
		info := counts[st.Name]
		out = append(out, FilterSummary{
			Name:    st.Name,
			Enabled: st.Enabled,
			Reason:  st.Reason,
			Details: st.Details,
			Initial: info.Initial,
			Dropped: info.Dropped,
			Left:    info.Left,
		})
	}
	return out
}

// Summary is a one-line description for logs.
func (r *Report) Summary() string {
	shortlisted := 0
	if r.Shortlist != nil {
		shortlisted = r.Shortlist.Len()
	}
	return fmt.Sprintf("run %s: %d candidates, %d shortlisted, %d messages",
		r.RunID, r.Total, shortlisted, len(r.Messages))
}
