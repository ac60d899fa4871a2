package profile

import (
	"slices"
	"strings"
)

const (
	SourceLinkedIn = "linkedin"
	SourceGitHub   = "github"
	SourceTwitter  = "twitter"
	SourceWebsite  = "website"
)

// Sources returns the data sources backing the candidate.
// Declared sources win. Without a declaration the sources are inferred:
// linkedin plus one tag per populated enrichment block.
func (c *Candidate) Sources() []string {
	if c == nil {
		return []string{SourceLinkedIn}
	}

	declared := c.declaredSources()
	if len(declared) > 0 {
		return declared
	}

	return c.inferredSources()
}

// AddSource declares an additional data source, keeping the list unique.
func (c *Candidate) AddSource(source string) {
	source = strings.ToLower(strings.TrimSpace(source))
	if c == nil || source == "" {
		return
	}

	if len(c.DataSources) == 0 {
		c.DataSources = c.inferredSources()
	}

	if !slices.Contains(c.declaredSources(), source) {
		c.DataSources = append(c.DataSources, source)
	}
}

// SourceMismatches lists inconsistencies between declared sources and populated blocks,
// for example "github declared without github_profile". It is empty when nothing is declared.
func (c *Candidate) SourceMismatches() []string {
	if c == nil {
		return nil
	}

	declared := c.declaredSources()
	if len(declared) == 0 {
		return nil
	}

	blocks := []struct {
		source  string
		key     string
		present bool
	}{
		{SourceGitHub, "github_profile", c.HasGitHub()},
		{SourceTwitter, "twitter_profile", c.HasTwitter()},
		{SourceWebsite, "personal_website", c.HasWebsite()},
	}

	var mismatches []string
	for _, b := range blocks {
		isDeclared := slices.Contains(declared, b.source)
		switch {
		case isDeclared && !b.present:
			mismatches = append(mismatches, b.source+" declared without "+b.key)
		case !isDeclared && b.present:
			mismatches = append(mismatches, b.key+" present but "+b.source+" not declared")
		}
	}

	return mismatches
}

func (c *Candidate) declaredSources() []string {
	out := make([]string, 0, len(c.DataSources))
	for _, s := range c.DataSources {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || slices.Contains(out, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (c *Candidate) inferredSources() []string {
	sources := []string{SourceLinkedIn}
	if c.HasGitHub() {
		sources = append(sources, SourceGitHub)
	}
	if c.HasTwitter() {
		sources = append(sources, SourceTwitter)
	}
	if c.HasWebsite() {
		sources = append(sources, SourceWebsite)
	}
	return sources
}
