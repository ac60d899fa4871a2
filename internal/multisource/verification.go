package multisource

import (
	"strings"

	"github.com/spigell/sourcing-agent/internal/profile"
)

// Verification levels.
const (
	VerificationHigh   = "high"
	VerificationMedium = "medium"
	VerificationBasic  = "basic"
	VerificationLow    = "low"
)

// Data richness levels.
const (
	RichnessExcellent = "excellent"
	RichnessGood      = "good"
	RichnessModerate  = "moderate"
	RichnessLimited   = "limited"
)

// DataRichness grades how much material the profile and its enrichments carry.
func DataRichness(c *profile.Candidate) string {
	points := 0

	if len(c.Experience) >= 3 {
		points += 2
	}
	if len(c.Education) > 0 {
		points++
	}
	if len(c.Skills) >= 5 {
		points++
	}

	if c.HasGitHub() {
		g := c.GitHub
		if g.PublicRepos >= 10 {
			points += 2
		}
		if len(g.NotableRepos) >= 3 {
			points += 2
		}
		if len(g.TopLanguages) >= 3 {
			points++
		}
	}

	if c.HasTwitter() {
		if c.Twitter.Followers >= 100 {
			points++
		}
		if c.Twitter.Bio != "" {
			points++
		}
	}

	if c.HasWebsite() {
		w := c.Website
		if w.HasBlog {
			points += 2
		}
		if w.HasPortfolio {
			points++
		}
		if len(w.ContentTopics) > 0 {
			points++
		}
	}

	switch {
	case points >= 10:
		return RichnessExcellent
	case points >= 7:
		return RichnessGood
	case points >= 4:
		return RichnessModerate
	default:
		return RichnessLimited
	}
}

// VerificationLevel grades how well the identity is corroborated across platforms.
func VerificationLevel(c *profile.Candidate) string {
	points := 0

	if c.LinkedInURL != "" {
		points++
	}
	if c.HasGitHub() {
		points += 2
		if c.GitHub.PublicRepos >= 5 {
			points++
		}
	}
	if c.HasTwitter() {
		points++
		if c.Twitter.Followers >= 100 {
			points++
		}
	}
	if c.HasWebsite() {
		points += 2
	}
	if ConsistentIdentity(c) {
		points++
	}

	switch {
	case points >= 7:
		return VerificationHigh
	case points >= 5:
		return VerificationMedium
	case points >= 3:
		return VerificationBasic
	default:
		return VerificationLow
	}
}

// ConsistentIdentity reports whether the compacted name matches a GitHub or Twitter handle
// in either direction, or appears in the personal website URL.
func ConsistentIdentity(c *profile.Candidate) bool {
	name := compactName(c.Name, " ", ".")
	if name == "" {
		return false
	}

	handleMatches := func(handle string) bool {
		handle = strings.ToLower(strings.TrimSpace(handle))
		if handle == "" {
			return false
		}
		return strings.Contains(handle, name) || strings.Contains(name, handle)
	}

	if c.HasGitHub() && handleMatches(c.GitHub.Username) {
		return true
	}
	if c.HasTwitter() && handleMatches(strings.TrimPrefix(c.Twitter.Username, "@")) {
		return true
	}
	if c.HasWebsite() && strings.Contains(strings.ToLower(c.Website.URL), name) {
		return true
	}

	return false
}
