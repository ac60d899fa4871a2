package multisource

import (
	"strings"

	"github.com/spigell/sourcing-agent/internal/lexical"
	"github.com/spigell/sourcing-agent/internal/profile"
)

var (
	twitterFollowerSteps = []step{{50000, 4.0}, {10000, 3.0}, {5000, 2.5}, {1000, 2.0}, {500, 1.0}}

	bioRelevantTerms = []string{
		"ai", "ml", "machine learning", "engineer", "developer", "tech",
		"researcher", "scientist", "cto", "founder", "startup",
	}
	leadershipTerms = []string{
		"thought leader", "speaker", "author", "conference", "keynote",
		"expert", "consultant", "advisor",
	}
	networkIndicators = []string{
		"connections", "network", "community", "mentor", "advisor",
		"board member", "investor", "angel",
	}
)

// SocialPresence scores the secondary social profile and the professional network signals.
func SocialPresence(c *profile.Candidate) float64 {
	score := 0.0

	if c.HasTwitter() {
		bio := strings.ToLower(c.Twitter.Bio)
		score += tier(c.Twitter.Followers, twitterFollowerSteps)
		if lexical.ContainsAny(bio, bioRelevantTerms) {
			score += 1.0
		}
		if lexical.ContainsAny(bio, leadershipTerms) {
			score += 1.5
		}
	}

	if c.LinkedInURL != "" {
		score += 1.0
		if lexical.ContainsAny(lexical.Join(c.Headline, c.Snippet), networkIndicators) {
			score += 1.0
		}
	}

	return min(score, maxSubScore)
}
