package multisource

import (
	"strings"

	"github.com/spigell/sourcing-agent/internal/lexical"
	"github.com/spigell/sourcing-agent/internal/profile"
)

var (
	relevantTopics = []string{
		"machine learning", "ai", "programming", "software",
		"tech", "data science", "algorithms", "engineering",
	}
	topicSteps = []step{{4, 2.0}, {2, 1.0}}

	educationalKeywords = []string{
		"tutorial", "tutorials", "guide", "examples", "demo", "learning",
		"course", "workshop", "book", "documentation",
	}
	contentCreatorTerms = []string{
		"blogger", "writer", "author", "speaker", "educator",
		"teacher", "content creator", "youtuber",
	}
)

const (
	perEducationalRepo      = 0.5
	maxEducationalRepoScore = 2.5
	popularEducationalStars = 100
)

// ContentCreation scores blogging, portfolios, teaching repositories and creator bios.
func ContentCreation(c *profile.Candidate) float64 {
	score := 0.0

	if c.HasWebsite() {
		w := c.Website
		score += 1.0
		if w.HasBlog {
			score += 2.0
			if len(w.ContentTopics) > 0 {
				topics := strings.ToLower(strings.Join(w.ContentTopics, " "))
				score += tier(lexical.CountTerms(topics, relevantTopics), topicSteps)
			}
		}
		if w.HasPortfolio {
			score += 1.5
		}
	}

	if c.HasGitHub() {
		educational, popular := 0, 0
		for _, repo := range c.GitHub.NotableRepos {
			text := lexical.Join(strings.NewReplacer("-", " ", "_", " ").Replace(repo.Name), repo.Description)
			if !lexical.ContainsAny(text, educationalKeywords) {
				continue
			}
			educational++
			if repo.Stars >= popularEducationalStars {
				popular++
			}
		}
		score += min(float64(educational)*perEducationalRepo, maxEducationalRepoScore)
		score += float64(popular) * perEducationalRepo
	}

	if c.HasTwitter() && lexical.ContainsAny(strings.ToLower(c.Twitter.Bio), contentCreatorTerms) {
		score += 1.0
	}

	return min(score, maxSubScore)
}
