package multisource

import (
	"github.com/spigell/sourcing-agent/internal/profile"
)

var (
	repoCountSteps = []step{{100, 3.0}, {50, 2.5}, {20, 2.0}, {10, 1.5}, {5, 1.0}}
	maxStarSteps   = []step{{5000, 3.0}, {1000, 2.5}, {500, 2.0}, {100, 1.5}, {50, 1.0}}
	popularSteps   = []step{{3, 1.0}, {2, 0.5}}
	languageSteps  = []step{{5, 1.0}, {3, 0.5}}
	followerSteps  = []step{{1000, 2.0}, {500, 1.5}, {100, 1.0}, {50, 0.5}}
)

const popularRepoStars = 100

// GitHubContribution scores repository volume, popularity, language spread and followers.
func GitHubContribution(c *profile.Candidate) float64 {
	if !c.HasGitHub() {
		return 0
	}
	g := c.GitHub

	score := tier(g.PublicRepos, repoCountSteps)

	if len(g.NotableRepos) > 0 {
		maxStars, popular := 0, 0
		for _, repo := range g.NotableRepos {
			maxStars = max(maxStars, repo.Stars)
			if repo.Stars >= popularRepoStars {
				popular++
			}
		}
		score += tier(maxStars, maxStarSteps)
		score += tier(popular, popularSteps)
	}

	score += tier(len(g.TopLanguages), languageSteps)
	score += tier(g.Followers, followerSteps)

	return min(score, maxSubScore)
}
