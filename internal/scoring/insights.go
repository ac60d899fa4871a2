package scoring

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/spigell/sourcing-agent/internal/profile"
)

// MaxInsights caps the insight list of a result.
const MaxInsights = 5

var numberPrinter = message.NewPrinter(language.English)

type insightInput struct {
	candidate *profile.Candidate
	scores    map[Criterion]float64
}

// insightRule emits message when applies holds. Rules run in declaration order.
type insightRule struct {
	name    string
	applies func(in insightInput) bool
	message func(in insightInput) string
}

func fixed(text string) func(insightInput) string {
	return func(insightInput) string { return text }
}

var basicInsightRules = []insightRule{
	{
		name:    "education",
		applies: func(in insightInput) bool { return in.scores[CriterionEducation] >= 8 },
		message: fixed("Strong educational background from prestigious institution"),
	},
	{
		name:    "experience",
		applies: func(in insightInput) bool { return in.scores[CriterionExperienceMatch] >= 8 },
		message: fixed("Excellent technical skill alignment with role requirements"),
	},
	{
		name:    "company",
		applies: func(in insightInput) bool { return in.scores[CriterionCompanyRelevance] >= 9 },
		message: fixed("Proven track record at top-tier technology companies"),
	},
	{
		name:    "trajectory",
		applies: func(in insightInput) bool { return in.scores[CriterionCareerTrajectory] >= 8 },
		message: fixed("Demonstrates clear career advancement and growth"),
	},
	{
		name:    "sources",
		applies: func(in insightInput) bool { return len(in.candidate.Sources()) >= 3 },
		message: fixed("Profile verified across multiple professional platforms"),
	},
}

var multiSourceInsightRules = []insightRule{
	{
		name:    "repositories",
		applies: func(in insightInput) bool { return in.candidate.HasGitHub() && in.candidate.GitHub.PublicRepos >= 20 },
		message: func(in insightInput) string {
			return fmt.Sprintf("Active open-source contributor with %d public repositories", in.candidate.GitHub.PublicRepos)
		},
	},
	{
		name: "stars",
		applies: func(in insightInput) bool {
			if !in.candidate.HasGitHub() {
				return false
			}
			total := 0
			for _, repo := range in.candidate.GitHub.NotableRepos {
				total += repo.Stars
			}
			return total >= 500
		},
		message: fixed("Created popular open-source projects with significant community adoption"),
	},
	{
		name:    "followers",
		applies: func(in insightInput) bool { return in.candidate.HasTwitter() && in.candidate.Twitter.Followers >= 1000 },
		message: func(in insightInput) string {
			return numberPrinter.Sprintf("Established thought leader with %d social media followers", in.candidate.Twitter.Followers)
		},
	},
	{
		name: "website",
		applies: func(in insightInput) bool {
			return in.candidate.HasWebsite() && in.candidate.Website.HasBlog && in.candidate.Website.HasPortfolio
		},
		message: fixed("Maintains comprehensive online presence with blog and portfolio"),
	},
}

// evaluateInsights walks the rule lists in order and keeps the first MaxInsights messages.
func evaluateInsights(in insightInput, ruleSets ...[]insightRule) []string {
	insights := make([]string, 0, MaxInsights)
	for _, rules := range ruleSets {
		for _, rule := range rules {
			if len(insights) == MaxInsights {
				return insights
			}
			if rule.applies(in) {
				insights = append(insights, rule.message(in))
			}
		}
	}
	return insights
}
