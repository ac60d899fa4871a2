package multisource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/sourcing-agent/internal/profile"
)

func richCandidate() *profile.Candidate {
	return &profile.Candidate{
		Name:        "Jane Doe",
		LinkedInURL: "https://linkedin.com/in/jane-doe",
		Headline:    "Senior ML Engineer",
		Location:    "San Francisco, CA",
		Experience: []profile.Experience{
			{Title: "Senior ML Engineer", Company: "OpenAI", Duration: "3 years"},
			{Title: "ML Engineer", Company: "Google", Duration: "2 years"},
			{Title: "Intern", Company: "Intel", Duration: "6 months"},
		},
		Education: []profile.Education{{School: "Stanford University", Degree: "MS"}},
		Skills:    []string{"python", "pytorch", "go", "kubernetes", "llm"},
		GitHub: &profile.GitHubProfile{
			Username:     "janedoe",
			Name:         "Jane Doe",
			Bio:          "ml engineer at openai",
			Location:     "San Francisco",
			PublicRepos:  120,
			Followers:    1500,
			TopLanguages: []string{"Python", "Go", "Rust", "C++", "TypeScript"},
			NotableRepos: []profile.Repository{
				{Name: "fast-inference", Stars: 6000},
				{Name: "pytorch-tutorial", Stars: 150},
				{Name: "llm-eval", Stars: 120},
			},
		},
		Twitter: &profile.TwitterProfile{
			Username:  "@janedoe",
			Followers: 12000,
			Bio:       "ML Engineer, conference speaker and writer",
		},
		Website: &profile.Website{
			URL:           "https://janedoe.dev",
			HasBlog:       true,
			HasPortfolio:  true,
			ContentTopics: []string{"Machine Learning", "AI", "Software Engineering", "Data Science"},
		},
	}
}

func TestGitHubContribution(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, GitHubContribution(&profile.Candidate{}))
	assert.Equal(t, 10.0, GitHubContribution(richCandidate()), "maxed profile must be capped")

	modest := &profile.Candidate{GitHub: &profile.GitHubProfile{
		Username:     "dev",
		PublicRepos:  12,
		Followers:    60,
		TopLanguages: []string{"go", "python", "bash"},
		NotableRepos: []profile.Repository{{Name: "dotfiles", Stars: 60}},
	}}
	// repos 1.5 + max stars 1.0 + languages 0.5 + followers 0.5
	assert.InDelta(t, 3.5, GitHubContribution(modest), 1e-9)
}

func TestSocialPresence(t *testing.T) {
	t.Parallel()

	c := &profile.Candidate{
		LinkedInURL: "https://linkedin.com/in/jane",
		Headline:    "Mentor and ML engineer",
		Twitter: &profile.TwitterProfile{
			Followers: 12000,
			Bio:       "ML engineer and conference speaker",
		},
	}
	// followers 3.0 + relevant bio 1.0 + leadership 1.5 + linkedin 1.0 + network 1.0
	assert.InDelta(t, 7.5, SocialPresence(c), 1e-9)

	withoutLinkedIn := &profile.Candidate{Headline: "community mentor"}
	assert.Equal(t, 0.0, SocialPresence(withoutLinkedIn), "network indicators need a linkedin profile")
}

func TestContentCreation(t *testing.T) {
	t.Parallel()

	c := richCandidate()
	// website 1 + blog 2 + topics 2 + portfolio 1.5 + one educational repo 0.5 + popular 0.5 + writer bio 1
	assert.InDelta(t, 8.5, ContentCreation(c), 1e-9)

	var repos []profile.Repository
	for range 6 {
		repos = append(repos, profile.Repository{Name: "go-examples"})
	}
	teacher := &profile.Candidate{GitHub: &profile.GitHubProfile{Username: "t", NotableRepos: repos}}
	assert.InDelta(t, 2.5, ContentCreation(teacher), 1e-9, "educational repo credit is capped")
}

func TestProfessionalBranding(t *testing.T) {
	t.Parallel()

	c := richCandidate()
	c.Twitter.Bio = "ML Engineer"
	// platforms 3 + .dev 1 + name in url 1.5 + overlap 2/3*2 + authority 1 + followers 0.5 + repos 0.5
	assert.InDelta(t, 3+1+1.5+4.0/3+1+0.5+0.5, ProfessionalBranding(c), 1e-9)

	assert.Equal(t, 0.0, ProfessionalBranding(&profile.Candidate{}))
}

func TestPlatformConsistency(t *testing.T) {
	t.Parallel()

	single := &profile.Candidate{LinkedInURL: "https://linkedin.com/in/jane", Name: "Jane"}
	assert.Equal(t, 0.5, PlatformConsistency(single))

	c := &profile.Candidate{
		Name:        "Jane Doe",
		LinkedInURL: "https://linkedin.com/in/jane-doe",
		Headline:    "ML Engineer",
		Location:    "San Francisco, CA",
		GitHub: &profile.GitHubProfile{
			Username: "janedoe",
			Name:     "jane doe",
			Bio:      "ml engineer at openai",
			Location: "San Francisco",
		},
	}
	// names 1.0, locations share "san" 0.8, bios {ml, engineer} vs {ml, engineer, openai} 2/3
	assert.InDelta(t, (1.0+0.8+2.0/3)/3, PlatformConsistency(c), 1e-9)

	c.GitHub.Name = "J. Smith"
	c.GitHub.Location = "Berlin"
	assert.InDelta(t, (0.3+0.4+2.0/3)/3, PlatformConsistency(c), 1e-9)
}

func TestVerificationAndRichness(t *testing.T) {
	t.Parallel()

	rich := richCandidate()
	assert.True(t, ConsistentIdentity(rich))
	assert.Equal(t, VerificationHigh, VerificationLevel(rich))
	assert.Equal(t, RichnessExcellent, DataRichness(rich))

	bare := &profile.Candidate{Name: "Jane Doe", LinkedInURL: "https://linkedin.com/in/jane-doe"}
	assert.False(t, ConsistentIdentity(bare))
	assert.Equal(t, VerificationLow, VerificationLevel(bare))
	assert.Equal(t, RichnessLimited, DataRichness(bare))

	handle := &profile.Candidate{Name: "Jo", Twitter: &profile.TwitterProfile{Username: "@jo_codes"}}
	assert.True(t, ConsistentIdentity(handle), "name contained in handle")
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	w := DefaultWeights()
	require.NoError(t, w.Validate())

	a := Evaluate(richCandidate(), w)

	want := (a.GitHub*0.35 + a.Social*0.20 + a.Content*0.25 + a.Branding*0.20) * 1.5
	assert.InDelta(t, want, a.Bonus, 1e-9)
	assert.LessOrEqual(t, a.Bonus, 15.0)
	assert.Len(t, a.Breakdown(), 4)
	assert.Equal(t, "Exceptional open-source contributor with high-impact repositories", a.Insights[0])
	assert.Contains(t, a.Insights, "Demonstrates comprehensive digital professional presence")

	empty := Evaluate(nil, w)
	assert.Equal(t, 0.0, empty.Bonus)
	assert.Empty(t, empty.Insights)
	assert.Equal(t, 0.5, empty.Consistency)
}

func TestWeightsValidate(t *testing.T) {
	t.Parallel()

	assert.Error(t, Weights{GitHubContribution: -1, SocialPresence: 1}.Validate())
	assert.Error(t, Weights{}.Validate())
}
