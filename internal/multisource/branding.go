package multisource

import (
	"strings"

	"github.com/spigell/sourcing-agent/internal/lexical"
	"github.com/spigell/sourcing-agent/internal/profile"
)

var (
	platformSteps       = []step{{4, 3.0}, {3, 2.0}, {2, 1.0}}
	professionalDomains = []string{".dev", ".ai", ".tech", ".io", ".com"}
	authorityIndicators = []string{
		"founder", "cto", "lead", "principal", "senior", "director",
		"head of", "vp", "chief", "expert", "specialist",
	}
	authoritySteps = []step{{2, 1.5}, {1, 1.0}}

	brandingStopwords = stopwords("the", "and", "or", "at", "in", "on", "for", "with", "by")
)

// ProfessionalBranding scores platform coverage, personal domains, bio consistency and authority.
func ProfessionalBranding(c *profile.Candidate) float64 {
	score := tier(platformCount(c), platformSteps)

	if c.HasWebsite() {
		url := strings.ToLower(c.Website.URL)
		for _, domain := range professionalDomains {
			if strings.Contains(url, domain) {
				score += 1.0
				break
			}
		}
		if name := compactName(c.Name, " "); name != "" && strings.Contains(url, name) {
			score += 1.5
		}
	}

	headline := strings.ToLower(c.Headline)
	bio := ""
	if c.HasTwitter() {
		bio = strings.ToLower(c.Twitter.Bio)
	}

	if headline != "" && bio != "" {
		a := lexical.Words(headline, brandingStopwords)
		b := lexical.Words(bio, brandingStopwords)
		if len(a) > 0 && len(b) > 0 {
			score += lexical.Jaccard(a, b) * 2.0
		}
	}

	score += tier(lexical.CountTerms(lexical.Join(headline, bio), authorityIndicators), authoritySteps)

	if c.HasGitHub() {
		if c.GitHub.Followers >= 50 {
			score += 0.5
		}
		if len(c.GitHub.NotableRepos) > 0 {
			score += 0.5
		}
	}

	return min(score, maxSubScore)
}

func platformCount(c *profile.Candidate) int {
	count := 0
	for _, present := range []bool{c.LinkedInURL != "", c.HasGitHub(), c.HasTwitter(), c.HasWebsite()} {
		if present {
			count++
		}
	}
	return count
}

// compactName lower-cases the name and removes every cutset string from it.
func compactName(name string, cutset ...string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, cut := range cutset {
		name = strings.ReplaceAll(name, cut, "")
	}
	return name
}

func stopwords(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
