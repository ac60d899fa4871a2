package source

import (
	"cmp"
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/sourcing-agent/internal/logger"
	"github.com/spigell/sourcing-agent/internal/profile"
)

const (
	DefaultGitHubURL = "https://api.github.com"

	maxTopLanguages = 5
	maxNotableRepos = 5
)

// GitHub fills a candidate's github block from the public API.
type GitHub struct {
	client *Client
}

func NewGitHub(log *zap.Logger, apiURL, token string) *GitHub {
	if apiURL == "" {
		apiURL = DefaultGitHubURL
	}
	return &GitHub{client: New(log, strings.TrimRight(apiURL, "/"), token)}
}

// Client exposes the underlying transport for tuning retries and timeouts.
func (g *GitHub) Client() *Client {
	return g.client
}

type githubUser struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Location    string `json:"location"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
}

type githubRepo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stars       int    `json:"stargazers_count"`
	Fork        bool   `json:"fork"`
}

// Enrich does nothing for candidates without a github username.
func (g *GitHub) Enrich(ctx context.Context, c *profile.Candidate) error {
	if c == nil || c.GitHub == nil || strings.TrimSpace(c.GitHub.Username) == "" {
		return nil
	}

	username := strings.TrimPrefix(strings.TrimSpace(c.GitHub.Username), "@")
	log := logger.WithCandidate(g.client.logger, c.Name, c.LinkedInURL).With(zap.String("github", username))

	var user githubUser
	if err := g.client.getJSON(ctx, g.client.APIURL+"/users/"+url.PathEscape(username), nil, &user); err != nil {
		return fmt.Errorf("github user %s: %w", username, err)
	}

	var repos []githubRepo
	q := url.Values{"per_page": {"100"}, "sort": {"updated"}}
	if err := g.client.getJSON(ctx, g.client.APIURL+"/users/"+url.PathEscape(username)+"/repos", q, &repos); err != nil {
		return fmt.Errorf("github repos %s: %w", username, err)
	}

	gh := c.GitHub
	gh.Username = username
	gh.PublicRepos = user.PublicRepos
	gh.Followers = user.Followers
	if user.Name != "" {
		gh.Name = user.Name
	}
	if user.Bio != "" {
		gh.Bio = user.Bio
	}
	if user.Location != "" {
		gh.Location = user.Location
	}

	own := slices.DeleteFunc(repos, func(r githubRepo) bool { return r.Fork })
	gh.TopLanguages = topLanguages(own, maxTopLanguages)
	gh.NotableRepos = notableRepos(own, maxNotableRepos)

	c.AddSource(profile.SourceGitHub)

	log.Debug("github enriched",
		zap.Int("public_repos", gh.PublicRepos),
		zap.Int("followers", gh.Followers),
		zap.Strings("languages", gh.TopLanguages),
	)

	return nil
}

// topLanguages orders languages by repo count, ties by name.
func topLanguages(repos []githubRepo, limit int) []string {
	counts := map[string]int{}
	for _, r := range repos {
		if r.Language != "" {
			counts[r.Language]++
		}
	}

	langs := make([]string, 0, len(counts))
	for lang := range counts {
		langs = append(langs, lang)
	}
	slices.SortFunc(langs, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	if len(langs) > limit {
		langs = langs[:limit]
	}
	return langs
}

func notableRepos(repos []githubRepo, limit int) []profile.Repository {
	sorted := slices.Clone(repos)
	slices.SortStableFunc(sorted, func(a, b githubRepo) int {
		return cmp.Compare(b.Stars, a.Stars)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]profile.Repository, 0, len(sorted))
	for _, r := range sorted {
		out = append(out, profile.Repository{
			Name:        r.Name,
			Stars:       r.Stars,
			Description: r.Description,
			Language:    r.Language,
		})
	}
	return out
}
