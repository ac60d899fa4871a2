package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spigell/sourcing-agent/internal/profile"
)

func githubServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/users/janedoe", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(githubUser{
			Login:       "janedoe",
			Name:        "Jane Doe",
			Bio:         "ML engineer",
			Location:    "San Francisco",
			PublicRepos: 7,
			Followers:   420,
		})
	})
	mux.HandleFunc("/users/janedoe/repos", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		_ = json.NewEncoder(w).Encode([]githubRepo{
			{Name: "a", Language: "Go", Stars: 5},
			{Name: "b", Language: "Python", Stars: 900},
			{Name: "c", Language: "Go", Stars: 40},
			{Name: "d", Language: "Rust", Stars: 1},
			{Name: "e", Language: "Python", Stars: 12},
			{Name: "f", Language: "C", Stars: 3},
			{Name: "g", Language: "Zig", Stars: 2},
			{Name: "forked", Language: "Haskell", Stars: 50000, Fork: true},
		})
	})
	return httptest.NewServer(mux)
}

func TestGitHubEnrich(t *testing.T) {
	t.Parallel()

	srv := githubServer(t)
	defer srv.Close()

	g := NewGitHub(zaptest.NewLogger(t), srv.URL, "")
	g.Client().RetryDelay = time.Millisecond

	c := &profile.Candidate{
		Name:        "Jane Doe",
		LinkedInURL: "https://linkedin.com/in/jane-doe",
		GitHub:      &profile.GitHubProfile{Username: "@janedoe"},
	}
	require.NoError(t, g.Enrich(context.Background(), c))

	gh := c.GitHub
	assert.Equal(t, "janedoe", gh.Username)
	assert.Equal(t, 7, gh.PublicRepos)
	assert.Equal(t, 420, gh.Followers)
	assert.Equal(t, "San Francisco", gh.Location)
	assert.Equal(t, []string{"Go", "Python", "C", "Rust", "Zig"}, gh.TopLanguages)

	require.Len(t, gh.NotableRepos, 5)
	assert.Equal(t, "b", gh.NotableRepos[0].Name)
	assert.Equal(t, 900, gh.NotableRepos[0].Stars)
	for _, r := range gh.NotableRepos {
		assert.NotEqual(t, "forked", r.Name)
	}

	assert.Equal(t, []string{profile.SourceLinkedIn, profile.SourceGitHub}, c.DataSources)
}

func TestGitHubEnrichSkipsWithoutUsername(t *testing.T) {
	t.Parallel()

	g := NewGitHub(zaptest.NewLogger(t), "http://127.0.0.1:0", "")

	c := &profile.Candidate{Name: "Jane"}
	require.NoError(t, g.Enrich(context.Background(), c))
	assert.Nil(t, c.GitHub)
	assert.Empty(t, c.DataSources)

	require.NoError(t, g.Enrich(context.Background(), nil))
}

func TestGitHubEnrichUnknownUser(t *testing.T) {
	t.Parallel()

	srv := githubServer(t)
	defer srv.Close()

	g := NewGitHub(zaptest.NewLogger(t), srv.URL, "")
	c := &profile.Candidate{GitHub: &profile.GitHubProfile{Username: "ghost"}}

	err := g.Enrich(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "github user ghost")
	assert.Empty(t, c.DataSources)
}
