package profile

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Candidate is a sourced profile. Every field is optional.
type Candidate struct {
	Name        string `json:"name,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	Headline    string `json:"headline,omitempty"`
	Snippet     string `json:"snippet,omitempty"`
	Location    string `json:"location,omitempty"`

	Experience      []Experience `json:"experience,omitempty"`
	Education       []Education  `json:"education,omitempty"`
	Skills          []string     `json:"skills,omitempty"`
	ExperienceYears float64      `json:"experience_years,omitempty"`

	GitHub  *GitHubProfile  `json:"github_profile,omitempty"`
	Twitter *TwitterProfile `json:"twitter_profile,omitempty"`
	Website *Website        `json:"personal_website,omitempty"`

	DataSources []string `json:"data_sources,omitempty"`
}

type Experience struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	School string `json:"school,omitempty"`
	Degree string `json:"degree,omitempty"`
	Year   string `json:"year,omitempty"`
}

type GitHubProfile struct {
	Username     string       `json:"username,omitempty"`
	Name         string       `json:"name,omitempty"`
	Bio          string       `json:"bio,omitempty"`
	Location     string       `json:"location,omitempty"`
	PublicRepos  int          `json:"public_repos,omitempty"`
	Followers    int          `json:"followers,omitempty"`
	TopLanguages []string     `json:"top_languages,omitempty"`
	NotableRepos []Repository `json:"notable_repos,omitempty"`
}

type Repository struct {
	Name        string `json:"name,omitempty"`
	Stars       int    `json:"stars,omitempty"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
}

type TwitterProfile struct {
	Username  string `json:"username,omitempty"`
	Followers int    `json:"followers,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Location  string `json:"location,omitempty"`
}

type Website struct {
	URL           string   `json:"url,omitempty"`
	HasBlog       bool     `json:"has_blog,omitempty"`
	HasPortfolio  bool     `json:"has_portfolio,omitempty"`
	ContentTopics []string `json:"content_topics,omitempty"`
}

// Decode converts a raw record, as returned by JSON or YAML decoding, into a Candidate.
// Numbers and strings are converted loosely so "year": 2019 and "followers": "1200" both work.
func Decode(raw map[string]any) (*Candidate, error) {
	if raw == nil {
		return nil, fmt.Errorf("candidate record is empty")
	}

	var c Candidate
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &c,
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode candidate: %w", err)
	}

	c.Normalize()
	return &c, nil
}

// Normalize trims free-text fields and derives a missing name from the LinkedIn URL slug.
func (c *Candidate) Normalize() {
	if c == nil {
		return
	}

	c.Name = strings.TrimSpace(c.Name)
	c.LinkedInURL = strings.TrimSpace(c.LinkedInURL)
	c.Headline = strings.TrimSpace(c.Headline)
	c.Snippet = strings.TrimSpace(c.Snippet)
	c.Location = strings.TrimSpace(c.Location)

	if c.Name == "" {
		c.Name = NameFromURL(c.LinkedInURL)
	}
}

// NameFromURL turns a profile URL such as https://linkedin.com/in/jane-doe-4a2b1 into "Jane Doe".
// Trailing slug segments containing digits are treated as disambiguators and dropped.
func NameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	slug := ""
	for i, s := range segments {
		if s == "in" && i+1 < len(segments) {
			slug = segments[i+1]
			break
		}
	}
	if slug == "" {
		slug = segments[len(segments)-1]
	}

	parts := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == '_' || r == '.' })
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.ContainsAny(p, "0123456789") {
			continue
		}
		words = append(words, strings.ToUpper(p[:1])+strings.ToLower(p[1:]))
	}

	return strings.Join(words, " ")
}

// HasGitHub reports whether a non-empty GitHub block is attached.
func (c *Candidate) HasGitHub() bool {
	if c == nil || c.GitHub == nil {
		return false
	}
	g := c.GitHub
	return g.Username != "" || g.Name != "" || g.Bio != "" || g.Location != "" ||
		g.PublicRepos != 0 || g.Followers != 0 || len(g.TopLanguages) > 0 || len(g.NotableRepos) > 0
}

// HasTwitter reports whether a non-empty Twitter block is attached.
func (c *Candidate) HasTwitter() bool {
	if c == nil || c.Twitter == nil {
		return false
	}
	t := c.Twitter
	return t.Username != "" || t.Followers != 0 || t.Bio != "" || t.Location != ""
}

// HasWebsite reports whether a non-empty personal website block is attached.
func (c *Candidate) HasWebsite() bool {
	if c == nil || c.Website == nil {
		return false
	}
	w := c.Website
	return w.URL != "" || w.HasBlog || w.HasPortfolio || len(w.ContentTopics) > 0
}

// Key identifies a candidate across sources: the LinkedIn URL when known, the name otherwise.
func (c *Candidate) Key() string {
	if c == nil {
		return ""
	}
	if u := strings.ToLower(strings.TrimRight(c.LinkedInURL, "/")); u != "" {
		u = strings.TrimPrefix(u, "https://")
		u = strings.TrimPrefix(u, "http://")
		return strings.TrimPrefix(u, "www.")
	}
	return strings.ToLower(c.Name)
}

// FirstName returns the first word of the name.
func (c *Candidate) FirstName() string {
	if c == nil {
		return ""
	}
	fields := strings.Fields(c.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
