package outreach

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/spigell/sourcing-agent/internal/profile"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	defaultRole    = "an open role"
	defaultCompany = "our company"
	maxSkills      = 3
)

// Template renders the embedded message templates. It needs no network
// and is the fallback for model based generators.
type Template struct {
	tmpl *template.Template
	now  func() time.Time
}

func NewTemplate() (*Template, error) {
	tmpl, err := template.New("outreach").Funcs(template.FuncMap{
		"title":      upperFirst,
		"lowerFirst": lowerFirst,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse outreach templates: %w", err)
	}
	return &Template{tmpl: tmpl, now: time.Now}, nil
}

func (t *Template) Name() string {
	return "template"
}

func (t *Template) Generate(ctx context.Context, req Request) (*Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	data := newTemplateData(req)

	subject, err := t.render(string(req.Type)+".subject", data)
	if err != nil {
		return nil, err
	}
	body, err := t.render(string(req.Type)+".body", data)
	if err != nil {
		return nil, err
	}

	return &Message{
		CandidateName: req.Candidate.Name,
		LinkedInURL:   req.Candidate.LinkedInURL,
		Type:          req.Type,
		Subject:       strings.TrimSpace(subject),
		Body:          Finalize(body, req),
		Provider:      t.Name(),
		GeneratedAt:   t.now().UTC(),
	}, nil
}

func (t *Template) render(name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

type templateData struct {
	FirstName     string
	Highlight     string
	Insight       string
	Skills        string
	GitHubMention string
	Role          string
	Company       string
	Sender        string
	Context       string
	Greeting      string
	SignOff       string
}

func newTemplateData(req Request) templateData {
	c := req.Candidate

	first := c.FirstName()
	if first == "" {
		first = "there"
	}

	sender := req.Sender
	if sender == "" {
		sender = "[Recruiter Name]"
	}

	greeting, signOff := toneWords(req.Tone)

	return templateData{
		FirstName:     first,
		Highlight:     highlight(c),
		Insight:       topInsight(req),
		Skills:        skillList(c.Skills),
		GitHubMention: githubMention(c),
		Role:          firstNonEmpty(req.Role, defaultRole),
		Company:       firstNonEmpty(req.Company, defaultCompany),
		Sender:        sender,
		Context:       strings.TrimSpace(req.Context),
		Greeting:      greeting,
		SignOff:       signOff,
	}
}

func toneWords(t Tone) (string, string) {
	switch t {
	case Friendly:
		return "Hi", "Cheers"
	case Casual:
		return "Hey", "Thanks"
	default:
		return "Hi", "Best regards"
	}
}

// highlight describes the candidate from headline or current role.
func highlight(c *profile.Candidate) string {
	if c.Headline != "" {
		return "background as " + c.Headline
	}
	if len(c.Experience) > 0 {
		e := c.Experience[0]
		switch {
		case e.Title != "" && e.Company != "":
			return fmt.Sprintf("work as %s at %s", e.Title, e.Company)
		case e.Title != "":
			return "work as " + e.Title
		}
	}
	return "professional background"
}

// topInsight is the first insight of a real result, without trailing punctuation.
func topInsight(req Request) string {
	if req.Result == nil || req.Result.Error || len(req.Result.Insights) == 0 {
		return ""
	}
	return strings.TrimRight(strings.TrimSpace(req.Result.Insights[0]), ".!")
}

func skillList(skills []string) string {
	kept := make([]string, 0, maxSkills)
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			kept = append(kept, s)
		}
		if len(kept) == maxSkills {
			break
		}
	}

	switch len(kept) {
	case 0:
		return ""
	case 1:
		return kept[0]
	default:
		return strings.Join(kept[:len(kept)-1], ", ") + " and " + kept[len(kept)-1]
	}
}

func githubMention(c *profile.Candidate) string {
	if !c.HasGitHub() || len(c.GitHub.NotableRepos) == 0 {
		return ""
	}
	repo := c.GitHub.NotableRepos[0]
	if repo.Name == "" {
		return ""
	}
	return fmt.Sprintf("I also enjoyed looking through %s on your GitHub.", repo.Name)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
