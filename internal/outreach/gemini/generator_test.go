package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/sourcing-agent/internal/outreach"
	"github.com/spigell/sourcing-agent/internal/profile"
	"github.com/spigell/sourcing-agent/internal/scoring"
)

type stubGenerator struct {
	response   string
	err        error
	lastSystem string
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, system, prompt string) (string, error) {
	s.lastSystem = system
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func testRequest() outreach.Request {
	return outreach.Request{
		Candidate: &profile.Candidate{
			Name:        "Jane Doe",
			LinkedInURL: "https://linkedin.com/in/jane-doe",
			Headline:    "Senior ML Engineer at OpenAI",
		},
		Result: &scoring.Result{
			FitScore: 8.7,
			Insights: []string{"Strong technical expertise and skill alignment"},
		},
		JobDescription: "Senior ML engineer working on LLM inference.",
		Role:           "Senior ML Engineer",
		Company:        "Windsurf",
		Sender:         "Alex",
	}
}

func TestGeneratorGenerate(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: "```json\n{\"subject\": \"ML at Windsurf\", \"message\": \"Hi Jane,\\n\\nYour work at OpenAI stood out. [Your Name]\"}\n```"}
	g := NewGenerator(stub, zap.NewNop(), 0)
	g.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	msg, err := g.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if msg.Subject != "ML at Windsurf" {
		t.Fatalf("unexpected subject: %q", msg.Subject)
	}
	if msg.Body != "Hi Jane,\n\nYour work at OpenAI stood out. Alex" {
		t.Fatalf("unexpected body: %q", msg.Body)
	}
	if msg.Provider != "gemini" || msg.Model != "stub-model" {
		t.Fatalf("unexpected provider: %s/%s", msg.Provider, msg.Model)
	}
	if msg.Type != outreach.InitialOutreach {
		t.Fatalf("expected default message type, got %q", msg.Type)
	}
	if !msg.GeneratedAt.Equal(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Fatalf("unexpected timestamp: %v", msg.GeneratedAt)
	}

	if stub.lastSystem != systemInstruction {
		t.Fatalf("unexpected system instruction: %q", stub.lastSystem)
	}
	for _, want := range []string{
		`"name": "Jane Doe"`,
		`"fit_score": 8.7`,
		"- Message type: initial_outreach",
		"- Tone: professional",
		"- Hiring company: Windsurf",
		"- Additional context: none",
		"Senior ML engineer working on LLM inference.",
	} {
		if !strings.Contains(stub.lastPrompt, want) {
			t.Fatalf("expected prompt to contain %q", want)
		}
	}
}

func TestGeneratorPropagatesErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	g := NewGenerator(&stubGenerator{err: boom}, zap.NewNop(), 0)
	if _, err := g.Generate(context.Background(), testRequest()); !errors.Is(err, boom) {
		t.Fatalf("expected client error, got %v", err)
	}

	req := testRequest()
	req.Candidate = nil
	if _, err := g.Generate(context.Background(), req); !errors.Is(err, outreach.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}

	bad := NewGenerator(&stubGenerator{response: "I cannot help with that"}, zap.NewNop(), 0)
	if _, err := bad.Generate(context.Background(), testRequest()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseResponse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		raw         string
		wantSubject string
		wantBody    string
		wantErr     bool
	}{
		{name: "plain", raw: `{"subject": "Hello", "message": "Body"}`, wantSubject: "Hello", wantBody: "Body"},
		{name: "fenced", raw: "```json\n{\"subject\": \"S\", \"message\": \"B\"}\n```", wantSubject: "S", wantBody: "B"},
		{name: "prose around", raw: "Sure! {\"message\": \"B\"} Hope it helps", wantBody: "B"},
		{name: "body key", raw: `{"subject": "S", "body": "B"}`, wantSubject: "S", wantBody: "B"},
		{name: "non string subject", raw: `{"subject": 42, "message": "B"}`, wantSubject: "42", wantBody: "B"},
		{name: "empty message", raw: `{"subject": "S", "message": "  "}`, wantErr: true},
		{name: "not json", raw: "no json here", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			subject, body, err := parseResponse(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if subject != tc.wantSubject || body != tc.wantBody {
				t.Fatalf("got (%q, %q), want (%q, %q)", subject, body, tc.wantSubject, tc.wantBody)
			}
		})
	}
}
