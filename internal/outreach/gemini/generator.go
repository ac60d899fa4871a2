package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/sourcing-agent/internal/logger"
	"github.com/spigell/sourcing-agent/internal/outreach"
)

//go:embed prompt.md
var promptTemplate string

const (
	systemInstruction = "You are an expert technical recruiter who writes highly personalized, authentic LinkedIn outreach messages with high response rates."

	defaultMaxLogLength = 200
	// maxBodyRunes keeps model output within a LinkedIn message.
	maxBodyRunes = 1500
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
	Model() string
}

type Generator struct {
	client    contentGenerator
	logger    *zap.Logger
	maxLogLen int
	now       func() time.Time
}

func NewGenerator(client contentGenerator, log *zap.Logger, maxLogLength int) *Generator {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Generator{
		client:    client,
		logger:    logger.WithProvider(log, "gemini", client.Model()),
		maxLogLen: maxLogLength,
		now:       time.Now,
	}
}

func (g *Generator) Name() string {
	return "gemini"
}

func (g *Generator) Generate(ctx context.Context, req outreach.Request) (*outreach.Message, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, err
	}

	log := logger.WithCandidate(g.logger, req.Candidate.Name, req.Candidate.LinkedInURL)
	log.Debug("gemini generate content request",
		zap.String("message_type", string(req.Type)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, g.maxLogLen)),
	)

	raw, err := g.client.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	log.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, g.maxLogLen)),
	)

	subject, body, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	return &outreach.Message{
		CandidateName: req.Candidate.Name,
		LinkedInURL:   req.Candidate.LinkedInURL,
		Type:          req.Type,
		Subject:       subject,
		Body:          outreach.Truncate(outreach.Finalize(body, req), maxBodyRunes),
		Provider:      g.Name(),
		Model:         g.client.Model(),
		GeneratedAt:   g.now().UTC(),
	}, nil
}

func buildPrompt(req outreach.Request) (string, error) {
	candidateJSON, err := json.MarshalIndent(req.Candidate, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal candidate payload: %w", err)
	}

	scoreJSON := []byte("not available")
	if req.Result != nil {
		scoreJSON, err = json.MarshalIndent(scoreSummary(req), "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal score payload: %w", err)
		}
	}

	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Candidate:\n{{CANDIDATE_JSON}}\n\nJob:\n{{JOB_DESCRIPTION}}\n\nJSON Response:"
	}

	return strings.NewReplacer(
		"{{CANDIDATE_JSON}}", string(candidateJSON),
		"{{SCORE_JSON}}", string(scoreJSON),
		"{{JOB_DESCRIPTION}}", orNone(req.JobDescription),
		"{{MESSAGE_TYPE}}", string(req.Type),
		"{{TONE}}", string(req.Tone),
		"{{ROLE}}", orNone(req.Role),
		"{{COMPANY}}", orNone(req.Company),
		"{{SENDER}}", orNone(req.Sender),
		"{{CONTEXT}}", orNone(req.Context),
	).Replace(template), nil
}

// scoreSummary keeps the prompt small: the scores and insights the
// message can lean on, without metadata.
func scoreSummary(req outreach.Request) map[string]any {
	r := req.Result
	summary := map[string]any{
		"fit_score":       r.FitScore,
		"score_breakdown": r.ScoreBreakdown,
		"insights":        r.Insights,
	}
	if r.Enhanced() {
		summary["multi_source_insights"] = r.MultiSourceInsights
	}
	return summary
}

func orNone(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "none"
	}
	return s
}

func parseResponse(raw string) (string, string, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return "", "", fmt.Errorf("parse gemini response: %w", err)
	}

	subject := coerceString(data["subject"])
	body := coerceString(data["message"])
	if body == "" {
		body = coerceString(data["body"])
	}
	if body == "" {
		return "", "", fmt.Errorf("parse gemini response: message is empty")
	}

	return subject, body, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	raw = strings.TrimSpace(raw)

	// Models sometimes wrap the object in prose.
	if !strings.HasPrefix(raw, "{") {
		start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}")
		if start != -1 && end > start {
			raw = raw[start : end+1]
		}
	}
	return raw
}

func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
