// Package outreach drafts recruiter messages for shortlisted candidates.
package outreach

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/sourcing-agent/internal/profile"
	"github.com/spigell/sourcing-agent/internal/scoring"
)

type MessageType string

const (
	InitialOutreach MessageType = "initial_outreach"
	FollowUp        MessageType = "follow_up"
	Referral        MessageType = "referral"
	EventBased      MessageType = "event_based"
	IndustryUpdate  MessageType = "industry_update"
)

var messageTypes = []MessageType{InitialOutreach, FollowUp, Referral, EventBased, IndustryUpdate}

type Tone string

const (
	Professional Tone = "professional"
	Friendly     Tone = "friendly"
	Casual       Tone = "casual"
)

var tones = []Tone{Professional, Friendly, Casual}

// ErrInvalidRequest marks requests that no generator can serve.
var ErrInvalidRequest = errors.New("invalid outreach request")

func ParseMessageType(s string) (MessageType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return InitialOutreach, nil
	}
	for _, t := range messageTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown message type %q", ErrInvalidRequest, s)
}

func ParseTone(s string) (Tone, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Professional, nil
	}
	for _, t := range tones {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown tone %q", ErrInvalidRequest, s)
}

type Request struct {
	Candidate      *profile.Candidate
	Result         *scoring.Result
	JobDescription string
	Type           MessageType
	Tone           Tone
	// Role names the opening. Empty means a generic phrase.
	Role    string
	Sender  string
	Company string
	// Context is free text for follow-ups and event based messages,
	// such as the previous interaction or the event name.
	Context string
}

// Normalize fills defaults and rejects requests without a candidate or
// with an unknown type or tone.
func (r *Request) Normalize() error {
	if r.Candidate == nil {
		return fmt.Errorf("%w: candidate is required", ErrInvalidRequest)
	}

	t, err := ParseMessageType(string(r.Type))
	if err != nil {
		return err
	}
	r.Type = t

	tone, err := ParseTone(string(r.Tone))
	if err != nil {
		return err
	}
	r.Tone = tone

	r.Sender = strings.TrimSpace(r.Sender)
	r.Company = strings.TrimSpace(r.Company)
	r.Role = strings.TrimSpace(r.Role)
	return nil
}

type Message struct {
	CandidateName string      `json:"candidate_name"`
	LinkedInURL   string      `json:"linkedin_url"`
	Type          MessageType `json:"message_type"`
	Subject       string      `json:"subject"`
	Body          string      `json:"message"`
	Provider      string      `json:"provider"`
	Model         string      `json:"model,omitempty"`
	GeneratedAt   time.Time   `json:"generated_at"`
}

type Generator interface {
	Name() string
	Generate(ctx context.Context, req Request) (*Message, error)
}

type fallbackGenerator struct {
	primary  Generator
	fallback Generator
	logger   *zap.Logger
}

// WithFallback tries primary first and falls back when it fails.
// Invalid requests and cancellation are returned as is.
func WithFallback(primary, fallback Generator, logger *zap.Logger) Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch {
	case primary == nil:
		return fallback
	case fallback == nil:
		return primary
	}
	return &fallbackGenerator{primary: primary, fallback: fallback, logger: logger}
}

func (g *fallbackGenerator) Name() string {
	return g.primary.Name() + "+" + g.fallback.Name()
}

func (g *fallbackGenerator) Generate(ctx context.Context, req Request) (*Message, error) {
	msg, err := g.primary.Generate(ctx, req)
	if err == nil {
		return msg, nil
	}
	if errors.Is(err, ErrInvalidRequest) || ctx.Err() != nil {
		return nil, err
	}

	name, url := "", ""
	if req.Candidate != nil {
		name, url = req.Candidate.Name, req.Candidate.LinkedInURL
	}
	g.logger.Warn("outreach generation failed, using fallback",
		zap.String("primary", g.primary.Name()),
		zap.String("fallback", g.fallback.Name()),
		zap.String("candidate", name),
		zap.String("linkedin_url", url),
		zap.Error(err),
	)

	return g.fallback.Generate(ctx, req)
}
