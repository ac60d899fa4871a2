package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Structured field keys shared across packages.
const (
	FieldCandidate = "candidate"
	FieldLinkedIn  = "linkedin_url"
	FieldProvider  = "outreach_provider"
	FieldModel     = "outreach_model"
	FieldRunID     = "run_id"
)

// StringField is a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the pairs into zap fields. Keys and values are trimmed
// and pairs with an empty side are dropped.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}
		result = append(result, zap.String(key, value))
	}
	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// CandidateFields identifies a candidate in log entries.
func CandidateFields(name, linkedInURL string) []zap.Field {
	return StringFields(
		StringField{Key: FieldCandidate, Value: name},
		StringField{Key: FieldLinkedIn, Value: linkedInURL},
	)
}

// ProviderFields identifies the message generator and its model.
func ProviderFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithCandidate is WithFields with CandidateFields.
func WithCandidate(logger *zap.Logger, name, linkedInURL string) *zap.Logger {
	return WithFields(logger, CandidateFields(name, linkedInURL)...)
}

// WithProvider is WithFields with ProviderFields.
func WithProvider(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, ProviderFields(provider, model)...)
}
