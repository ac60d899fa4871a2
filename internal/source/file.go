package source

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/spigell/sourcing-agent/internal/profile"
)

//go:embed candidates.schema.json
var candidatesSchema string

// File loads candidates from a JSON or YAML document. The document is either
// a list of candidates or an object with a "candidates" list.
type File struct {
	Path   string
	Logger *zap.Logger
}

// ValidationError lists schema violations by field path.
type ValidationError struct {
	Path   string
	Errors []FieldError
}

type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: invalid candidates document:", e.Path)
	for _, fe := range e.Errors {
		fmt.Fprintf(&sb, "\n  %s: %s", fe.Field, fe.Message)
	}
	return sb.String()
}

func (f *File) Candidates(ctx context.Context) ([]*profile.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := f.Logger
	if log == nil {
		log = zap.NewNop()
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read candidates: %w", err)
	}

	doc, err := parseDocument(f.Path, data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}

	records, err := candidateList(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}

	if err := validate(f.Path, records); err != nil {
		return nil, err
	}

	candidates := make([]*profile.Candidate, 0, len(records))
	for i, record := range records {
		raw, _ := record.(map[string]any)
		c, err := profile.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: candidate %d: %w", f.Path, i, err)
		}
		candidates = append(candidates, c)
	}

	log.Debug("loaded candidates", zap.String("path", f.Path), zap.Int("count", len(candidates)))

	return candidates, nil
}

func parseDocument(path string, data []byte) (any, error) {
	var doc any

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func candidateList(doc any) ([]any, error) {
	switch v := doc.(type) {
	case []any:
		return v, nil
	case map[string]any:
		list, ok := v["candidates"]
		if !ok {
			return nil, fmt.Errorf(`document has no "candidates" list`)
		}
		if list == nil {
			return nil, nil
		}
		items, ok := list.([]any)
		if !ok {
			return nil, fmt.Errorf(`"candidates" must be a list, got %T`, list)
		}
		return items, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected document type %T", doc)
	}
}

func validate(path string, records []any) error {
	if records == nil {
		records = []any{}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(candidatesSchema),
		gojsonschema.NewGoLoader(records),
	)
	if err != nil {
		return fmt.Errorf("validate %s: %w", path, err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Path: path, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}
