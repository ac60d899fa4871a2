package source

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/sourcing-agent/internal/logger"
	"github.com/spigell/sourcing-agent/internal/profile"
)

const SearchPath = "/candidates"

type SearchParams struct {
	Text     string `mapstructure:"text"`
	Location string `mapstructure:"location"`
	// param overrides the query key. "-" keeps the field out of the query.
	Skills   []string `mapstructure:"skills" param:"skill"`
	PerPage  int      `mapstructure:"per-page" param:"per_page"`
	MaxPages int      `mapstructure:"max-pages" param:"-"`
}

// Search queries the candidates endpoint and decodes every page.
// Items that fail to decode are logged and skipped.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]*profile.Candidate, error) {
	if params.PerPage <= 0 {
		params.PerPage = defaultPerPage
	}

	items, err := c.GetItems(ctx, SearchPath, buildParams(params), params.MaxPages)
	if err != nil {
		return nil, fmt.Errorf("search candidates: %w", err)
	}

	candidates := make([]*profile.Candidate, 0, len(items))
	for i, item := range items {
		cand, err := profile.Decode(item)
		if err != nil {
			c.logger.Warn("skipping candidate item",
				zap.Int("index", i),
				zap.String("item", logger.TruncateForLog(fmt.Sprint(item), 200)),
				zap.Error(err),
			)
			continue
		}
		candidates = append(candidates, cand)
	}

	c.logger.Debug("search done",
		zap.Int("items", len(items)),
		zap.Int("candidates", len(candidates)),
	)

	return candidates, nil
}

// Search is a configured query usable as a pipeline source.
type Search struct {
	Client *Client
	Params SearchParams
}

func (s *Search) Candidates(ctx context.Context) ([]*profile.Candidate, error) {
	return s.Client.Search(ctx, s.Params)
}

func buildParams(params SearchParams) url.Values {
	q := url.Values{}
	v := reflect.ValueOf(params)

	for _, field := range reflect.VisibleFields(v.Type()) {
		key := field.Tag.Get("param")
		if key == "-" {
			continue
		}
		if key == "" {
			key = field.Tag.Get("mapstructure")
		}

		value := v.FieldByIndex(field.Index).Interface()
		switch typed := value.(type) {
		case []string:
			for _, s := range typed {
				if s != "" {
					q.Add(key, s)
				}
			}
		case int:
			if typed != 0 {
				q.Set(key, strconv.Itoa(typed))
			}
		default:
			if s := fmt.Sprint(typed); s != "" {
				q.Set(key, s)
			}
		}
	}

	return q
}
