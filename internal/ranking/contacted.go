package ranking

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/spigell/sourcing-agent/internal/profile"
)

// ContactedCandidates is the persisted list of people already reached out to.
type ContactedCandidates struct {
	Items []*Contacted
}

type Contacted struct {
	URL         string
	Name        string
	ContactedAt time.Time
}

// ContactedFromFile reads the contacted list. A missing or empty file is an empty list.
func ContactedFromFile(path string) (*ContactedCandidates, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &ContactedCandidates{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size() == 0 {
		return &ContactedCandidates{}, nil
	}

	var contacted ContactedCandidates
	if err := json.NewDecoder(file).Decode(&contacted); err != nil {
		return nil, err
	}
	return &contacted, nil
}

func (c *ContactedCandidates) Append(other *ContactedCandidates) {
	if other == nil {
		return
	}
	c.Items = append(c.Items, other.Items...)
}

// URLs returns the recorded profile URLs.
func (c *ContactedCandidates) URLs() []string {
	urls := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		if item.URL != "" {
			urls = append(urls, item.URL)
		}
	}
	return urls
}

// Keys returns the candidate keys of the records, comparable with Scored.Key.
func (c *ContactedCandidates) Keys() []string {
	keys := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		if key := (&profile.Candidate{LinkedInURL: item.URL, Name: item.Name}).Key(); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// ToFile writes the list as indented JSON, replacing the file.
func (c *ContactedCandidates) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	return encodeIndented(file, c)
}
