package multisource

import (
	"strings"

	"github.com/spigell/sourcing-agent/internal/lexical"
	"github.com/spigell/sourcing-agent/internal/profile"
)

const neutralConsistency = 0.5

var consistencyStopwords = stopwords("the", "and", "or", "at", "in", "on", "for", "with", "by", "a", "an")

type platformIdentity struct {
	name     string
	bio      string
	location string
}

// PlatformConsistency compares name, location and bio across the linkedin, github and
// twitter blocks. Fewer than two platforms is neutral.
func PlatformConsistency(c *profile.Candidate) float64 {
	var platforms []platformIdentity

	if c.LinkedInURL != "" {
		platforms = append(platforms, platformIdentity{name: c.Name, bio: c.Headline, location: c.Location})
	}
	if c.HasGitHub() {
		platforms = append(platforms, platformIdentity{name: c.GitHub.Name, bio: c.GitHub.Bio, location: c.GitHub.Location})
	}
	if c.HasTwitter() {
		platforms = append(platforms, platformIdentity{bio: c.Twitter.Bio, location: c.Twitter.Location})
	}

	if len(platforms) < 2 {
		return neutralConsistency
	}

	var components []float64

	names := collect(platforms, func(p platformIdentity) string { return strings.ToLower(strings.TrimSpace(p.name)) })
	if len(names) >= 2 {
		if allEqual(names) {
			components = append(components, 1.0)
		} else {
			components = append(components, 0.3)
		}
	}

	locations := collect(platforms, func(p platformIdentity) string { return strings.ToLower(p.location) })
	if len(locations) >= 2 {
		first := lexical.Words(locations[0], nil)
		second := lexical.Words(locations[1], nil)
		if lexical.Jaccard(first, second) > 0 {
			components = append(components, 0.8)
		} else {
			components = append(components, 0.4)
		}
	}

	bios := collect(platforms, func(p platformIdentity) string { return strings.ToLower(p.bio) })
	if len(bios) >= 2 {
		first := lexical.Words(bios[0], consistencyStopwords)
		second := lexical.Words(bios[1], consistencyStopwords)
		if len(first) > 0 && len(second) > 0 {
			components = append(components, lexical.Jaccard(first, second))
		}
	}

	if len(components) == 0 {
		return neutralConsistency
	}

	total := 0.0
	for _, v := range components {
		total += v
	}
	return total / float64(len(components))
}

func collect(platforms []platformIdentity, field func(platformIdentity) string) []string {
	var out []string
	for _, p := range platforms {
		if v := field(p); strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func allEqual(values []string) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
