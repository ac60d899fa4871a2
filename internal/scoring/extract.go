package scoring

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/sourcing-agent/internal/lexical"
	"github.com/spigell/sourcing-agent/internal/profile"
)

type degreeLevel int

const (
	degreeBase degreeLevel = iota
	degreeMaster
	degreeDoctorate
)

var (
	doctorateTerms = []string{"phd", "doctorate", "doctor of philosophy"}
	masterTerms    = []string{"master", "masters", "ms", "msc", "meng", "mba"}
	standardSchool = []string{"university", "college", "institute"}

	educationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(university of [^,.\n]+)`),
		regexp.MustCompile(`([^,.\n]*university[^,.\n]*)`),
		regexp.MustCompile(`([^,.\n]*institute of technology[^,.\n]*)`),
		regexp.MustCompile(`\b(mit|stanford|harvard|berkeley|cmu)\b`),
	}

	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(senior [^,.\n]*engineer[^,.\n]*)`),
		regexp.MustCompile(`(lead [^,.\n]*)`),
		regexp.MustCompile(`(principal [^,.\n]*)`),
		regexp.MustCompile(`([^,.\n]*scientist[^,.\n]*)`),
		regexp.MustCompile(`([^,.\n]*researcher[^,.\n]*)`),
		regexp.MustCompile(`([^,.\n]*developer[^,.\n]*)`),
	}

	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:san francisco|sf|mountain view|palo alto|menlo park)\b`),
		regexp.MustCompile(`(?i)\b(?:seattle|new york|nyc|boston|austin|chicago)\b`),
		regexp.MustCompile(`(?i)\b(?:remote|distributed|worldwide)\b`),
	}

	yearsPattern  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:years?|yrs?)\b`)
	monthsPattern = regexp.MustCompile(`(\d+)\s*(?:months?|mos?)\b`)
)

const (
	maxExtractedSchools = 3
	currentRoleYears    = 2.0
	unknownRoleYears    = 1.5
)

// normalizeSchool lower-cases the name and strips a leading "university of" or "the".
func normalizeSchool(school string) string {
	s := strings.ToLower(strings.TrimSpace(school))
	for _, prefix := range []string{"the ", "university of "} {
		s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
	}
	return s
}

func classifyDegree(degree string) degreeLevel {
	d := strings.ToLower(strings.ReplaceAll(degree, ".", ""))
	switch {
	case lexical.ContainsAny(d, doctorateTerms):
		return degreeDoctorate
	case lexical.ContainsAny(d, masterTerms):
		return degreeMaster
	default:
		return degreeBase
	}
}

// extractEducation pulls school mentions out of free text, first-seen order, at most three.
func extractEducation(text string) []profile.Education {
	text = strings.ToLower(text)
	seen := make(map[string]struct{})
	var found []profile.Education

	for _, pattern := range educationPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			school := strings.TrimSpace(m[1])
			if school == "" {
				continue
			}
			if _, ok := seen[school]; ok {
				continue
			}
			seen[school] = struct{}{}
			found = append(found, profile.Education{School: school})
			if len(found) == maxExtractedSchools {
				return found
			}
		}
	}

	return found
}

// extractExperienceIndicators pulls title-like phrases out of free text.
func extractExperienceIndicators(text string) []string {
	text = strings.ToLower(text)
	var indicators []string
	for _, pattern := range experiencePatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			if s := strings.TrimSpace(m[1]); s != "" {
				indicators = append(indicators, s)
			}
		}
	}
	return indicators
}

func extractLocation(text string) string {
	for _, pattern := range locationPatterns {
		if m := pattern.FindString(text); m != "" {
			return strings.ToLower(m)
		}
	}
	return ""
}

// parseDurationYears converts free-text durations to years.
// Empty input yields 0, which callers treat as unknown; anything else that does
// not parse is assumed to be a 1.5 year stint.
func parseDurationYears(duration string) float64 {
	d := strings.ToLower(strings.TrimSpace(duration))
	if d == "" {
		return 0
	}

	if m := yearsPattern.FindStringSubmatch(d); m != nil {
		if years, err := strconv.ParseFloat(m[1], 64); err == nil {
			return years
		}
	}

	if m := monthsPattern.FindStringSubmatch(d); m != nil {
		if months, err := strconv.ParseFloat(m[1], 64); err == nil {
			return months / 12
		}
	}

	if strings.Contains(d, "present") || strings.Contains(d, "current") {
		return currentRoleYears
	}

	return unknownRoleYears
}

func experienceText(exp profile.Experience) string {
	return lexical.Join(exp.Title, exp.Company, exp.Duration, exp.Description)
}

func educationText(edu profile.Education) string {
	return lexical.Join(edu.School, edu.Degree, edu.Year)
}

// candidateText is everything the experience matcher may look at.
func candidateText(c *profile.Candidate) string {
	parts := []string{c.Headline, c.Snippet}
	for _, exp := range c.Experience {
		parts = append(parts, experienceText(exp))
	}
	for _, edu := range c.Education {
		parts = append(parts, educationText(edu))
	}
	parts = append(parts, c.Skills...)
	return lexical.Join(parts...)
}

func companyNames(c *profile.Candidate) []string {
	names := make([]string, 0, len(c.Experience))
	for _, exp := range c.Experience {
		if name := strings.ToLower(strings.TrimSpace(exp.Company)); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// companyMentioned follows the three-way check: the term in the narrative text, the term inside
// an experience company name, or a company name (longer than 3 chars) inside the term.
func companyMentioned(term string, companies []string, text string) bool {
	if lexical.ContainsTerm(text, term) {
		return true
	}
	for _, company := range companies {
		if lexical.ContainsTerm(company, term) {
			return true
		}
		if len(company) > 3 && lexical.ContainsTerm(term, company) {
			return true
		}
	}
	return false
}
