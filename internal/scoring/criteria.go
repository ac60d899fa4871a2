package scoring

import (
	"strings"

	"github.com/spigell/sourcing-agent/internal/lexical"
	"github.com/spigell/sourcing-agent/internal/profile"
)

// Criterion names one of the six evaluation axes.
type Criterion string

const (
	CriterionEducation        Criterion = "education"
	CriterionCareerTrajectory Criterion = "career_trajectory"
	CriterionCompanyRelevance Criterion = "company_relevance"
	CriterionExperienceMatch  Criterion = "experience_match"
	CriterionLocationMatch    Criterion = "location_match"
	CriterionTenure           Criterion = "tenure"
)

// Criteria lists every criterion in reporting order.
var Criteria = []Criterion{
	CriterionEducation,
	CriterionCareerTrajectory,
	CriterionCompanyRelevance,
	CriterionExperienceMatch,
	CriterionLocationMatch,
	CriterionTenure,
}

const (
	maxScore = 10.0

	neutralEducation  = 4.0
	neutralTrajectory = 5.0
	baseCompany       = 4.0
	neutralExperience = 5.0
	neutralLocation   = 8.0
	neutralTenure     = 6.0

	requiredShare  = 0.7
	preferredShare = 0.3
)

var (
	executiveIndicators = []string{"director", "vp", "head of", "chief"}
	seniorIndicators    = []string{"senior", "lead", "principal", "staff", "director", "vp", "head of", "chief"}
	midIndicators       = []string{"engineer", "scientist", "researcher", "developer", "manager"}
	juniorIndicators    = []string{"junior", "associate", "entry", "intern", "assistant"}
)

// schoolScores maps a school tier to its score by degree level.
var schoolScores = map[string][3]float64{
	"elite":    {9.0, 9.5, 10.0},
	"strong":   {7.0, 7.5, 8.5},
	"standard": {5.0, 5.5, 6.5},
}

// Job is what a candidate is scored against.
type Job struct {
	Description string `json:"description"`
	// Location optionally narrows location matching to a requested place.
	Location string `json:"location,omitempty"`
}

func (s *Scorer) scoreAll(c *profile.Candidate, job Job) map[Criterion]float64 {
	return map[Criterion]float64{
		CriterionEducation:        s.Education(c),
		CriterionCareerTrajectory: s.CareerTrajectory(c),
		CriterionCompanyRelevance: s.CompanyRelevance(c),
		CriterionExperienceMatch:  s.ExperienceMatch(c, job.Description),
		CriterionLocationMatch:    s.LocationMatch(c, job.Location),
		CriterionTenure:           s.Tenure(c),
	}
}

// Education scores the best listed degree by school tier and degree level.
// Without structured entries schools are pulled from headline and snippet.
func (s *Scorer) Education(c *profile.Candidate) float64 {
	entries := c.Education
	if len(entries) == 0 {
		entries = extractEducation(c.Headline + " " + c.Snippet)
	}
	if len(entries) == 0 {
		return neutralEducation
	}

	best := 0.0
	for _, edu := range entries {
		tier := s.schoolTier(edu.School)
		if tier == "" {
			continue
		}
		score := schoolScores[tier][classifyDegree(edu.Degree)]
		if score > best {
			best = score
		}
	}

	if best == 0 {
		return neutralEducation
	}
	return min(best, maxScore)
}

func (s *Scorer) schoolTier(school string) string {
	raw := strings.ToLower(strings.TrimSpace(school))
	if raw == "" {
		return ""
	}
	normalized := normalizeSchool(raw)

	matches := func(terms []string) bool {
		return lexical.ContainsAny(raw, terms) || lexical.ContainsAny(normalized, terms)
	}

	switch {
	case matches(s.lex.EliteSchools):
		return "elite"
	case matches(s.lex.StrongSchools):
		return "strong"
	case lexical.ContainsAny(raw, standardSchool):
		return "standard"
	default:
		return ""
	}
}

// CareerTrajectory scores seniority signals plus a small bonus for total years.
func (s *Scorer) CareerTrajectory(c *profile.Candidate) float64 {
	headline := strings.ToLower(c.Headline)

	var roles []string
	if len(c.Experience) > 0 {
		for _, exp := range c.Experience {
			roles = append(roles, lexical.Join(exp.Title, exp.Company, exp.Description))
		}
	} else {
		roles = extractExperienceIndicators(c.Headline + " " + c.Snippet)
	}

	score := neutralTrajectory
	if headline != "" || len(roles) > 0 {
		score = progressionScore(lexical.Join(append([]string{headline}, roles...)...))
	}

	switch years := s.totalYears(c); {
	case years >= 8:
		score += 0.5
	case years >= 5:
		score += 0.3
	}

	return min(score, maxScore)
}

func progressionScore(text string) float64 {
	executive := lexical.CountTerms(text, executiveIndicators)
	senior := lexical.CountTerms(text, seniorIndicators)
	mid := lexical.CountTerms(text, midIndicators)
	junior := lexical.CountTerms(text, juniorIndicators)

	switch {
	case executive >= 1:
		return 9.5
	case senior >= 2:
		return 9.0
	case senior >= 1 && mid >= 1:
		return 8.5
	case senior >= 1:
		return 8.0
	case mid >= 2:
		return 7.0
	case mid >= 1 && junior >= 1:
		return 6.5
	case mid >= 1:
		return 6.0
	case junior >= 1:
		return 4.5
	default:
		return neutralTrajectory
	}
}

// totalYears prefers the declared estimate and falls back to the sum of parsed durations.
func (s *Scorer) totalYears(c *profile.Candidate) float64 {
	if c.ExperienceYears > 0 {
		return c.ExperienceYears
	}
	total := 0.0
	for _, exp := range c.Experience {
		total += parseDurationYears(exp.Duration)
	}
	return total
}

// CompanyRelevance takes the highest company tier matched anywhere in the profile.
func (s *Scorer) CompanyRelevance(c *profile.Candidate) float64 {
	companies := companyNames(c)
	text := lexical.Join(c.Headline, c.Snippet)

	mentionedAny := func(terms []string) bool {
		for _, term := range terms {
			if companyMentioned(term, companies, text) {
				return true
			}
		}
		return false
	}

	switch {
	case mentionedAny(s.lex.AICompanies):
		return 10.0
	case mentionedAny(s.lex.Tier1Companies):
		return 9.5
	case mentionedAny(s.lex.Tier2Companies):
		return 8.0
	case lexical.ContainsAny(text, s.lex.TechIndicators):
		return 6.5
	default:
		return baseCompany
	}
}

// ExperienceMatch compares candidate text with the skill keywords named by the job description.
func (s *Scorer) ExperienceMatch(c *profile.Candidate, jobDescription string) float64 {
	text := candidateText(c)
	if text == "" {
		return neutralExperience
	}

	required, preferred := s.jobRequirements(jobDescription)

	requiredScore := skillMatch(text, required)
	preferredScore := requiredScore
	if len(preferred) > 0 {
		preferredScore = skillMatch(text, preferred)
	}

	score := requiredScore*requiredShare + preferredScore*preferredShare
	if lexical.ContainsAny(text, s.lex.HighValueTerms) {
		score += 1.0
	}

	return min(score, maxScore)
}

// jobRequirements returns the lexicon skills mentioned in the job description.
// A description naming none of them gets the full lists.
func (s *Scorer) jobRequirements(jobDescription string) ([]string, []string) {
	jd := strings.ToLower(jobDescription)
	required := lexical.MatchedTerms(jd, s.lex.RequiredSkills)
	preferred := lexical.MatchedTerms(jd, s.lex.PreferredSkills)

	if len(required) == 0 && len(preferred) == 0 {
		return s.lex.RequiredSkills, s.lex.PreferredSkills
	}
	if len(required) == 0 {
		return preferred, nil
	}
	return required, preferred
}

func skillMatch(text string, skills []string) float64 {
	if len(skills) == 0 {
		return 0
	}
	ratio := float64(lexical.CountTerms(text, skills)) / float64(len(skills))
	return min(ratio*maxScore, maxScore)
}

// LocationMatch buckets the candidate location. A requested location that the
// candidate location contains scores as an exact match.
func (s *Scorer) LocationMatch(c *profile.Candidate, requested string) float64 {
	location := strings.ToLower(c.Location)
	snippet := strings.ToLower(c.Snippet)

	if location == "" {
		location = extractLocation(snippet)
	}

	if location == "" && !lexical.ContainsAny(snippet, s.lex.RemoteIndicators) {
		return neutralLocation
	}

	if city := requestedCity(requested); city != "" && lexical.ContainsTerm(location, city) {
		return 10.0
	}

	switch {
	case lexical.ContainsAny(location, s.lex.ExactLocations):
		return 10.0
	case lexical.ContainsAny(location, s.lex.TargetLocations):
		return 8.5
	case lexical.ContainsAny(location, s.lex.RemoteIndicators) || lexical.ContainsAny(snippet, s.lex.RemoteIndicators):
		return 7.0
	case lexical.ContainsAny(location, s.lex.StateLocations):
		return 5.0
	case lexical.ContainsAny(location, s.lex.RegionalLocations):
		return 4.0
	default:
		return 3.0
	}
}

// requestedCity keeps the part before the first comma: "Palo Alto, CA" -> "palo alto".
func requestedCity(requested string) string {
	city, _, _ := strings.Cut(strings.ToLower(requested), ",")
	return strings.TrimSpace(city)
}

// Tenure scores the mean stint length. The bands are intentionally non-monotonic:
// two to four years is ideal, very long stints score below moderately long ones.
func (s *Scorer) Tenure(c *profile.Candidate) float64 {
	if len(c.Experience) == 0 {
		switch years := c.ExperienceYears; {
		case years >= 5:
			return 7.0
		case years >= 2:
			return 6.0
		default:
			return 5.0
		}
	}

	var total float64
	var count int
	for _, exp := range c.Experience {
		if years := parseDurationYears(exp.Duration); years > 0 {
			total += years
			count++
		}
	}

	if count == 0 {
		return neutralTenure
	}

	return tenureBand(total / float64(count))
}

func tenureBand(avg float64) float64 {
	switch {
	case avg >= 2.0 && avg <= 4.0:
		return 9.5
	case avg >= 1.5 && avg < 2.0:
		return 8.0
	case avg > 4.0 && avg <= 6.0:
		return 8.5
	case avg >= 1.0 && avg < 1.5:
		return 6.0
	case avg > 6.0:
		return 7.0
	default:
		return 3.0
	}
}
