package scoring

import (
	"slices"
	"strings"
)

// Lexicon holds the lookup tables behind the criterion heuristics.
// All entries are lower-case. A Scorer keeps its own copy, so a Lexicon
// passed to New can be reused or modified afterwards without effect.
type Lexicon struct {
	EliteSchools  []string `mapstructure:"elite-schools"`
	StrongSchools []string `mapstructure:"strong-schools"`

	AICompanies    []string `mapstructure:"ai-companies"`
	Tier1Companies []string `mapstructure:"tier1-companies"`
	Tier2Companies []string `mapstructure:"tier2-companies"`
	TechIndicators []string `mapstructure:"tech-indicators"`

	ExactLocations    []string `mapstructure:"exact-locations"`
	TargetLocations   []string `mapstructure:"target-locations"`
	RemoteIndicators  []string `mapstructure:"remote-indicators"`
	StateLocations    []string `mapstructure:"state-locations"`
	RegionalLocations []string `mapstructure:"regional-locations"`

	RequiredSkills  []string `mapstructure:"required-skills"`
	PreferredSkills []string `mapstructure:"preferred-skills"`
	HighValueTerms  []string `mapstructure:"high-value-terms"`
}

// DefaultLexicon returns the built-in tables tuned for ML/AI engineering roles in the Bay Area.
func DefaultLexicon() Lexicon {
	return Lexicon{
		EliteSchools: []string{
			"mit", "stanford", "harvard", "caltech", "berkeley", "cmu", "cornell",
			"princeton", "yale", "columbia", "university of washington", "georgia tech",
			"carnegie mellon", "massachusetts institute of technology", "stanford university",
			"university of california berkeley", "uc berkeley",
		},
		StrongSchools: []string{
			"ucla", "usc", "ucsd", "ucsb", "university of michigan", "university of illinois",
			"purdue", "penn state", "virginia tech", "texas a&m", "rice university",
			"duke", "northwestern", "johns hopkins", "university of texas", "nyu",
			"university of pennsylvania", "upenn", "brown", "dartmouth", "vanderbilt",
		},
		AICompanies: []string{
			"openai", "anthropic", "deepmind", "hugging face", "scale ai", "cohere",
			"stability ai", "together ai", "replicate", "wandb", "weights & biases",
			"anyscale", "modal", "modal labs", "cerebras", "graphcore",
		},
		Tier1Companies: []string{
			"google", "microsoft", "apple", "meta", "facebook", "amazon", "netflix",
			"tesla", "nvidia", "openai", "anthropic", "deepmind", "spacex", "uber",
			"airbnb", "stripe",
		},
		Tier2Companies: []string{
			"twitter", "linkedin", "salesforce", "adobe", "intel", "oracle", "ibm",
			"cisco", "vmware", "databricks", "snowflake", "palantir", "twilio",
			"zoom", "dropbox", "slack", "shopify", "square",
		},
		TechIndicators: []string{
			"startup", "fintech", "saas", "tech company", "software company",
			"technology", "engineering", "developer tools",
		},
		ExactLocations: []string{"mountain view", "palo alto"},
		TargetLocations: []string{
			"mountain view", "san francisco", "palo alto", "menlo park", "redwood city",
			"cupertino", "sunnyvale", "santa clara", "sf", "bay area", "silicon valley",
			"san jose", "fremont", "oakland",
		},
		RemoteIndicators:  []string{"remote", "distributed", "worldwide", "anywhere", "global"},
		StateLocations:    []string{"california", "ca"},
		RegionalLocations: []string{"washington", "oregon", "wa", "or"},
		RequiredSkills: []string{
			"machine learning", "ml", "deep learning", "neural networks", "pytorch", "tensorflow",
			"python", "ai", "artificial intelligence", "nlp", "natural language processing",
			"transformers", "research", "algorithms", "statistics",
		},
		PreferredSkills: []string{
			"code generation", "llm", "large language models", "gpt", "bert",
			"distributed systems", "scala", "rust", "go", "java", "c++",
			"aws", "gcp", "kubernetes", "docker", "github", "git",
		},
		HighValueTerms: []string{
			"machine learning engineer", "ml engineer", "ai researcher", "research scientist",
			"deep learning", "neural networks", "llm", "transformer", "nlp engineer",
		},
	}
}

// Merge returns a copy of l where every non-empty list of override replaces the matching list.
func (l Lexicon) Merge(override Lexicon) Lexicon {
	pick := func(base, over []string) []string {
		if len(over) > 0 {
			return normalizeTerms(over)
		}
		return slices.Clone(base)
	}

	return Lexicon{
		EliteSchools:      pick(l.EliteSchools, override.EliteSchools),
		StrongSchools:     pick(l.StrongSchools, override.StrongSchools),
		AICompanies:       pick(l.AICompanies, override.AICompanies),
		Tier1Companies:    pick(l.Tier1Companies, override.Tier1Companies),
		Tier2Companies:    pick(l.Tier2Companies, override.Tier2Companies),
		TechIndicators:    pick(l.TechIndicators, override.TechIndicators),
		ExactLocations:    pick(l.ExactLocations, override.ExactLocations),
		TargetLocations:   pick(l.TargetLocations, override.TargetLocations),
		RemoteIndicators:  pick(l.RemoteIndicators, override.RemoteIndicators),
		StateLocations:    pick(l.StateLocations, override.StateLocations),
		RegionalLocations: pick(l.RegionalLocations, override.RegionalLocations),
		RequiredSkills:    pick(l.RequiredSkills, override.RequiredSkills),
		PreferredSkills:   pick(l.PreferredSkills, override.PreferredSkills),
		HighValueTerms:    pick(l.HighValueTerms, override.HighValueTerms),
	}
}

func (l Lexicon) clone() Lexicon {
	return Lexicon{}.Merge(l)
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
