package scoring

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// CategoryRule maps a domain category to the keywords that signal it.
// When the query mentions one of the keywords and the record belongs to
// the category, Bonus is added to the score.
type CategoryRule struct {
	Name     string   `toml:"name"`
	Keywords []string `toml:"keywords"`
	Bonus    float64  `toml:"bonus"`
}

// Config holds every keyword table, weight, and threshold of the scoring
// heuristic as data. Duplicating these across code paths is what the
// engine exists to avoid.
type Config struct {
	// Selection policy
	MinScore float64 `toml:"min_score"`
	TopK     int     `toml:"top_k"`

	// Query-intent boost
	DomainKeywords      []string `toml:"domain_keywords"`
	DomainKeywordWeight float64  `toml:"domain_keyword_weight"`
	DomainKeywordCap    float64  `toml:"domain_keyword_cap"`

	// Token overlap
	StopWords      []string `toml:"stop_words"`
	TitleWeight    float64  `toml:"title_weight"`
	ProviderWeight float64  `toml:"provider_weight"`
	TextWeight     float64  `toml:"text_weight"`

	// Profile matching
	InterestWeight     float64 `toml:"interest_weight"`
	InterestWordWeight float64 `toml:"interest_word_weight"`
	EducationWeight    float64 `toml:"education_weight"`
	SkillWeight        float64 `toml:"skill_weight"`
	LocationWeight     float64 `toml:"location_weight"`

	// EducationEquivalents maps a profile education level to terms in
	// record text that count as a match for it.
	EducationEquivalents map[string][]string `toml:"education_equivalents"`

	// Deadline urgency
	DeadlineMinBonus    float64 `toml:"deadline_min_bonus"`
	DeadlineMaxBonus    float64 `toml:"deadline_max_bonus"`
	DeadlineHorizonDays int     `toml:"deadline_horizon_days"`

	Categories []CategoryRule `toml:"category"`
}

// DefaultConfig returns the built-in scoring tables
func DefaultConfig() *Config {
	return &Config{
		MinScore: 2,
		TopK:     5,

		DomainKeywords: []string{
			"scholarship", "funding", "grant", "apply",
			"fellowship", "internship", "bursary",
		},
		DomainKeywordWeight: 3,
		DomainKeywordCap:    9,

		StopWords: []string{
			"the", "and", "for", "are", "but", "not", "you", "all",
			"can", "had", "her", "was", "one", "our", "out", "has",
			"have", "this", "that", "with", "they", "what", "when",
			"how", "who", "will", "would", "there", "their", "about",
			"which", "need", "want", "looking",
		},
		TitleWeight:    5,
		ProviderWeight: 3,
		TextWeight:     2,

		InterestWeight:     6,
		InterestWordWeight: 2,
		EducationWeight:    4,
		SkillWeight:        3,
		LocationWeight:     2,

		EducationEquivalents: map[string][]string{
			"bachelor":      {"undergraduate", "bachelors"},
			"master":        {"graduate", "masters", "postgraduate"},
			"doctoral":      {"phd", "doctorate", "postdoctoral"},
			"high school":   {"secondary", "pre-university"},
			"undergraduate": {"bachelor", "bachelors"},
			"graduate":      {"master", "masters", "postgraduate"},
		},

		DeadlineMinBonus:    1,
		DeadlineMaxBonus:    5,
		DeadlineHorizonDays: 365,

		Categories: []CategoryRule{
			{
				Name:     "technology",
				Keywords: []string{"tech", "technology", "software", "coding", "programming", "computer", "engineering", "data"},
				Bonus:    4,
			},
			{
				Name:     "business",
				Keywords: []string{"business", "entrepreneur", "startup", "management", "finance", "marketing"},
				Bonus:    3,
			},
			{
				Name:     "health",
				Keywords: []string{"health", "medical", "medicine", "nursing", "healthcare"},
				Bonus:    3,
			},
			{
				Name:     "education",
				Keywords: []string{"education", "teaching", "academic", "study", "degree", "university"},
				Bonus:    4,
			},
			{
				Name:     "arts",
				Keywords: []string{"art", "arts", "design", "music", "creative", "writing"},
				Bonus:    3,
			},
		},
	}
}

// LoadConfig reads a TOML scoring configuration. Fields absent from the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read scoring config", goerr.V("path", path))
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse scoring config", goerr.V("path", path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid scoring config", goerr.V("path", path))
	}

	return cfg, nil
}

// Validate checks the configuration for values that would break the
// selection policy.
func (c *Config) Validate() error {
	if c.TopK <= 0 {
		return goerr.New("top_k must be positive", goerr.V("top_k", c.TopK))
	}
	if c.MinScore < 0 {
		return goerr.New("min_score must not be negative", goerr.V("min_score", c.MinScore))
	}
	if c.DeadlineMaxBonus < c.DeadlineMinBonus {
		return goerr.New("deadline_max_bonus must be >= deadline_min_bonus")
	}
	if c.DeadlineHorizonDays <= 0 {
		return goerr.New("deadline_horizon_days must be positive")
	}
	for _, rule := range c.Categories {
		if rule.Name == "" {
			return goerr.New("category rule name is required")
		}
		if len(rule.Keywords) == 0 {
			return goerr.New("category rule needs at least one keyword", goerr.V("category", rule.Name))
		}
	}
	return nil
}
