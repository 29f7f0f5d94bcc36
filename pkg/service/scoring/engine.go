package scoring

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/pathlight-lab/pathlight/pkg/domain/model"
)

// Engine scores opportunity records against a query and a profile using
// a weighted additive heuristic. Score is pure: no I/O, no side effects,
// and deterministic for a fixed clock.
type Engine struct {
	cfg       *Config
	stopWords map[string]struct{}
	now       func() time.Time
}

// Option is a functional option for Engine construction
type Option func(*Engine)

// WithNow replaces the clock used for deadline urgency. Tests use this
// to keep scores deterministic.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates a scoring engine. A nil config selects DefaultConfig.
func New(cfg *Config, opts ...Option) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	stop := make(map[string]struct{}, len(cfg.StopWords))
	for _, w := range cfg.StopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}

	e := &Engine{
		cfg:       cfg,
		stopWords: stop,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine's scoring configuration
func (e *Engine) Config() *Config {
	return e.cfg
}

// Score computes the relevance of a record for a query and an optional
// profile. The result is floored at 0.
func (e *Engine) Score(rec *model.Opportunity, query string, profile *model.Profile) float64 {
	queryLower := strings.ToLower(query)
	text := rec.SearchableText()
	titleLower := strings.ToLower(rec.Title)
	providerLower := strings.ToLower(rec.Provider)

	// Base score: recency ordering is already enforced by the caller's
	// query, so every candidate starts equal.
	score := 1.0

	score += e.domainKeywordBoost(queryLower)
	score += e.tokenOverlap(queryLower, titleLower, providerLower, text)
	score += e.profileMatch(text, profile)
	score += e.deadlineUrgency(rec)
	score += e.categoryBonus(queryLower, rec, text)

	if score < 0 {
		return 0
	}
	return score
}

// Rank scores all records, discards those at or below MinScore, sorts
// descending, and returns the top K. Ties keep the original store order
// so repeated identical queries are deterministic.
func (e *Engine) Rank(records []*model.Opportunity, query string, profile *model.Profile) []model.ScoredOpportunity {
	scored := make([]model.ScoredOpportunity, 0, len(records))
	for _, rec := range records {
		s := e.Score(rec, query, profile)
		if s <= e.cfg.MinScore {
			continue
		}
		scored = append(scored, model.ScoredOpportunity{Opportunity: rec, Score: s})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > e.cfg.TopK {
		scored = scored[:e.cfg.TopK]
	}
	return scored
}

func (e *Engine) domainKeywordBoost(queryLower string) float64 {
	var boost float64
	for _, kw := range e.cfg.DomainKeywords {
		if strings.Contains(queryLower, kw) {
			boost += e.cfg.DomainKeywordWeight
		}
	}
	if e.cfg.DomainKeywordCap > 0 && boost > e.cfg.DomainKeywordCap {
		boost = e.cfg.DomainKeywordCap
	}
	return boost
}

func (e *Engine) tokenOverlap(queryLower, titleLower, providerLower, text string) float64 {
	var score float64
	for _, token := range e.tokenize(queryLower) {
		switch {
		case strings.Contains(titleLower, token):
			score += e.cfg.TitleWeight
		case strings.Contains(providerLower, token):
			score += e.cfg.ProviderWeight
		case strings.Contains(text, token):
			score += e.cfg.TextWeight
		}
	}
	return score
}

func (e *Engine) profileMatch(text string, profile *model.Profile) float64 {
	if profile == nil {
		return 0
	}

	var score float64

	for _, interest := range profile.Interests {
		interestLower := strings.ToLower(strings.TrimSpace(interest))
		if interestLower == "" {
			continue
		}
		if strings.Contains(text, interestLower) {
			score += e.cfg.InterestWeight
		}
		words := strings.Fields(interestLower)
		if len(words) > 1 {
			for _, w := range words {
				if len(w) > 3 && strings.Contains(text, w) {
					score += e.cfg.InterestWordWeight
				}
			}
		}
	}

	if level := strings.ToLower(strings.TrimSpace(profile.EducationLevel)); level != "" {
		matched := strings.Contains(text, level)
		if !matched {
			for _, equiv := range e.cfg.EducationEquivalents[level] {
				if strings.Contains(text, strings.ToLower(equiv)) {
					matched = true
					break
				}
			}
		}
		if matched {
			score += e.cfg.EducationWeight
		}
	}

	for _, skill := range profile.Skills {
		skillLower := strings.ToLower(strings.TrimSpace(skill))
		if skillLower != "" && strings.Contains(text, skillLower) {
			score += e.cfg.SkillWeight
		}
	}

	for _, loc := range profile.Locations {
		locLower := strings.ToLower(strings.TrimSpace(loc))
		if locLower != "" && strings.Contains(text, locLower) {
			score += e.cfg.LocationWeight
		}
	}

	return score
}

// deadlineUrgency gives closer deadlines a higher bonus, linearly scaled
// between min and max over the horizon. Missing or unparseable deadlines
// contribute 0.
func (e *Engine) deadlineUrgency(rec *model.Opportunity) float64 {
	deadline, ok := rec.DeadlineTime()
	if !ok {
		return 0
	}

	days := deadline.Sub(e.now()).Hours() / 24
	horizon := float64(e.cfg.DeadlineHorizonDays)
	if days < 0 || days > horizon {
		return 0
	}

	span := e.cfg.DeadlineMaxBonus - e.cfg.DeadlineMinBonus
	bonus := e.cfg.DeadlineMaxBonus - span*(days/horizon)
	return bonus
}

func (e *Engine) categoryBonus(queryLower string, rec *model.Opportunity, text string) float64 {
	categoryLower := strings.ToLower(rec.Category)

	var bonus float64
	for _, rule := range e.cfg.Categories {
		queryMentions := false
		for _, kw := range rule.Keywords {
			if strings.Contains(queryLower, kw) {
				queryMentions = true
				break
			}
		}
		if !queryMentions {
			continue
		}

		if categoryLower == rule.Name {
			bonus += rule.Bonus
			continue
		}
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				bonus += rule.Bonus
				break
			}
		}
	}
	return bonus
}

// tokenize splits the query into lowercase words longer than 2
// characters, excluding stop words.
func (e *Engine) tokenize(queryLower string) []string {
	fields := strings.FieldsFunc(queryLower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) <= 2 {
			continue
		}
		if _, ok := e.stopWords[f]; ok {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
