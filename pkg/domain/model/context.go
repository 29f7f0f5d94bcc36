package model

// ScoredOpportunity pairs a record with its relevance score.
// Ephemeral: recomputed on every retrieval, never persisted.
type ScoredOpportunity struct {
	Opportunity *Opportunity
	Score       float64
}

// RetrievalContext is the bounded bundle of top-ranked records, profile,
// and recent turns assembled for one conversation turn.
type RetrievalContext struct {
	// Candidates is the top-K scored records, descending by score
	Candidates []ScoredOpportunity
	// Profile is nil when no personalization is available
	Profile *Profile
	// RecentTurns is the trimmed non-system history at assembly time
	RecentTurns []Message
	// ContextUsed is true iff at least one candidate was selected or a
	// profile was found
	ContextUsed bool
}

// EmptyRetrievalContext returns a context carrying no candidates and no
// profile. Retrieval failure and anonymous use both collapse to this.
func EmptyRetrievalContext() *RetrievalContext {
	return &RetrievalContext{
		Candidates:  []ScoredOpportunity{},
		ContextUsed: false,
	}
}
