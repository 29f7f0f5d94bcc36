package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pathlight-lab/pathlight/pkg/domain/model"
	"github.com/pathlight-lab/pathlight/pkg/domain/types"
)

type opportunityRepository struct {
	mu sync.RWMutex
	// order preserves insertion order so ListRecent ties on CreatedAt
	// resolve deterministically
	order         []types.OpportunityID
	opportunities map[types.OpportunityID]*model.Opportunity
}

func newOpportunityRepository() *opportunityRepository {
	return &opportunityRepository{
		opportunities: make(map[types.OpportunityID]*model.Opportunity),
	}
}

// copyOpportunity creates a deep copy of an opportunity record
func copyOpportunity(o *model.Opportunity) *model.Opportunity {
	copied := &model.Opportunity{
		ID:          o.ID,
		Title:       o.Title,
		Provider:    o.Provider,
		Description: o.Description,
		Category:    o.Category,
		Deadline:    o.Deadline,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	if o.Tags != nil {
		copied.Tags = append([]string{}, o.Tags...)
	}
	return copied
}

func (r *opportunityRepository) ListRecent(ctx context.Context, limit int) ([]*model.Opportunity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*model.Opportunity, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, copyOpportunity(r.opportunities[id]))
	}

	// Newest first; insertion order breaks CreatedAt ties
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *opportunityRepository) Get(ctx context.Context, id types.OpportunityID) (*model.Opportunity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	opp, exists := r.opportunities[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "opportunity not found", goerr.V("id", id))
	}
	return copyOpportunity(opp), nil
}

func (r *opportunityRepository) Put(ctx context.Context, opp *model.Opportunity) (*model.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := copyOpportunity(opp)
	if stored.ID == "" {
		stored.ID = types.NewOpportunityID()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	stored.Normalize()

	if _, exists := r.opportunities[stored.ID]; !exists {
		r.order = append(r.order, stored.ID)
	}
	r.opportunities[stored.ID] = stored

	return copyOpportunity(stored), nil
}
