package interfaces

import (
	"context"

	"github.com/pathlight-lab/pathlight/pkg/domain/model"
	"github.com/pathlight-lab/pathlight/pkg/domain/types"
)

// OpportunityRepository provides read access to opportunity records plus
// the write path used by the seed command and tests. ListRecent must
// tolerate empty results.
type OpportunityRepository interface {
	// ListRecent returns up to limit records ordered by creation recency
	ListRecent(ctx context.Context, limit int) ([]*model.Opportunity, error)
	Get(ctx context.Context, id types.OpportunityID) (*model.Opportunity, error)
	Put(ctx context.Context, opp *model.Opportunity) (*model.Opportunity, error)
}
