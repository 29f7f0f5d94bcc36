package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pathlight-lab/pathlight/pkg/domain/model"
	"github.com/pathlight-lab/pathlight/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const opportunityCollection = "opportunities"

// opportunityDoc is the Firestore document representation of model.Opportunity
type opportunityDoc struct {
	ID          types.OpportunityID `firestore:"ID"`
	Title       string              `firestore:"Title"`
	Provider    string              `firestore:"Provider"`
	Description string              `firestore:"Description"`
	Category    string              `firestore:"Category"`
	Tags        []string            `firestore:"Tags"`
	Deadline    string              `firestore:"Deadline"`
	CreatedAt   time.Time           `firestore:"CreatedAt"`
	UpdatedAt   time.Time           `firestore:"UpdatedAt"`
}

func toOpportunityDoc(o *model.Opportunity) *opportunityDoc {
	return &opportunityDoc{
		ID:          o.ID,
		Title:       o.Title,
		Provider:    o.Provider,
		Description: o.Description,
		Category:    o.Category,
		Tags:        o.Tags,
		Deadline:    o.Deadline,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func docToOpportunity(doc *firestore.DocumentSnapshot) (*model.Opportunity, error) {
	var d opportunityDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	opp := &model.Opportunity{
		ID:          d.ID,
		Title:       d.Title,
		Provider:    d.Provider,
		Description: d.Description,
		Category:    d.Category,
		Tags:        d.Tags,
		Deadline:    d.Deadline,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	opp.Normalize()
	return opp, nil
}

type opportunityRepository struct {
	client *firestore.Client
}

func newOpportunityRepository(client *firestore.Client) *opportunityRepository {
	return &opportunityRepository{client: client}
}

func (r *opportunityRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(opportunityCollection)
}

func (r *opportunityRepository) ListRecent(ctx context.Context, limit int) ([]*model.Opportunity, error) {
	iter := r.collection().
		OrderBy("CreatedAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	opportunities := make([]*model.Opportunity, 0, limit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate opportunities")
		}

		opp, err := docToOpportunity(doc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal opportunity")
		}
		opportunities = append(opportunities, opp)
	}

	return opportunities, nil
}

func (r *opportunityRepository) Get(ctx context.Context, id types.OpportunityID) (*model.Opportunity, error) {
	doc, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "opportunity not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get opportunity", goerr.V("id", id))
	}

	opp, err := docToOpportunity(doc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal opportunity", goerr.V("id", id))
	}

	return opp, nil
}

func (r *opportunityRepository) Put(ctx context.Context, opp *model.Opportunity) (*model.Opportunity, error) {
	now := time.Now().UTC()
	if opp.ID == "" {
		opp.ID = types.NewOpportunityID()
	}
	if opp.CreatedAt.IsZero() {
		opp.CreatedAt = now
	}
	opp.UpdatedAt = now
	opp.Normalize()

	if _, err := r.collection().Doc(string(opp.ID)).Set(ctx, toOpportunityDoc(opp)); err != nil {
		return nil, goerr.Wrap(err, "failed to put opportunity", goerr.V("id", opp.ID))
	}

	return opp, nil
}
