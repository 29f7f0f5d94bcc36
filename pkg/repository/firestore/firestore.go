package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pathlight-lab/pathlight/pkg/domain/interfaces"
)

// Firestore is the Firestore-backed implementation of interfaces.Repository
type Firestore struct {
	client      *firestore.Client
	opportunity *opportunityRepository
	profile     *profileRepository
	chatLog     *chatLogRepository
}

var _ interfaces.Repository = &Firestore{}

// New creates a Firestore repository. An empty databaseID selects the
// default database of the project.
func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID == "" {
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	return &Firestore{
		client:      client,
		opportunity: newOpportunityRepository(client),
		profile:     newProfileRepository(client),
		chatLog:     newChatLogRepository(client),
	}, nil
}

func (f *Firestore) Opportunity() interfaces.OpportunityRepository {
	return f.opportunity
}

func (f *Firestore) Profile() interfaces.ProfileRepository {
	return f.profile
}

func (f *Firestore) ChatLog() interfaces.ChatLogRepository {
	return f.chatLog
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
