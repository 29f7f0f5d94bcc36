package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pathlight-lab/pathlight/pkg/domain/model"
	"github.com/pathlight-lab/pathlight/pkg/domain/types"
	"google.golang.org/api/iterator"
)

const chatLogCollection = "chat_logs"

// chatLogDoc is the Firestore document representation of model.ChatLog
type chatLogDoc struct {
	ID           types.ChatLogID       `firestore:"ID"`
	SessionID    types.SessionID       `firestore:"SessionID"`
	UserMessage  string                `firestore:"UserMessage"`
	Response     string                `firestore:"Response"`
	Source       types.ResponseSource  `firestore:"Source"`
	CandidateIDs []types.OpportunityID `firestore:"CandidateIDs"`
	LatencyMilli int64                 `firestore:"LatencyMilli"`
	CreatedAt    time.Time             `firestore:"CreatedAt"`
}

type chatLogRepository struct {
	client *firestore.Client
}

func newChatLogRepository(client *firestore.Client) *chatLogRepository {
	return &chatLogRepository{client: client}
}

func (r *chatLogRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(chatLogCollection)
}

func (r *chatLogRepository) Create(ctx context.Context, log *model.ChatLog) (*model.ChatLog, error) {
	if log.ID == "" {
		log.ID = types.NewChatLogID()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	doc := &chatLogDoc{
		ID:           log.ID,
		SessionID:    log.SessionID,
		UserMessage:  log.UserMessage,
		Response:     log.Response,
		Source:       log.Source,
		CandidateIDs: log.CandidateIDs,
		LatencyMilli: log.LatencyMilli,
		CreatedAt:    log.CreatedAt,
	}

	if _, err := r.collection().Doc(string(log.ID)).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create chat log", goerr.V("id", log.ID))
	}

	return log, nil
}

func (r *chatLogRepository) ListBySession(ctx context.Context, sessionID types.SessionID, limit int) ([]*model.ChatLog, error) {
	iter := r.collection().
		Where("SessionID", "==", string(sessionID)).
		OrderBy("CreatedAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	logs := make([]*model.ChatLog, 0, limit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate chat logs", goerr.V("sessionID", sessionID))
		}

		var d chatLogDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal chat log")
		}

		logs = append(logs, &model.ChatLog{
			ID:           d.ID,
			SessionID:    d.SessionID,
			UserMessage:  d.UserMessage,
			Response:     d.Response,
			Source:       d.Source,
			CandidateIDs: d.CandidateIDs,
			LatencyMilli: d.LatencyMilli,
			CreatedAt:    d.CreatedAt,
		})
	}

	return logs, nil
}
