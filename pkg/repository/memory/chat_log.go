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

type chatLogRepository struct {
	mu   sync.RWMutex
	logs map[types.ChatLogID]*model.ChatLog
}

func newChatLogRepository() *chatLogRepository {
	return &chatLogRepository{
		logs: make(map[types.ChatLogID]*model.ChatLog),
	}
}

func copyChatLog(l *model.ChatLog) *model.ChatLog {
	copied := &model.ChatLog{
		ID:           l.ID,
		SessionID:    l.SessionID,
		UserMessage:  l.UserMessage,
		Response:     l.Response,
		Source:       l.Source,
		LatencyMilli: l.LatencyMilli,
		CreatedAt:    l.CreatedAt,
	}
	if l.CandidateIDs != nil {
		copied.CandidateIDs = append([]types.OpportunityID{}, l.CandidateIDs...)
	}
	return copied
}

func (r *chatLogRepository) Create(ctx context.Context, log *model.ChatLog) (*model.ChatLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyChatLog(log)
	if created.ID == "" {
		created.ID = types.NewChatLogID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	if _, exists := r.logs[created.ID]; exists {
		return nil, goerr.New("chat log already exists", goerr.V("id", created.ID))
	}

	r.logs[created.ID] = created
	return copyChatLog(created), nil
}

func (r *chatLogRepository) ListBySession(ctx context.Context, sessionID types.SessionID, limit int) ([]*model.ChatLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.ChatLog
	for _, l := range r.logs {
		if l.SessionID == sessionID {
			result = append(result, copyChatLog(l))
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
