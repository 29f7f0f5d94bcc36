package interfaces

import (
	"context"

	"github.com/pathlight-lab/pathlight/pkg/domain/model"
	"github.com/pathlight-lab/pathlight/pkg/domain/types"
)

// ChatLogRepository persists completed conversation turns
type ChatLogRepository interface {
	Create(ctx context.Context, log *model.ChatLog) (*model.ChatLog, error)
	// ListBySession returns up to limit logs for a session, newest first
	ListBySession(ctx context.Context, sessionID types.SessionID, limit int) ([]*model.ChatLog, error)
}
