package model

import (
	"time"

	"github.com/pathlight-lab/pathlight/pkg/domain/types"
)

// ChatLog is the persisted record of one completed conversation turn.
// Written asynchronously after the envelope is returned, so it never
// adds latency to a turn.
type ChatLog struct {
	ID           types.ChatLogID
	SessionID    types.SessionID
	UserMessage  string
	Response     string
	Source       types.ResponseSource
	CandidateIDs []types.OpportunityID
	LatencyMilli int64
	CreatedAt    time.Time
}
