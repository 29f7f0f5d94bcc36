package interfaces

import (
	"context"

	"github.com/pathlight-lab/pathlight/pkg/domain/model"
)

// GenerationRequest is the contract of the remote generation endpoint
type GenerationRequest struct {
	Message string
	// ConversationID is empty on the first call of a conversation; the
	// value returned by the service must be reused afterwards.
	ConversationID string
	RecentTurns    []model.Message
	Retrieval      *model.RetrievalContext
}

// GenerationResponse is the remote endpoint's answer. A response with
// Success=false is treated the same as a transport failure.
type GenerationResponse struct {
	Success        bool
	Response       string
	ConversationID string
}

// GenerationClient invokes the remote language-generation service.
// Any error, timeout, or non-success response triggers the local
// fallback chain in the pipeline.
type GenerationClient interface {
	Generate(ctx context.Context, req *GenerationRequest) (*GenerationResponse, error)
}
