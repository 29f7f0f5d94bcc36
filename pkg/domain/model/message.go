package model

import (
	"time"

	"github.com/pathlight-lab/pathlight/pkg/domain/types"
)

// Message is one entry of a conversation history
type Message struct {
	Role      types.MessageRole
	Content   string
	Timestamp time.Time
	// Context is set on assistant messages that were generated with
	// retrieval context attached.
	Context *RetrievalContext
}

// TruncateContent returns a copy of the message with content bounded to
// limit runes. Used when forwarding history to the remote endpoint to
// bound payload size.
func (m Message) TruncateContent(limit int) Message {
	runes := []rune(m.Content)
	if limit <= 0 || len(runes) <= limit {
		return m
	}
	m.Content = string(runes[:limit])
	return m
}
