package model

import (
	"time"

	"github.com/pathlight-lab/pathlight/pkg/domain/types"
)

const (
	// HistoryCap bounds the session history: 1 system message + 20 turns
	HistoryCap = 21
	// TurnContentLimit bounds message content forwarded to the remote
	// endpoint, in runes
	TurnContentLimit = 500
)

// DefaultSystemPrompt seeds every new session history
const DefaultSystemPrompt = "You are Pathlight, a career coaching assistant. " +
	"Help the user discover opportunities, plan their career, and build skills."

// ConversationSession owns the ordered message history and identity of
// one conversation. It is constructed per UI session and owned by a
// single caller; it must not be mutated from two in-flight turns.
type ConversationSession struct {
	ID types.SessionID
	// RemoteConversationID, once assigned by the remote service, is
	// reused on subsequent calls to preserve server-side continuity.
	RemoteConversationID string
	History              []Message

	systemPrompt   string
	remoteFailures int
}

// NewConversationSession creates a session whose history starts with the
// given system prompt. An empty prompt falls back to DefaultSystemPrompt.
func NewConversationSession(systemPrompt string) *ConversationSession {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &ConversationSession{
		ID:           types.NewSessionID(),
		systemPrompt: systemPrompt,
		History: []Message{{
			Role:      types.RoleSystem,
			Content:   systemPrompt,
			Timestamp: time.Now().UTC(),
		}},
	}
}

// AppendUser appends a user message and applies the eviction policy
func (s *ConversationSession) AppendUser(text string) {
	s.append(Message{
		Role:      types.RoleUser,
		Content:   text,
		Timestamp: time.Now().UTC(),
	})
}

// AppendAssistant appends an assistant message, optionally carrying the
// retrieval context used to generate it, and applies the eviction policy.
func (s *ConversationSession) AppendAssistant(text string, rctx *RetrievalContext) {
	s.append(Message{
		Role:      types.RoleAssistant,
		Content:   text,
		Timestamp: time.Now().UTC(),
		Context:   rctx,
	})
}

// append keeps History[0] (the system message) and at most HistoryCap-1
// of the most recent non-system messages.
func (s *ConversationSession) append(msg Message) {
	s.History = append(s.History, msg)
	if len(s.History) > HistoryCap {
		overflow := len(s.History) - HistoryCap
		trimmed := make([]Message, 0, HistoryCap)
		trimmed = append(trimmed, s.History[0])
		trimmed = append(trimmed, s.History[1+overflow:]...)
		s.History = trimmed
	}
}

// RecentTurns returns the last n non-system messages with content
// truncated to TurnContentLimit runes.
func (s *ConversationSession) RecentTurns(n int) []Message {
	if n <= 0 {
		return []Message{}
	}

	var turns []Message
	for _, msg := range s.History {
		if msg.Role == types.RoleSystem {
			continue
		}
		turns = append(turns, msg)
	}
	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}

	result := make([]Message, 0, len(turns))
	for _, msg := range turns {
		result = append(result, msg.TruncateContent(TurnContentLimit))
	}
	return result
}

// Reset restores the session to only the original system message and
// clears the remote conversation identifier and failure counter.
func (s *ConversationSession) Reset() {
	s.History = []Message{{
		Role:      types.RoleSystem,
		Content:   s.systemPrompt,
		Timestamp: time.Now().UTC(),
	}}
	s.RemoteConversationID = ""
	s.remoteFailures = 0
}

// RemoteFailures returns the consecutive remote failure count
func (s *ConversationSession) RemoteFailures() int {
	return s.remoteFailures
}

// RecordRemoteFailure increments the consecutive remote failure count
func (s *ConversationSession) RecordRemoteFailure() {
	s.remoteFailures++
}

// ResetRemoteFailures clears the consecutive remote failure count.
// Called on any successful remote generation.
func (s *ConversationSession) ResetRemoteFailures() {
	s.remoteFailures = 0
}
