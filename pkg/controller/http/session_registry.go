package http

import (
	"sync"

	"github.com/pathlight-lab/pathlight/pkg/domain/model"
	"github.com/pathlight-lab/pathlight/pkg/domain/types"
)

// sessionEntry pairs a conversation session with its single-flight guard.
// The engine assumes one in-flight turn per session; the guard enforces
// that at the HTTP boundary.
type sessionEntry struct {
	mu      sync.Mutex
	session *model.ConversationSession
}

// sessionRegistry holds the in-process sessions keyed by session ID
type sessionRegistry struct {
	mu      sync.Mutex
	entries map[types.SessionID]*sessionEntry
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{
		entries: make(map[types.SessionID]*sessionEntry),
	}
}

// getOrCreate returns the entry for the given ID, creating a fresh
// session when the ID is empty or unknown.
func (r *sessionRegistry) getOrCreate(id types.SessionID, systemPrompt string) *sessionEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id != "" {
		if entry, ok := r.entries[id]; ok {
			return entry
		}
	}

	session := model.NewConversationSession(systemPrompt)
	entry := &sessionEntry{session: session}
	r.entries[session.ID] = entry
	return entry
}

// get returns the entry for the given ID, or nil
func (r *sessionRegistry) get(id types.SessionID) *sessionEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[id]
}
