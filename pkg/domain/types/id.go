package types

import (
	"github.com/google/uuid"
)

// SessionID identifies a conversation session. Time-ordered (UUIDv7)
// so that session records sort naturally by creation.
type SessionID string

// NewSessionID generates a new UUIDv7 SessionID
func NewSessionID() SessionID {
	return SessionID(uuid.Must(uuid.NewV7()).String())
}

// String returns the string representation of SessionID
func (s SessionID) String() string {
	return string(s)
}

// OpportunityID is a UUID-based identifier for an opportunity record
type OpportunityID string

// NewOpportunityID generates a new UUID v4 OpportunityID
func NewOpportunityID() OpportunityID {
	return OpportunityID(uuid.New().String())
}

// String returns the string representation of OpportunityID
func (o OpportunityID) String() string {
	return string(o)
}

// ChatLogID is a UUID-based identifier for a persisted chat turn
type ChatLogID string

// NewChatLogID generates a new UUID v4 ChatLogID
func NewChatLogID() ChatLogID {
	return ChatLogID(uuid.New().String())
}

// String returns the string representation of ChatLogID
func (c ChatLogID) String() string {
	return string(c)
}
