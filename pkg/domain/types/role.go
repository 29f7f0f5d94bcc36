package types

import "github.com/m-mizutani/goerr/v2"

// MessageRole is the author role of a conversation message
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Validate checks if the MessageRole is one of the known roles
func (r MessageRole) Validate() error {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return nil
	default:
		return goerr.New("invalid message role", goerr.V("role", string(r)))
	}
}

// String returns the string representation of MessageRole
func (r MessageRole) String() string {
	return string(r)
}
