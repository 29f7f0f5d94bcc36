package types

import "github.com/m-mizutani/goerr/v2"

// ActionKind is the category of a suggested follow-up action
type ActionKind string

const (
	ActionKindOpportunity ActionKind = "opportunity"
	ActionKindCommunity   ActionKind = "community"
	ActionKindExpert      ActionKind = "expert"
	ActionKindLink        ActionKind = "link"
)

// Validate checks if the ActionKind is one of the known kinds
func (a ActionKind) Validate() error {
	switch a {
	case ActionKindOpportunity, ActionKindCommunity, ActionKindExpert, ActionKindLink:
		return nil
	default:
		return goerr.New("invalid action kind", goerr.V("kind", string(a)))
	}
}

// String returns the string representation of ActionKind
func (a ActionKind) String() string {
	return string(a)
}
