package model

import (
	"github.com/pathlight-lab/pathlight/pkg/domain/types"
)

// Action is a suggested follow-up presented to the UI layer
type Action struct {
	Label   string           `json:"label"`
	Kind    types.ActionKind `json:"kind"`
	Payload map[string]any   `json:"payload,omitempty"`
}

// ResponseEnvelope is the engine's answer for one turn. It is never nil
// and always carries non-empty content; the Source tag records which
// pipeline tier produced it.
type ResponseEnvelope struct {
	Content string               `json:"content"`
	Actions []Action             `json:"actions"`
	Context *RetrievalContext    `json:"-"`
	Source  types.ResponseSource `json:"source"`
}
