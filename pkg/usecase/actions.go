package usecase

import (
	"strings"

	"github.com/pathlight-lab/pathlight/pkg/domain/model"
	"github.com/pathlight-lab/pathlight/pkg/domain/types"
)

// maxActions caps the suggested follow-up actions per envelope
const maxActions = 4

// topicAction is a keyword-triggered suggestion, checked in order
type topicAction struct {
	keyword string
	action  model.Action
}

var topicActions = []topicAction{
	{"scholarship", model.Action{Label: "Browse scholarships", Kind: types.ActionKindLink, Payload: map[string]any{"target": "scholarships"}}},
	{"career", model.Action{Label: "Explore career paths", Kind: types.ActionKindLink, Payload: map[string]any{"target": "careers"}}},
	{"skill", model.Action{Label: "Find skill-building resources", Kind: types.ActionKindLink, Payload: map[string]any{"target": "skills"}}},
	{"roadmap", model.Action{Label: "Open your roadmap", Kind: types.ActionKindLink, Payload: map[string]any{"target": "roadmap"}}},
}

// DeriveActions derives follow-up UI actions from the chosen response and
// context. Pure and deterministic; capped at maxActions. The final slot
// always carries a community or help action.
func DeriveActions(query, response string, rctx *model.RetrievalContext) []model.Action {
	actions := make([]model.Action, 0, maxActions)

	// Highest priority: the matched records themselves
	if rctx != nil && len(rctx.Candidates) > 0 {
		ids := make([]string, 0, len(rctx.Candidates))
		for _, cand := range rctx.Candidates {
			ids = append(ids, cand.Opportunity.ID.String())
		}
		actions = append(actions, model.Action{
			Label:   "View matched opportunities",
			Kind:    types.ActionKindOpportunity,
			Payload: map[string]any{"opportunityIds": ids},
		})
	}

	// Topic keywords from either the query or the response
	combined := strings.ToLower(query + " " + response)
	for _, ta := range topicActions {
		if len(actions) >= maxActions-1 {
			break
		}
		if strings.Contains(combined, ta.keyword) {
			actions = append(actions, ta.action)
		}
	}

	// Guaranteed final slot
	actions = append(actions, model.Action{
		Label: "Join the community",
		Kind:  types.ActionKindCommunity,
	})

	return actions
}
