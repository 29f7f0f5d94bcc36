package generation

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/pathlight-lab/pathlight/pkg/domain/interfaces"
)

//go:embed prompt/system.md
var systemPrompt string

// Client is the gollem-backed implementation of the remote generation
// endpoint. One gollem session is held per conversation ID so the
// service keeps its own continuity across turns.
type Client struct {
	llm gollem.LLMClient

	mu       sync.Mutex
	sessions map[string]gollem.Session
}

var _ interfaces.GenerationClient = &Client{}

// New creates a generation client over the given LLM client
func New(llm gollem.LLMClient) (*Client, error) {
	if llm == nil {
		return nil, goerr.New("LLM client is required")
	}
	return &Client{
		llm:      llm,
		sessions: make(map[string]gollem.Session),
	}, nil
}

// Generate sends one turn to the language model. The returned
// ConversationID must be passed back on the next call to reuse the same
// session. A failed call drops the session so a later retry starts clean.
func (c *Client) Generate(ctx context.Context, req *interfaces.GenerationRequest) (*interfaces.GenerationResponse, error) {
	if req == nil || strings.TrimSpace(req.Message) == "" {
		return nil, goerr.New("generation request message is required")
	}

	convID := req.ConversationID
	if convID == "" {
		convID = uuid.Must(uuid.NewV7()).String()
	}

	session, fresh, err := c.session(ctx, convID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session", goerr.V("conversationID", convID))
	}

	prompt := buildPrompt(req, fresh)

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		c.dropSession(convID)
		return nil, goerr.Wrap(err, "failed to generate content", goerr.V("conversationID", convID))
	}
	if resp == nil || len(resp.Texts) == 0 || strings.TrimSpace(strings.Join(resp.Texts, "")) == "" {
		c.dropSession(convID)
		return nil, goerr.New("generation returned empty result", goerr.V("conversationID", convID))
	}

	return &interfaces.GenerationResponse{
		Success:        true,
		Response:       strings.Join(resp.Texts, "\n"),
		ConversationID: convID,
	}, nil
}

// session returns the session for the conversation, creating it when
// missing. The second return value reports whether it was just created.
func (c *Client) session(ctx context.Context, convID string) (gollem.Session, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.sessions[convID]; ok {
		return s, false, nil
	}

	s, err := c.llm.NewSession(ctx, gollem.WithSessionSystemPrompt(systemPrompt))
	if err != nil {
		return nil, false, err
	}
	c.sessions[convID] = s
	return s, true, nil
}

func (c *Client) dropSession(convID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, convID)
}

// buildPrompt renders the user message plus the retrieval context. Recent
// turns are included only on a fresh session; afterwards the session's own
// history covers them.
func buildPrompt(req *interfaces.GenerationRequest, fresh bool) string {
	var sb strings.Builder

	if fresh && len(req.RecentTurns) > 0 {
		sb.WriteString("## Recent conversation:\n\n")
		for _, turn := range req.RecentTurns {
			fmt.Fprintf(&sb, "- %s: %s\n", turn.Role, turn.Content)
		}
		sb.WriteString("\n")
	}

	if rctx := req.Retrieval; rctx != nil && rctx.ContextUsed {
		if len(rctx.Candidates) > 0 {
			sb.WriteString("## Matched opportunities:\n\n")
			for _, cand := range rctx.Candidates {
				opp := cand.Opportunity
				fmt.Fprintf(&sb, "### %s\n", opp.Title)
				fmt.Fprintf(&sb, "- Provider: %s\n", opp.Provider)
				if opp.Category != "" {
					fmt.Fprintf(&sb, "- Category: %s\n", opp.Category)
				}
				fmt.Fprintf(&sb, "- Deadline: %s\n", opp.Deadline)
				if opp.Description != "" {
					fmt.Fprintf(&sb, "- Summary: %s\n", opp.Description)
				}
				sb.WriteString("\n")
			}
		}

		if p := rctx.Profile; p != nil {
			sb.WriteString("## User profile:\n\n")
			if len(p.Interests) > 0 {
				fmt.Fprintf(&sb, "- Interests: %s\n", strings.Join(p.Interests, ", "))
			}
			if p.EducationLevel != "" {
				fmt.Fprintf(&sb, "- Education level: %s\n", p.EducationLevel)
			}
			if len(p.Skills) > 0 {
				fmt.Fprintf(&sb, "- Skills: %s\n", strings.Join(p.Skills, ", "))
			}
			if len(p.Locations) > 0 {
				fmt.Fprintf(&sb, "- Preferred locations: %s\n", strings.Join(p.Locations, ", "))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("## User message:\n\n")
	sb.WriteString(req.Message)
	sb.WriteString("\n")

	return sb.String()
}
