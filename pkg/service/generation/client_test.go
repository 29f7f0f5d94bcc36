package generation_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
	"github.com/pathlight-lab/pathlight/pkg/domain/interfaces"
	"github.com/pathlight-lab/pathlight/pkg/domain/model"
	"github.com/pathlight-lab/pathlight/pkg/domain/types"
	"github.com/pathlight-lab/pathlight/pkg/service/generation"
)

// mockLLMSession is a mock gollem Session for testing
type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{
		Texts: []string{"Here is some career advice."},
	}, nil
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.GenerateContent(ctx, input...)
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return s.GenerateStream(ctx, input...)
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	newSessionFn    func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
	newSessionCount int
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	c.newSessionCount++
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

func promptText(input []gollem.Input) string {
	var sb strings.Builder
	for _, in := range input {
		if text, ok := in.(gollem.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}

func TestClientGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("requires an LLM client", func(t *testing.T) {
		_, err := generation.New(nil)
		gt.Error(t, err)
	})

	t.Run("returns response with conversation ID", func(t *testing.T) {
		client, err := generation.New(&mockLLMClient{})
		gt.NoError(t, err).Required()

		resp, err := client.Generate(ctx, &interfaces.GenerationRequest{
			Message: "I need a scholarship",
		})
		gt.NoError(t, err).Required()

		gt.Bool(t, resp.Success).True()
		gt.Value(t, resp.Response).Equal("Here is some career advice.")
		gt.String(t, resp.ConversationID).NotEqual("")
	})

	t.Run("rejects empty message", func(t *testing.T) {
		client, err := generation.New(&mockLLMClient{})
		gt.NoError(t, err).Required()

		_, err = client.Generate(ctx, &interfaces.GenerationRequest{Message: "   "})
		gt.Error(t, err)

		_, err = client.Generate(ctx, nil)
		gt.Error(t, err)
	})

	t.Run("reuses session for same conversation", func(t *testing.T) {
		llm := &mockLLMClient{}
		client, err := generation.New(llm)
		gt.NoError(t, err).Required()

		first, err := client.Generate(ctx, &interfaces.GenerationRequest{Message: "hello"})
		gt.NoError(t, err).Required()

		_, err = client.Generate(ctx, &interfaces.GenerationRequest{
			Message:        "more details please",
			ConversationID: first.ConversationID,
		})
		gt.NoError(t, err).Required()

		gt.Number(t, llm.newSessionCount).Equal(1)
	})

	t.Run("recent turns sent only on fresh session", func(t *testing.T) {
		var prompts []string
		llm := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						prompts = append(prompts, promptText(input))
						return &gollem.Response{Texts: []string{"ok"}}, nil
					},
				}, nil
			},
		}
		client, err := generation.New(llm)
		gt.NoError(t, err).Required()

		turns := []model.Message{
			{Role: types.RoleUser, Content: "earlier question"},
			{Role: types.RoleAssistant, Content: "earlier answer"},
		}

		first, err := client.Generate(ctx, &interfaces.GenerationRequest{
			Message:     "next question",
			RecentTurns: turns,
		})
		gt.NoError(t, err).Required()

		_, err = client.Generate(ctx, &interfaces.GenerationRequest{
			Message:        "followup",
			ConversationID: first.ConversationID,
			RecentTurns:    turns,
		})
		gt.NoError(t, err).Required()

		gt.Array(t, prompts).Length(2)
		gt.Bool(t, strings.Contains(prompts[0], "earlier question")).True()
		gt.Bool(t, strings.Contains(prompts[1], "earlier question")).False()
	})

	t.Run("retrieval context rendered into prompt", func(t *testing.T) {
		var captured string
		llm := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						captured = promptText(input)
						return &gollem.Response{Texts: []string{"ok"}}, nil
					},
				}, nil
			},
		}
		client, err := generation.New(llm)
		gt.NoError(t, err).Required()

		rctx := &model.RetrievalContext{
			Candidates: []model.ScoredOpportunity{{
				Opportunity: &model.Opportunity{
					Title:    "Tech Fellowship",
					Provider: "Innovation Fund",
					Deadline: "2026-10-01",
				},
				Score: 12,
			}},
			Profile: &model.Profile{
				Interests:      []string{"technology"},
				EducationLevel: "undergraduate",
			},
			ContextUsed: true,
		}

		_, err = client.Generate(ctx, &interfaces.GenerationRequest{
			Message:   "what matches me",
			Retrieval: rctx,
		})
		gt.NoError(t, err).Required()

		gt.Bool(t, strings.Contains(captured, "Tech Fellowship")).True()
		gt.Bool(t, strings.Contains(captured, "Innovation Fund")).True()
		gt.Bool(t, strings.Contains(captured, "technology")).True()
		gt.Bool(t, strings.Contains(captured, "what matches me")).True()
	})

	t.Run("generation failure drops session", func(t *testing.T) {
		failing := true
		llm := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						if failing {
							return nil, goerr.New("model unavailable")
						}
						return &gollem.Response{Texts: []string{"recovered"}}, nil
					},
				}, nil
			},
		}
		client, err := generation.New(llm)
		gt.NoError(t, err).Required()

		_, err = client.Generate(ctx, &interfaces.GenerationRequest{
			Message:        "hello",
			ConversationID: "conv-1",
		})
		gt.Error(t, err)

		// Retry on the same conversation starts a clean session
		failing = false
		resp, err := client.Generate(ctx, &interfaces.GenerationRequest{
			Message:        "hello again",
			ConversationID: "conv-1",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, resp.Response).Equal("recovered")
		gt.Number(t, llm.newSessionCount).Equal(2)
	})

	t.Run("empty model output is an error", func(t *testing.T) {
		llm := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						return &gollem.Response{Texts: []string{"  "}}, nil
					},
				}, nil
			},
		}
		client, err := generation.New(llm)
		gt.NoError(t, err).Required()

		_, err = client.Generate(ctx, &interfaces.GenerationRequest{Message: "hello"})
		gt.Error(t, err)
	})
}
