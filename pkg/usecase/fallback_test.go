package usecase_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/pathlight-lab/pathlight/pkg/domain/model"
	"github.com/pathlight-lab/pathlight/pkg/usecase"
)

func TestEnrichedLocalContent(t *testing.T) {
	t.Run("nil context falls through to intent rules", func(t *testing.T) {
		content := usecase.EnrichedLocalContent("hello there", nil)
		gt.Bool(t, strings.Contains(content, "Pathlight")).True()
	})

	t.Run("unused context falls through to intent rules", func(t *testing.T) {
		rctx := model.EmptyRetrievalContext()
		content := usecase.EnrichedLocalContent("hello there", rctx)
		gt.Bool(t, strings.Contains(content, "Pathlight")).True()
	})

	t.Run("renders numbered matches", func(t *testing.T) {
		rctx := &model.RetrievalContext{
			Candidates: []model.ScoredOpportunity{
				{Opportunity: &model.Opportunity{
					Title:       "Tech Fellowship",
					Provider:    "Innovation Fund",
					Deadline:    "2026-10-01",
					Description: "A yearlong fellowship",
				}},
				{Opportunity: &model.Opportunity{
					Title:    "Coding Grant",
					Provider: "Dev Foundation",
					Deadline: model.DeadlineUnspecified,
				}},
			},
			ContextUsed: true,
		}

		content := usecase.EnrichedLocalContent("scholarships?", rctx)

		gt.Bool(t, strings.Contains(content, "1. **Tech Fellowship** — Innovation Fund (deadline: 2026-10-01)")).True()
		gt.Bool(t, strings.Contains(content, "2. **Coding Grant** — Dev Foundation")).True()
		gt.Bool(t, strings.Contains(content, "A yearlong fellowship")).True()
		gt.Bool(t, strings.Contains(content, "Next step:")).True()
	})

	t.Run("long summaries are shortened", func(t *testing.T) {
		rctx := &model.RetrievalContext{
			Candidates: []model.ScoredOpportunity{
				{Opportunity: &model.Opportunity{
					Title:       "Grant",
					Provider:    "Fund",
					Deadline:    model.DeadlineUnspecified,
					Description: strings.Repeat("long description ", 30),
				}},
			},
			ContextUsed: true,
		}

		content := usecase.EnrichedLocalContent("grants?", rctx)
		gt.Bool(t, strings.Contains(content, "…")).True()
	})

	t.Run("mentions matched interests in profile order", func(t *testing.T) {
		rctx := &model.RetrievalContext{
			Candidates: []model.ScoredOpportunity{
				{Opportunity: &model.Opportunity{
					Title:       "Music Production Grant",
					Provider:    "Arts Council",
					Deadline:    model.DeadlineUnspecified,
					Description: "For music and design creators",
				}},
			},
			Profile: &model.Profile{
				Interests: []string{"music", "design", "astronomy"},
			},
			ContextUsed: true,
		}

		content := usecase.EnrichedLocalContent("anything for me?", rctx)

		gt.Bool(t, strings.Contains(content, "your interest in music and design")).True()
		gt.Bool(t, strings.Contains(content, "astronomy")).False()
	})

	t.Run("mentions education level only when matched", func(t *testing.T) {
		candidates := []model.ScoredOpportunity{
			{Opportunity: &model.Opportunity{
				Title:       "Undergraduate Research Program",
				Provider:    "University",
				Deadline:    model.DeadlineUnspecified,
				Description: "Open to undergraduate students",
			}},
		}

		matched := usecase.EnrichedLocalContent("research?", &model.RetrievalContext{
			Candidates:  candidates,
			Profile:     &model.Profile{EducationLevel: "undergraduate"},
			ContextUsed: true,
		})
		gt.Bool(t, strings.Contains(matched, "undergraduate level")).True()

		unmatched := usecase.EnrichedLocalContent("research?", &model.RetrievalContext{
			Candidates:  candidates,
			Profile:     &model.Profile{EducationLevel: "doctoral"},
			ContextUsed: true,
		})
		gt.Bool(t, strings.Contains(unmatched, "doctoral level")).False()
	})

	t.Run("no matches with profile", func(t *testing.T) {
		rctx := &model.RetrievalContext{
			Profile:     &model.Profile{Interests: []string{"history"}},
			ContextUsed: true,
		}

		content := usecase.EnrichedLocalContent("anything?", rctx)
		gt.Bool(t, strings.Contains(content, "nothing stands out")).True()
		gt.Bool(t, strings.Contains(content, "Based on your profile")).True()
	})

	t.Run("no matches without profile", func(t *testing.T) {
		rctx := &model.RetrievalContext{
			Candidates:  nil,
			Profile:     nil,
			ContextUsed: true,
		}

		content := usecase.EnrichedLocalContent("anything?", rctx)
		gt.Bool(t, strings.Contains(content, "Tell me more about what you are looking for")).True()
	})
}

func TestIntentContent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		fragment string
	}{
		{"greeting", "Hello!", "I'm Pathlight, your career coach"},
		{"scholarship", "where can I find funding", "Scholarships"},
		{"career", "I want a new job", "career move"},
		{"skills", "what should I learn", "one skill"},
		{"roadmap", "help me make a plan", "milestones"},
		{"networking", "how do I find a mentor", "networking"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := usecase.IntentContent(tt.text)
			gt.Bool(t, strings.Contains(content, tt.fragment)).True()
		})
	}

	t.Run("first matching rule wins", func(t *testing.T) {
		// Mentions both scholarship and career; scholarship is checked first
		content := usecase.IntentContent("scholarship for my career")
		gt.Bool(t, strings.Contains(content, "Scholarships")).True()
	})

	t.Run("no match asks a clarifying question", func(t *testing.T) {
		content := usecase.IntentContent("xyzzy")
		gt.Value(t, content).Equal(usecase.ClarifyingResponse)
	})

	t.Run("matching is case insensitive", func(t *testing.T) {
		gt.Value(t, usecase.IntentContent("SCHOLARSHIP")).
			Equal(usecase.IntentContent("scholarship"))
	})
}

func TestMinimalEnvelope(t *testing.T) {
	envelope := usecase.MinimalEnvelope()

	gt.Value(t, envelope.Content).Equal(usecase.MinimalFallbackMessage)
	gt.Value(t, envelope.Source.String()).Equal("minimal-fallback")
	gt.Array(t, envelope.Actions).Length(2)
}
