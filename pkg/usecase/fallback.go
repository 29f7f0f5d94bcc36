package usecase

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"github.com/pathlight-lab/pathlight/pkg/domain/model"
	"github.com/pathlight-lab/pathlight/pkg/domain/types"
)

//go:embed prompt/enriched.md
var enrichedResponseTmpl string

var enrichedResponse = template.Must(template.New("enriched").Parse(enrichedResponseTmpl))

// enrichedMatch is one candidate rendered into the enriched template
type enrichedMatch struct {
	Index    int
	Title    string
	Provider string
	Deadline string
	Summary  string
}

// enrichedData holds all data for the enriched response template
type enrichedData struct {
	Matches          []enrichedMatch
	Interests        []string
	InterestList     string
	EducationLevel   string
	EducationMatched bool
	HasProfile       bool
}

const summaryLimit = 160

// enrichedLocalContent synthesizes a response deterministically from the
// retrieval context. With candidates or a profile present it renders the
// enriched template; otherwise it falls through to intent-pattern
// responses.
func enrichedLocalContent(text string, rctx *model.RetrievalContext) string {
	if rctx == nil || !rctx.ContextUsed {
		return intentContent(text)
	}

	data := enrichedData{
		HasProfile: rctx.Profile != nil,
	}

	for i, cand := range rctx.Candidates {
		opp := cand.Opportunity
		summary := opp.Description
		if runes := []rune(summary); len(runes) > summaryLimit {
			summary = string(runes[:summaryLimit]) + "…"
		}
		data.Matches = append(data.Matches, enrichedMatch{
			Index:    i + 1,
			Title:    opp.Title,
			Provider: opp.Provider,
			Deadline: opp.Deadline,
			Summary:  summary,
		})
	}

	if p := rctx.Profile; p != nil {
		data.Interests = matchedInterests(p, rctx.Candidates)
		data.InterestList = joinNatural(data.Interests)
		data.EducationLevel = p.EducationLevel
		data.EducationMatched = p.EducationLevel != "" && educationMatched(p.EducationLevel, rctx.Candidates)
	}

	var buf bytes.Buffer
	if err := enrichedResponse.Execute(&buf, data); err != nil {
		// Template data is fully controlled here; an execution failure is
		// a defect, handled by the minimal fallback tier above us.
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}

// matchedInterests returns the profile interests that actually occur in
// the candidate texts, preserving profile order.
func matchedInterests(p *model.Profile, candidates []model.ScoredOpportunity) []string {
	var matched []string
	for _, interest := range p.Interests {
		needle := strings.ToLower(strings.TrimSpace(interest))
		if needle == "" {
			continue
		}
		for _, cand := range candidates {
			if strings.Contains(cand.Opportunity.SearchableText(), needle) {
				matched = append(matched, interest)
				break
			}
		}
	}
	return matched
}

func educationMatched(level string, candidates []model.ScoredOpportunity) bool {
	needle := strings.ToLower(strings.TrimSpace(level))
	for _, cand := range candidates {
		if strings.Contains(cand.Opportunity.SearchableText(), needle) {
			return true
		}
	}
	return false
}

func joinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

// intentRule is a keyword-matched canned guidance block, checked in order
type intentRule struct {
	name     string
	keywords []string
	response string
}

var intentRules = []intentRule{
	{
		name:     "greeting",
		keywords: []string{"hello", "hi ", "hey", "good morning", "good afternoon", "good evening"},
		response: "Hi! I'm Pathlight, your career coach. I can help you find scholarships and programs, plan your career path, or figure out which skills to build next. What would you like to work on?",
	},
	{
		name:     "scholarship",
		keywords: []string{"scholarship", "funding", "grant", "bursary", "financial aid"},
		response: "Scholarships are easier to win with a system: keep a shortlist of programs whose eligibility you clearly meet, track their deadlines, and reuse a strong base essay tailored per application. Fill in your profile interests and education level so I can match openings to you.",
	},
	{
		name:     "career",
		keywords: []string{"career", "job", "profession", "work", "employment"},
		response: "A good career move starts from what you already have: list your strongest skills, pick two or three roles that use them, and compare what each role requires against where you are now. I can help you map that gap and find opportunities that close it.",
	},
	{
		name:     "skills",
		keywords: []string{"skill", "learn", "course", "training", "study"},
		response: "Pick one skill and go deep before going wide: choose something that shows up in the roles you want, find a structured course or project for it, and practice on something real you can show later. Tell me the direction you're aiming for and I'll suggest where to start.",
	},
	{
		name:     "roadmap",
		keywords: []string{"roadmap", "plan", "goal", "milestone", "next step"},
		response: "Break the goal into milestones you can finish in two to four weeks each, and attach one concrete deliverable to every milestone. Start with the first one only — momentum matters more than a perfect plan. I can help you sketch the first three milestones now.",
	},
	{
		name:     "networking",
		keywords: []string{"network", "mentor", "connect", "community", "people"},
		response: "The easiest networking is asking specific questions to people one step ahead of you. Join a community in your field, follow up with anyone whose work you admire, and ask about their path rather than for a favor. Our community space is a good place to start.",
	},
}

const clarifyingResponse = "I want to point you somewhere useful — could you tell me a bit more? " +
	"For example: the field you're interested in, what stage you're at, or whether you're after scholarships, jobs, or skills."

// intentContent returns the canned guidance block for the first matching
// intent, or a clarifying response when nothing matches.
func intentContent(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.response
			}
		}
	}
	return clarifyingResponse
}

// minimalFallbackMessage is the static last-resort answer. It must never
// depend on any state that can fail.
const minimalFallbackMessage = "I'm having trouble putting together a full answer right now. " +
	"Try rephrasing your question, or pick one of the suggestions below and I'll take it from there."

// minimalEnvelope builds the terminal fallback envelope
func minimalEnvelope() *model.ResponseEnvelope {
	return &model.ResponseEnvelope{
		Content: minimalFallbackMessage,
		Actions: []model.Action{
			{Label: "Browse opportunities", Kind: types.ActionKindOpportunity},
			{Label: "Get help from the community", Kind: types.ActionKindCommunity},
		},
		Source: types.SourceMinimalFallback,
	}
}
