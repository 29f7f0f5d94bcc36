package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/pathlight-lab/pathlight/pkg/domain/interfaces"
	"github.com/pathlight-lab/pathlight/pkg/domain/model"
	"github.com/pathlight-lab/pathlight/pkg/domain/types"
	"github.com/pathlight-lab/pathlight/pkg/service/retrieval"
	"github.com/pathlight-lab/pathlight/pkg/utils/async"
	"github.com/pathlight-lab/pathlight/pkg/utils/logging"
)

const (
	// DefaultMaxRetries is the consecutive remote failure budget before
	// the circuit opens
	DefaultMaxRetries = 2
	// DefaultRemoteTimeout bounds one remote generation call
	DefaultRemoteTimeout = 15 * time.Second
	// DefaultRecentTurnCount is how many trimmed history messages are
	// forwarded to the remote endpoint
	DefaultRecentTurnCount = 6
)

// ChatUseCase is the tiered response generation pipeline:
// ATTEMPT_REMOTE, then ENRICHED_LOCAL, then MINIMAL_FALLBACK. It never
// returns an error to its caller; the only contract is a valid envelope.
type ChatUseCase struct {
	repo            interfaces.Repository
	builder         *retrieval.Builder
	generation      interfaces.GenerationClient
	maxRetries      int
	remoteTimeout   time.Duration
	recentTurnCount int
}

// NewChatUseCase creates the pipeline. generation may be nil, in which
// case every turn goes straight to local generation.
func NewChatUseCase(repo interfaces.Repository, builder *retrieval.Builder, generation interfaces.GenerationClient) *ChatUseCase {
	return &ChatUseCase{
		repo:            repo,
		builder:         builder,
		generation:      generation,
		maxRetries:      DefaultMaxRetries,
		remoteTimeout:   DefaultRemoteTimeout,
		recentTurnCount: DefaultRecentTurnCount,
	}
}

// SetMaxRetries overrides the circuit breaker budget
func (uc *ChatUseCase) SetMaxRetries(n int) {
	if n > 0 {
		uc.maxRetries = n
	}
}

// SetRemoteTimeout overrides the remote call timeout
func (uc *ChatUseCase) SetRemoteTimeout(d time.Duration) {
	if d > 0 {
		uc.remoteTimeout = d
	}
}

// Chat processes one user turn. It assembles retrieval context, runs the
// tiered generation, appends the result to the session, and records the
// turn asynchronously. The session must not be shared between in-flight
// turns; the caller owns single-flight sequencing.
func (uc *ChatUseCase) Chat(ctx context.Context, session *model.ConversationSession, userID, text string) *model.ResponseEnvelope {
	start := time.Now()

	session.AppendUser(text)

	rctx := uc.builder.Build(ctx, text, userID)
	rctx.RecentTurns = session.RecentTurns(uc.recentTurnCount)

	envelope := uc.tryRemote(ctx, session, text, rctx)
	if envelope == nil {
		envelope = uc.localEnvelope(ctx, text, rctx)
	}

	session.AppendAssistant(envelope.Content, rctx)

	uc.recordTurn(ctx, session.ID, text, envelope, time.Since(start))

	return envelope
}

// tryRemote is the ATTEMPT_REMOTE state. A nil return advances the state
// machine to ENRICHED_LOCAL. The failure counter is a circuit breaker
// across turns, not a per-call retry loop: once it reaches maxRetries,
// turns skip the remote endpoint until a success resets it.
func (uc *ChatUseCase) tryRemote(ctx context.Context, session *model.ConversationSession, text string, rctx *model.RetrievalContext) *model.ResponseEnvelope {
	logger := logging.From(ctx)

	if uc.generation == nil {
		return nil
	}
	if session.RemoteFailures() >= uc.maxRetries {
		logger.Debug("remote generation circuit open, using local generation",
			"sessionID", session.ID,
			"failures", session.RemoteFailures(),
		)
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, uc.remoteTimeout)
	defer cancel()

	resp, err := uc.generation.Generate(callCtx, &interfaces.GenerationRequest{
		Message:        text,
		ConversationID: session.RemoteConversationID,
		RecentTurns:    rctx.RecentTurns,
		Retrieval:      rctx,
	})
	if err != nil || resp == nil || !resp.Success || strings.TrimSpace(resp.Response) == "" {
		session.RecordRemoteFailure()
		errMsg := "non-success response"
		if err != nil {
			errMsg = err.Error()
		}
		logger.Warn("remote generation failed, falling back to local generation",
			"sessionID", session.ID,
			"failures", session.RemoteFailures(),
			"error", errMsg,
		)
		return nil
	}

	session.ResetRemoteFailures()
	session.RemoteConversationID = resp.ConversationID

	return &model.ResponseEnvelope{
		Content: resp.Response,
		Actions: DeriveActions(text, resp.Response, rctx),
		Context: rctx,
		Source:  types.SourceRemote,
	}
}

// localEnvelope is the ENRICHED_LOCAL state with MINIMAL_FALLBACK as its
// recovery tier: a panic anywhere in local synthesis yields the static
// envelope instead of propagating.
func (uc *ChatUseCase) localEnvelope(ctx context.Context, text string, rctx *model.RetrievalContext) (envelope *model.ResponseEnvelope) {
	defer func() {
		if r := recover(); r != nil {
			logging.From(ctx).Error("local generation failed, using minimal fallback", "panic", r)
			envelope = minimalEnvelope()
		}
	}()

	content := enrichedLocalContent(text, rctx)

	return &model.ResponseEnvelope{
		Content: content,
		Actions: DeriveActions(text, content, rctx),
		Context: rctx,
		Source:  types.SourceEnrichedLocal,
	}
}

// recordTurn persists the completed turn as a chat log without blocking
// the response path.
func (uc *ChatUseCase) recordTurn(ctx context.Context, sessionID types.SessionID, text string, envelope *model.ResponseEnvelope, latency time.Duration) {
	if uc.repo == nil {
		return
	}

	var candidateIDs []types.OpportunityID
	if envelope.Context != nil {
		for _, cand := range envelope.Context.Candidates {
			candidateIDs = append(candidateIDs, cand.Opportunity.ID)
		}
	}

	log := &model.ChatLog{
		SessionID:    sessionID,
		UserMessage:  text,
		Response:     envelope.Content,
		Source:       envelope.Source,
		CandidateIDs: candidateIDs,
		LatencyMilli: latency.Milliseconds(),
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		_, err := uc.repo.ChatLog().Create(ctx, log)
		return err
	})
}
