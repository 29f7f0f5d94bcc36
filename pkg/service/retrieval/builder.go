package retrieval

import (
	"context"
	"errors"

	"github.com/pathlight-lab/pathlight/pkg/domain/interfaces"
	"github.com/pathlight-lab/pathlight/pkg/domain/model"
	"github.com/pathlight-lab/pathlight/pkg/domain/types"
	"github.com/pathlight-lab/pathlight/pkg/service/scoring"
	"github.com/pathlight-lab/pathlight/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// DefaultPageSize bounds the opportunity query issued per turn
const DefaultPageSize = 50

// Builder assembles the bounded retrieval context for one conversation
// turn: recent opportunity records scored against the query and the
// user's stored preferences.
type Builder struct {
	repo     interfaces.Repository
	engine   *scoring.Engine
	pageSize int
}

// Option is a functional option for Builder construction
type Option func(*Builder)

// WithPageSize overrides the opportunity query page size
func WithPageSize(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.pageSize = n
		}
	}
}

// New creates a context builder
func New(repo interfaces.Repository, engine *scoring.Engine, opts ...Option) *Builder {
	b := &Builder{
		repo:     repo,
		engine:   engine,
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build retrieves candidate records and the user profile concurrently,
// scores the candidates, and returns the top-K context. It never returns
// an error to the pipeline: retrieval failures collapse to an empty
// context so the response tiers can still run. An empty userID means no
// personalization, not a failure.
func (b *Builder) Build(ctx context.Context, query, userID string) *model.RetrievalContext {
	logger := logging.From(ctx)

	var records []*model.Opportunity
	var profile *model.Profile

	// Both reads are independent; issue them concurrently and join
	// before scoring. Each failure is tolerated on its own.
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		recs, err := b.repo.Opportunity().ListRecent(egCtx, b.pageSize)
		if err != nil {
			logger.Warn("opportunity query failed, continuing without candidates", "error", err.Error())
			return nil
		}
		records = recs
		return nil
	})

	eg.Go(func() error {
		if userID == "" {
			return nil
		}
		p, err := b.repo.Profile().Get(egCtx, userID)
		if err != nil {
			if !errors.Is(err, types.ErrNotFound) {
				logger.Warn("profile lookup failed, continuing without personalization",
					"userID", userID, "error", err.Error())
			}
			return nil
		}
		profile = p
		return nil
	})

	// Goroutines above never return errors; Wait only joins them.
	_ = eg.Wait()

	candidates := b.engine.Rank(records, query, profile)

	return &model.RetrievalContext{
		Candidates:  candidates,
		Profile:     profile,
		ContextUsed: len(candidates) > 0 || profile != nil,
	}
}
