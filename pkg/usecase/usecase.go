package usecase

import (
	"time"

	"github.com/pathlight-lab/pathlight/pkg/domain/interfaces"
	"github.com/pathlight-lab/pathlight/pkg/service/retrieval"
	"github.com/pathlight-lab/pathlight/pkg/service/scoring"
)

// UseCases wires the engine's use cases over a repository
type UseCases struct {
	repo interfaces.Repository
	Chat *ChatUseCase
}

// Option is a functional option for UseCases construction
type Option func(*settings)

type settings struct {
	generation    interfaces.GenerationClient
	scoringConfig *scoring.Config
	pageSize      int
	maxRetries    int
	remoteTimeout time.Duration
}

// WithGenerationClient enables the remote generation tier
func WithGenerationClient(client interfaces.GenerationClient) Option {
	return func(s *settings) {
		s.generation = client
	}
}

// WithScoringConfig overrides the default scoring tables
func WithScoringConfig(cfg *scoring.Config) Option {
	return func(s *settings) {
		s.scoringConfig = cfg
	}
}

// WithPageSize overrides the retrieval page size
func WithPageSize(n int) Option {
	return func(s *settings) {
		s.pageSize = n
	}
}

// WithMaxRetries overrides the remote circuit breaker budget
func WithMaxRetries(n int) Option {
	return func(s *settings) {
		s.maxRetries = n
	}
}

// WithRemoteTimeout overrides the remote call timeout
func WithRemoteTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.remoteTimeout = d
	}
}

// New creates the use cases. Without WithGenerationClient the pipeline
// runs local-only, which is the expected development mode.
func New(repo interfaces.Repository, opts ...Option) *UseCases {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	engine := scoring.New(s.scoringConfig)

	var builderOpts []retrieval.Option
	if s.pageSize > 0 {
		builderOpts = append(builderOpts, retrieval.WithPageSize(s.pageSize))
	}
	builder := retrieval.New(repo, engine, builderOpts...)

	chat := NewChatUseCase(repo, builder, s.generation)
	if s.maxRetries > 0 {
		chat.SetMaxRetries(s.maxRetries)
	}
	if s.remoteTimeout > 0 {
		chat.SetRemoteTimeout(s.remoteTimeout)
	}

	return &UseCases{
		repo: repo,
		Chat: chat,
	}
}
