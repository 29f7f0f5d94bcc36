package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pathlight-lab/pathlight/pkg/service/scoring"
	"github.com/pathlight-lab/pathlight/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Engine holds CLI flags tuning the retrieval and generation pipeline
type Engine struct {
	scoringConfigPath string
	pageSize          int
	maxRetries        int
	remoteTimeout     time.Duration
}

// Flags returns CLI flags for engine tuning
func (e *Engine) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "scoring-config",
			Usage:       "Path to a TOML file overriding the scoring tables",
			Sources:     cli.EnvVars("PATHLIGHT_SCORING_CONFIG"),
			Destination: &e.scoringConfigPath,
		},
		&cli.IntFlag{
			Name:        "retrieval-page-size",
			Usage:       "Number of recent opportunity records fetched per turn",
			Value:       50,
			Sources:     cli.EnvVars("PATHLIGHT_RETRIEVAL_PAGE_SIZE"),
			Destination: &e.pageSize,
		},
		&cli.IntFlag{
			Name:        "max-remote-retries",
			Usage:       "Consecutive remote failures before the circuit opens",
			Value:       usecase.DefaultMaxRetries,
			Sources:     cli.EnvVars("PATHLIGHT_MAX_REMOTE_RETRIES"),
			Destination: &e.maxRetries,
		},
		&cli.DurationFlag{
			Name:        "remote-timeout",
			Usage:       "Timeout for one remote generation call",
			Value:       usecase.DefaultRemoteTimeout,
			Sources:     cli.EnvVars("PATHLIGHT_REMOTE_TIMEOUT"),
			Destination: &e.remoteTimeout,
		},
	}
}

// Options converts the flags into use case options, loading the scoring
// config file when one is set.
func (e *Engine) Options() ([]usecase.Option, error) {
	opts := []usecase.Option{
		usecase.WithPageSize(int(e.pageSize)),
		usecase.WithMaxRetries(int(e.maxRetries)),
		usecase.WithRemoteTimeout(e.remoteTimeout),
	}

	if e.scoringConfigPath != "" {
		cfg, err := scoring.LoadConfig(e.scoringConfigPath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load scoring config",
				goerr.V("path", e.scoringConfigPath),
			)
		}
		opts = append(opts, usecase.WithScoringConfig(cfg))
	}

	return opts, nil
}
