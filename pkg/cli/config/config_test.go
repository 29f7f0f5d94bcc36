package config

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestGeminiConfigureUnset(t *testing.T) {
	var cfg Gemini

	client, err := cfg.Configure(context.Background())
	gt.NoError(t, err)
	gt.Value(t, client).Equal(nil)
}

func TestEngineOptions(t *testing.T) {
	t.Run("zero value yields defaults", func(t *testing.T) {
		var cfg Engine

		opts, err := cfg.Options()
		gt.NoError(t, err).Required()
		gt.Array(t, opts).Length(3)
	})

	t.Run("missing scoring config file is an error", func(t *testing.T) {
		cfg := Engine{scoringConfigPath: "/nonexistent/scoring.toml"}

		_, err := cfg.Options()
		gt.Error(t, err)
	})
}

func TestRepositoryConfigure(t *testing.T) {
	t.Run("memory backend", func(t *testing.T) {
		cfg := Repository{backend: "memory"}

		repo, err := cfg.Configure(context.Background())
		gt.NoError(t, err).Required()
		gt.NoError(t, repo.Close())
	})

	t.Run("firestore backend requires project ID", func(t *testing.T) {
		cfg := Repository{backend: "firestore"}

		_, err := cfg.Configure(context.Background())
		gt.Error(t, err)
	})

	t.Run("unknown backend rejected", func(t *testing.T) {
		cfg := Repository{backend: "postgres"}

		_, err := cfg.Configure(context.Background())
		gt.Error(t, err)
	})
}
