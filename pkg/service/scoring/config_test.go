package scoring_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/pathlight-lab/pathlight/pkg/service/scoring"
)

func TestDefaultConfig(t *testing.T) {
	cfg := scoring.DefaultConfig()

	gt.NoError(t, cfg.Validate())
	gt.Value(t, cfg.MinScore).Equal(2.0)
	gt.Value(t, cfg.TopK).Equal(5)
	gt.Number(t, len(cfg.DomainKeywords)).Greater(0)
	gt.Number(t, len(cfg.Categories)).Greater(0)
}

func TestLoadConfig(t *testing.T) {
	t.Run("overrides merge over defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scoring.toml")
		content := `
min_score = 3.5
top_k = 3
`
		gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()

		cfg, err := scoring.LoadConfig(path)
		gt.NoError(t, err).Required()

		gt.Value(t, cfg.MinScore).Equal(3.5)
		gt.Value(t, cfg.TopK).Equal(3)
		// Untouched fields keep defaults
		gt.Value(t, cfg.TitleWeight).Equal(5.0)
		gt.Number(t, len(cfg.StopWords)).Greater(0)
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scoring.toml")
		gt.NoError(t, os.WriteFile(path, []byte("top_k = -1\n"), 0600)).Required()

		_, err := scoring.LoadConfig(path)
		gt.Error(t, err)
	})

	t.Run("missing file returns error", func(t *testing.T) {
		_, err := scoring.LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
		gt.Error(t, err)
	})

	t.Run("malformed TOML returns error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scoring.toml")
		gt.NoError(t, os.WriteFile(path, []byte("min_score = ["), 0600)).Required()

		_, err := scoring.LoadConfig(path)
		gt.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*scoring.Config)
		wantErr bool
	}{
		{"defaults valid", func(c *scoring.Config) {}, false},
		{"zero top_k", func(c *scoring.Config) { c.TopK = 0 }, true},
		{"negative min_score", func(c *scoring.Config) { c.MinScore = -1 }, true},
		{"inverted deadline bonus", func(c *scoring.Config) { c.DeadlineMaxBonus = 0 }, true},
		{"zero horizon", func(c *scoring.Config) { c.DeadlineHorizonDays = 0 }, true},
		{"unnamed category", func(c *scoring.Config) {
			c.Categories = append(c.Categories, scoring.CategoryRule{Keywords: []string{"x"}, Bonus: 1})
		}, true},
		{"category without keywords", func(c *scoring.Config) {
			c.Categories = append(c.Categories, scoring.CategoryRule{Name: "empty", Bonus: 1})
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := scoring.DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}
