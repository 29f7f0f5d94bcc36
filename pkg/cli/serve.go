package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pathlight-lab/pathlight/pkg/cli/config"
	httpctrl "github.com/pathlight-lab/pathlight/pkg/controller/http"
	"github.com/pathlight-lab/pathlight/pkg/service/generation"
	"github.com/pathlight-lab/pathlight/pkg/usecase"
	"github.com/pathlight-lab/pathlight/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var systemPrompt string
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var engineCfg config.Engine

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("PATHLIGHT_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "system-prompt",
			Usage:       "System prompt seeding new conversation sessions",
			Sources:     cli.EnvVars("PATHLIGHT_SYSTEM_PROMPT"),
			Destination: &systemPrompt,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, engineCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			ucOpts, err := engineCfg.Options()
			if err != nil {
				return goerr.Wrap(err, "failed to configure engine")
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if llmClient != nil {
				genClient, err := generation.New(llmClient)
				if err != nil {
					return goerr.Wrap(err, "failed to create generation client")
				}
				ucOpts = append(ucOpts, usecase.WithGenerationClient(genClient))
				logging.Default().Info("Remote generation enabled")
			} else {
				logging.Default().Info("Gemini not configured, running local-only generation")
			}

			uc := usecase.New(repo, ucOpts...)

			httpHandler, err := httpctrl.New(uc, httpctrl.WithSystemPrompt(systemPrompt))
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
