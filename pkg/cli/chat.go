package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pathlight-lab/pathlight/pkg/cli/config"
	"github.com/pathlight-lab/pathlight/pkg/domain/model"
	"github.com/pathlight-lab/pathlight/pkg/service/generation"
	"github.com/pathlight-lab/pathlight/pkg/usecase"
	"github.com/pathlight-lab/pathlight/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdChat() *cli.Command {
	var userID string
	var systemPrompt string
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var engineCfg config.Engine

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "user-id",
			Usage:       "User ID whose profile personalizes the replies",
			Sources:     cli.EnvVars("PATHLIGHT_USER_ID"),
			Destination: &userID,
		},
		&cli.StringFlag{
			Name:        "system-prompt",
			Usage:       "System prompt seeding the conversation session",
			Sources:     cli.EnvVars("PATHLIGHT_SYSTEM_PROMPT"),
			Destination: &systemPrompt,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, engineCfg.Flags()...)

	return &cli.Command{
		Name:    "chat",
		Aliases: []string{"c"},
		Usage:   "Interactive chat session on the terminal",
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
			}

			uc := usecase.New(repo, ucOpts...)
			session := model.NewConversationSession(systemPrompt)

			return runChatLoop(ctx, uc, session, userID)
		},
	}
}

var (
	promptColor    = color.New(color.FgCyan, color.Bold)
	assistantColor = color.New(color.FgGreen)
	sourceColor    = color.New(color.FgHiBlack)
	actionColor    = color.New(color.FgYellow)
	noticeColor    = color.New(color.FgMagenta)
)

func runChatLoop(ctx context.Context, uc *usecase.UseCases, session *model.ConversationSession, userID string) error {
	noticeColor.Println("Pathlight chat. Type /reset to start over, /quit to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		promptColor.Print("you> ")
		if !scanner.Scan() {
			break
		}

		text := strings.TrimSpace(scanner.Text())
		switch text {
		case "":
			continue
		case "/quit", "/exit":
			noticeColor.Println("bye")
			return nil
		case "/reset":
			session.Reset()
			noticeColor.Println("session reset")
			continue
		}

		envelope := uc.Chat.Chat(ctx, session, userID, text)

		assistantColor.Println(envelope.Content)
		sourceColor.Printf("[source: %s]\n", envelope.Source)
		for _, action := range envelope.Actions {
			actionColor.Printf("  * %s\n", action.Label)
		}
		fmt.Println()
	}

	if err := scanner.Err(); err != nil {
		return goerr.Wrap(err, "failed to read input")
	}
	return nil
}
