package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tailkeep-lab/tailkeep/pkg/cli/config"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/model"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
	"github.com/tailkeep-lab/tailkeep/pkg/service/guideline"
	"github.com/tailkeep-lab/tailkeep/pkg/usecase"
	"github.com/tailkeep-lab/tailkeep/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdChat() *cli.Command {
	var profileID string
	var petName string
	var petSpecies string
	var petAge float64
	var guidelineFile string
	var repoCfg config.Repository
	var reasoningCfg config.Reasoning

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "profile",
			Usage:       "Profile ID for the conversation",
			Value:       "local-chat",
			Sources:     cli.EnvVars("TAILKEEP_CHAT_PROFILE"),
			Destination: &profileID,
		},
		&cli.StringFlag{
			Name:        "pet-name",
			Usage:       "Name of a pet to seed into the repository",
			Destination: &petName,
		},
		&cli.StringFlag{
			Name:        "pet-species",
			Usage:       "Species of the seeded pet (dog or cat)",
			Value:       "dog",
			Destination: &petSpecies,
		},
		&cli.FloatFlag{
			Name:        "pet-age",
			Usage:       "Approximate age in years of the seeded pet",
			Destination: &petAge,
		},
		&cli.StringFlag{
			Name:        "guideline-file",
			Usage:       "TOML file overriding built-in care guidelines",
			Sources:     cli.EnvVars("TAILKEEP_GUIDELINE_FILE"),
			Destination: &guidelineFile,
		},
	}

	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, reasoningCfg.Flags()...)

	return &cli.Command{
		Name:    "chat",
		Aliases: []string{"c"},
		Usage:   "Interactive terminal chat session",
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

			if petName != "" {
				now := time.Now()
				pet := &model.Pet{
					ID:        types.NewPetID(),
					Name:      petName,
					Type:      petSpecies,
					ApproxAge: petAge,
					CreatedAt: now,
					UpdatedAt: now,
				}
				if err := repo.Pet().Put(ctx, pet); err != nil {
					return goerr.Wrap(err, "failed to seed pet")
				}
			}

			reasoningClient, err := reasoningCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure reasoning client")
			}

			guidelines := guideline.NewDefault()
			if guidelineFile != "" {
				guidelines, err = guideline.LoadFile(guidelineFile)
				if err != nil {
					return goerr.Wrap(err, "failed to load guideline file")
				}
			}

			ucOpts := []usecase.Option{
				usecase.WithGuidelines(guidelines),
			}
			if reasoningClient != nil {
				ucOpts = append(ucOpts, usecase.WithReasoning(reasoningClient))
			}
			uc := usecase.New(repo, ucOpts...)

			session := uc.Assistant(ctx, types.ProfileID(profileID))
			return runChatLoop(ctx, session)
		},
	}
}

var (
	promptColor    = color.New(color.FgCyan, color.Bold)
	assistantColor = color.New(color.FgGreen)
	actionColor    = color.New(color.FgYellow)
	noticeColor    = color.New(color.FgHiBlack)
)

func runChatLoop(ctx context.Context, session *usecase.AssistantSession) error {
	noticeColor.Println("Type a message and press Enter. Commands: /reset, /quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		promptColor.Print("you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit", "/exit":
			return nil
		case "/reset":
			if err := session.ResetConversation(ctx); err != nil {
				return goerr.Wrap(err, "failed to reset conversation")
			}
			noticeColor.Println("conversation cleared")
			continue
		}

		resp, err := session.SendMessage(ctx, line, "")
		if err != nil {
			return goerr.Wrap(err, "failed to send message")
		}
		assistantColor.Printf("tailkeep> %s\n", resp.Message)
		for _, action := range resp.SuggestedActions {
			actionColor.Printf("  [%s] %s", action.Type, action.Label)
			if action.Description != "" {
				fmt.Printf(" - %s", action.Description)
			}
			fmt.Println()
		}
	}

	if err := scanner.Err(); err != nil {
		return goerr.Wrap(err, "failed to read input")
	}
	return nil
}
