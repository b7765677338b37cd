package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/acmelabs/moderation-agent/internal/chat"
	"github.com/acmelabs/moderation-agent/internal/mediatype"
	"github.com/acmelabs/moderation-agent/internal/models"
	"github.com/acmelabs/moderation-agent/internal/setup"
	"github.com/acmelabs/moderation-agent/internal/tracing"
)

// Terminal front-end for the training chat: every message is moderated
// before the simulated customer sees it. Type text, "/media <path>" to
// send a file, or "/quit" to end the conversation.
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx := context.Background()

	cfg := setup.LoadConfig()

	provider, err := tracing.Init(ctx, cfg.TracingConfig(), &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tracing")
	}

	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	session := chat.NewSession(deps.Moderator, deps.Customer, &logger)

	fmt.Println("ACME Customer Service Training Chat")
	fmt.Println("Type a message, \"/media <path>\" to send a file, \"/quit\" to end.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" {
			break
		}

		input, err := buildInput(line)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}

		result, err := session.Submit(ctx, input)
		if err != nil {
			fmt.Printf("moderation failed: %v\n", err)
			continue
		}

		if result.Trainee.Decision == models.DecisionBlocked {
			fmt.Printf("%s\n", result.Trainee.Content)
			fmt.Printf("Moderation feedback: %s\n", result.Feedback)
			continue
		}

		fmt.Printf("customer: %s\n", result.Customer.Content)
	}

	session.End()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := provider.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Failed to shut down tracing")
	}

	fmt.Println("Conversation ended.")
}

func buildInput(line string) (models.Input, error) {
	path, ok := strings.CutPrefix(line, "/media ")
	if !ok {
		return models.Input{Modality: models.ModalityText, Text: line}, nil
	}

	data, err := os.ReadFile(strings.TrimSpace(path))
	if err != nil {
		return models.Input{}, err
	}

	mime, modality, err := mediatype.Detect(data)
	if err != nil {
		return models.Input{}, err
	}

	return models.Input{
		Modality:  modality,
		Media:     data,
		MediaType: mime,
	}, nil
}
