package customer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/acmelabs/moderation-agent/internal/config"
	"github.com/acmelabs/moderation-agent/internal/llm"
	"github.com/acmelabs/moderation-agent/internal/models"
)

const instructions = `CONTEXT
At ACME Enterprise we train new customer service employees against a
simulated customer.

ROLE
You are playing the role of a customer contacting ACME Enterprise
support. Stay in character: you have a concrete problem with an ACME
product and respond naturally to whatever the support agent writes.

INSTRUCTIONS
- Reply with the customer's next message only, no narration.
- Keep replies short and conversational.
- React to the content of the agent's last message, including any media
  they shared.`

// Agent simulates the customer side of a training conversation with a
// plain LLM call carrying the conversation so far.
type Agent struct {
	llmClient llm.LLMClient
	model     config.ModelConfig
	logger    *zerolog.Logger
}

func New(llmClient llm.LLMClient, model config.ModelConfig, logger *zerolog.Logger) *Agent {
	return &Agent{
		llmClient: llmClient,
		model:     model,
		logger:    logger,
	}
}

// Reply produces the customer's next message given the conversation so
// far and the support agent's latest (already forwarded) input.
func (a *Agent) Reply(ctx context.Context, history []models.Turn, input models.Input) (string, error) {
	request := llm.LLMRequest{
		Prompt:      buildPrompt(history, input),
		MaxTokens:   a.model.MaxTokens,
		Temperature: a.model.Temperature,
	}
	if len(input.Media) > 0 {
		request.Media = []llm.MediaPart{{MIMEType: input.MediaType, Data: input.Media}}
	}

	resp, err := a.llmClient.InvokeModel(ctx, request)
	if err != nil {
		return "", fmt.Errorf("customer reply failed: %w", err)
	}

	reply := strings.TrimSpace(resp.Content)
	if reply == "" {
		return "", fmt.Errorf("customer reply was empty")
	}

	return reply, nil
}

func buildPrompt(history []models.Turn, input models.Input) string {
	var b strings.Builder

	b.WriteString(instructions)
	b.WriteString("\n\nCONVERSATION SO FAR\n")
	for _, turn := range history {
		// Blocked turns never reach the customer.
		if turn.Decision == models.DecisionBlocked {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", turn.Speaker, turn.Content)
	}

	b.WriteString("\nThis is the next message from the support agent:\n")
	if input.Text != "" {
		b.WriteString(input.Text)
		b.WriteString("\n")
	}
	if len(input.Media) > 0 {
		fmt.Fprintf(&b, "[the agent attached a %s file]\n", input.Modality)
	}

	return b.String()
}
