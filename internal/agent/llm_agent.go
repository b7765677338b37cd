package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/acmelabs/moderation-agent/internal/config"
	"github.com/acmelabs/moderation-agent/internal/llm"
	"github.com/acmelabs/moderation-agent/internal/models"
)

// LLMAgent is a moderation agent for a single modality: one LLM call in,
// one validated result out. Instructions come from YAML configuration.
type LLMAgent struct {
	modality     models.Modality
	instructions string
	modelConfig  config.ModelConfig
	schema       models.Schema
	llmClient    llm.LLMClient
	logger       *zerolog.Logger
}

func NewLLMAgent(
	agentCfg config.AgentConfiguration,
	llmClient llm.LLMClient,
	logger *zerolog.Logger,
) (*LLMAgent, error) {
	modality := models.Modality(agentCfg.Modality)
	schema, ok := models.SchemaFor(modality)
	if !ok {
		return nil, fmt.Errorf("agent %s has no result schema", agentCfg.Modality)
	}

	if agentCfg.Model == nil {
		return nil, fmt.Errorf("agent %s has nil model config (should be populated by config loader)", agentCfg.Modality)
	}

	return &LLMAgent{
		modality:     modality,
		instructions: agentCfg.Instructions,
		modelConfig:  *agentCfg.Model,
		schema:       schema,
		llmClient:    llmClient,
		logger:       logger,
	}, nil
}

// Moderate executes the moderation call for this agent's modality.
func (a *LLMAgent) Moderate(ctx context.Context, input models.Input) (models.Result, error) {
	now := time.Now()

	if input.Modality != a.modality {
		return models.Result{}, fmt.Errorf("agent %s received %s input", a.modality, input.Modality)
	}

	request := llm.LLMRequest{
		Prompt:      a.buildPrompt(input),
		MaxTokens:   a.modelConfig.MaxTokens,
		Temperature: a.modelConfig.Temperature,
	}
	if len(input.Media) > 0 {
		request.Media = []llm.MediaPart{{MIMEType: input.MediaType, Data: input.Media}}
	}

	var resp *llm.LLMResponse
	var err error
	if a.modelConfig.Retry {
		resp, err = a.llmClient.InvokeModelWithRetry(ctx, request)
	} else {
		resp, err = a.llmClient.InvokeModel(ctx, request)
	}

	if err != nil {
		a.logger.Error().
			Err(err).
			Str("modality", string(a.modality)).
			Msg("LLM call failed")
		return models.Result{}, fmt.Errorf("moderation call for %s failed: %w", a.modality, err)
	}

	result, err := parseResult(a.modality, resp.Content)
	if err != nil {
		a.logger.Error().
			Err(err).
			Str("modality", string(a.modality)).
			Str("content", resp.Content).
			Msg("LLM reply failed schema validation")
		return models.Result{}, err
	}

	a.logger.Info().
		Str("modality", string(a.modality)).
		Dur("duration", time.Since(now)).
		Msg("moderation completed")

	return result, nil
}

// Modality returns the modality this agent moderates.
func (a *LLMAgent) Modality() models.Modality {
	return a.modality
}

// buildPrompt assembles the fixed instructions, the output contract and
// the content under review into a single prompt.
func (a *LLMAgent) buildPrompt(input models.Input) string {
	var b strings.Builder

	b.WriteString(strings.TrimSpace(a.instructions))
	b.WriteString("\n\nOUTPUT FORMAT\nRespond ONLY in JSON with exactly these keys:\n{")
	for i, flag := range a.schema.Flags {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: <bool>", flag)
	}
	b.WriteString(`, "rationale": "<string>"`)
	if a.schema.HasTranscription {
		b.WriteString(`, "transcription": "<string>"`)
	}
	b.WriteString("}\n")

	if input.Modality == models.ModalityText {
		fmt.Fprintf(&b, "\nCONTENT UNDER REVIEW\n%s\n", input.Text)
	} else {
		fmt.Fprintf(&b, "\nPlease analyze the attached %s for moderation.\n", input.Modality)
	}

	return b.String()
}
