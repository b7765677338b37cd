package agent

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/acmelabs/moderation-agent/internal/config"
	"github.com/acmelabs/moderation-agent/internal/llm"
	"github.com/acmelabs/moderation-agent/internal/models"
)

var ErrAgentNotFound = errors.New("no moderation agent for modality")

// Registry holds the moderation agents built from configuration, looked
// up by modality.
type Registry struct {
	agents map[models.Modality]Agent
}

func NewRegistry(cfg *config.AgentsConfig, llmClient llm.LLMClient, logger *zerolog.Logger) (*Registry, error) {
	if cfg == nil {
		return nil, fmt.Errorf("agents config is nil")
	}

	agents := make(map[models.Modality]Agent)

	for _, agentCfg := range cfg.Agents.Moderators {
		// Skip disabled agents
		if !agentCfg.Enabled {
			logger.Info().
				Str("modality", agentCfg.Modality).
				Msg("agent disabled in config, skipping")
			continue
		}

		a, err := NewLLMAgent(agentCfg, llmClient, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s agent: %w", agentCfg.Modality, err)
		}

		agents[a.Modality()] = a

		logger.Info().
			Str("modality", agentCfg.Modality).
			Int("max_tokens", agentCfg.Model.MaxTokens).
			Float64("temperature", agentCfg.Model.Temperature).
			Bool("retry", agentCfg.Model.Retry).
			Strs("unsafe_flags", agentCfg.UnsafeFlags).
			Msg("agent created successfully")
	}

	if len(agents) == 0 {
		return nil, fmt.Errorf("no enabled agents found in config")
	}

	logger.Info().
		Int("total_agents", len(agents)).
		Msg("agent registry built successfully")

	return &Registry{agents: agents}, nil
}

func (r *Registry) Get(modality models.Modality) (Agent, error) {
	a, exist := r.agents[modality]
	if !exist {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, modality)
	}

	return a, nil
}
