package agent

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/acmelabs/moderation-agent/internal/config"
	"github.com/acmelabs/moderation-agent/internal/models"
)

func registryConfig() *config.AgentsConfig {
	cfg := &config.AgentsConfig{}
	cfg.Agents.Moderators = []config.AgentConfiguration{
		{
			Modality:     "text",
			Enabled:      true,
			Instructions: "Review text.",
			UnsafeFlags:  []string{"contains_pii"},
			Model:        &config.ModelConfig{MaxTokens: 512},
		},
		{
			Modality:     "image",
			Enabled:      true,
			Instructions: "Review images.",
			UnsafeFlags:  []string{"is_disturbing"},
			Model:        &config.ModelConfig{MaxTokens: 512},
		},
		{
			Modality:     "video",
			Enabled:      false, // disabled, should be skipped
			Instructions: "Review videos.",
			Model:        &config.ModelConfig{MaxTokens: 512},
		},
	}
	return cfg
}

func TestNewRegistry(t *testing.T) {
	logger := zerolog.Nop()

	registry, err := NewRegistry(registryConfig(), &MockLLMClient{}, &logger)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	if _, err := registry.Get(models.ModalityText); err != nil {
		t.Errorf("Expected text agent, got error: %v", err)
	}
	if _, err := registry.Get(models.ModalityImage); err != nil {
		t.Errorf("Expected image agent, got error: %v", err)
	}

	_, err = registry.Get(models.ModalityVideo)
	if !errors.Is(err, ErrAgentNotFound) {
		t.Errorf("Expected ErrAgentNotFound for disabled agent, got %v", err)
	}
}

func TestNewRegistry_NilConfig(t *testing.T) {
	logger := zerolog.Nop()

	if _, err := NewRegistry(nil, &MockLLMClient{}, &logger); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestNewRegistry_NoEnabledAgents(t *testing.T) {
	logger := zerolog.Nop()

	cfg := registryConfig()
	for i := range cfg.Agents.Moderators {
		cfg.Agents.Moderators[i].Enabled = false
	}

	if _, err := NewRegistry(cfg, &MockLLMClient{}, &logger); err == nil {
		t.Error("Expected error when no agents are enabled")
	}
}
