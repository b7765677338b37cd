package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/acmelabs/moderation-agent/internal/models"
)

func LoadAgentsConfig() (*AgentsConfig, error) {

	path := os.Getenv("AGENTS_CONFIG_PATH")
	if path == "" {
		path = "configs/agents.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg AgentsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *AgentsConfig) {
	if cfg.Agents.DefaultModel.MaxTokens == 0 {
		cfg.Agents.DefaultModel.MaxTokens = 1024
	}

	for i := range cfg.Agents.Moderators {
		m := &cfg.Agents.Moderators[i]
		if m.Model == nil {
			model := cfg.Agents.DefaultModel
			m.Model = &model
			continue
		}
		if m.Model.MaxTokens == 0 {
			m.Model.MaxTokens = cfg.Agents.DefaultModel.MaxTokens
		}
	}
}

func (c *AgentsConfig) Validate() error {
	if len(c.Agents.Moderators) == 0 {
		return fmt.Errorf("no moderator agents configured")
	}

	seen := map[string]bool{}
	for _, m := range c.Agents.Moderators {
		schema, ok := models.SchemaFor(models.Modality(m.Modality))
		if !ok {
			return fmt.Errorf("agent %q: unknown modality", m.Modality)
		}
		if seen[m.Modality] {
			return fmt.Errorf("agent %q: duplicate modality", m.Modality)
		}
		seen[m.Modality] = true

		if m.Instructions == "" {
			return fmt.Errorf("agent %q: instructions are required", m.Modality)
		}
		for _, flag := range m.UnsafeFlags {
			if !schema.HasFlag(flag) {
				return fmt.Errorf("agent %q: unsafe flag %q is not part of the %s schema", m.Modality, flag, m.Modality)
			}
		}
	}

	return nil
}
