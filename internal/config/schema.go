package config

// AgentsConfig is the root of configs/agents.yaml.
type AgentsConfig struct {
	Agents AgentsSection `yaml:"agents"`
}

type AgentsSection struct {
	DefaultModel ModelConfig          `yaml:"default_model"`
	Moderators   []AgentConfiguration `yaml:"moderators"`
}

// AgentConfiguration describes one modality-specific moderation agent:
// the fixed system instructions it sends with every call and the subset
// of schema flags that block content when set.
type AgentConfiguration struct {
	Modality     string       `yaml:"modality"`
	Enabled      bool         `yaml:"enabled"`
	Description  string       `yaml:"description"`
	Instructions string       `yaml:"instructions"`
	UnsafeFlags  []string     `yaml:"unsafe_flags"`
	Model        *ModelConfig `yaml:"model"`
}

type ModelConfig struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	Retry       bool    `yaml:"retry"`
}
