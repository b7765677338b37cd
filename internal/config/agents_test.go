package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "agents.yaml")

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	t.Setenv("AGENTS_CONFIG_PATH", configPath)
}

func TestLoadAgentsConfig_Success(t *testing.T) {
	writeConfig(t, `agents:
  default_model:
    max_tokens: 512
    temperature: 0.0
    retry: true

  moderators:
    - modality: text
      enabled: true
      description: "Reviews trainee messages"
      unsafe_flags: [is_unfriendly, contains_pii]
      instructions: |
        Review the message.
      model:
        max_tokens: 256
        retry: false

    - modality: image
      enabled: true
      description: "Reviews images"
      unsafe_flags: [is_disturbing]
      instructions: |
        Review the image.
`)

	cfg, err := LoadAgentsConfig()
	if err != nil {
		t.Fatalf("LoadAgentsConfig() failed: %v", err)
	}

	if len(cfg.Agents.Moderators) != 2 {
		t.Fatalf("Expected 2 moderators, got %d", len(cfg.Agents.Moderators))
	}

	text := cfg.Agents.Moderators[0]
	if text.Modality != "text" {
		t.Errorf("Expected modality text, got %s", text.Modality)
	}
	if text.Model.MaxTokens != 256 {
		t.Errorf("Expected per-agent max_tokens=256, got %d", text.Model.MaxTokens)
	}
	if text.Model.Retry {
		t.Error("Expected per-agent retry=false")
	}

	// Image agent has no model block: inherits the default model.
	image := cfg.Agents.Moderators[1]
	if image.Model == nil {
		t.Fatal("Expected default model to be applied")
	}
	if image.Model.MaxTokens != 512 {
		t.Errorf("Expected inherited max_tokens=512, got %d", image.Model.MaxTokens)
	}
	if !image.Model.Retry {
		t.Error("Expected inherited retry=true")
	}
}

func TestLoadAgentsConfig_DefaultMaxTokens(t *testing.T) {
	writeConfig(t, `agents:
  moderators:
    - modality: text
      enabled: true
      instructions: "Review the message."
`)

	cfg, err := LoadAgentsConfig()
	if err != nil {
		t.Fatalf("LoadAgentsConfig() failed: %v", err)
	}

	if cfg.Agents.Moderators[0].Model.MaxTokens != 1024 {
		t.Errorf("Expected default max_tokens=1024, got %d", cfg.Agents.Moderators[0].Model.MaxTokens)
	}
}

func TestLoadAgentsConfig_MissingFile(t *testing.T) {
	t.Setenv("AGENTS_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := LoadAgentsConfig(); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "no moderators",
			content: "agents:\n  moderators: []\n",
		},
		{
			name: "unknown modality",
			content: `agents:
  moderators:
    - modality: hologram
      enabled: true
      instructions: "Review."
`,
		},
		{
			name: "duplicate modality",
			content: `agents:
  moderators:
    - modality: text
      enabled: true
      instructions: "Review."
    - modality: text
      enabled: true
      instructions: "Review again."
`,
		},
		{
			name: "missing instructions",
			content: `agents:
  moderators:
    - modality: text
      enabled: true
`,
		},
		{
			name: "unsafe flag outside schema",
			content: `agents:
  moderators:
    - modality: text
      enabled: true
      instructions: "Review."
      unsafe_flags: [is_disturbing]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeConfig(t, tt.content)

			if _, err := LoadAgentsConfig(); err == nil {
				t.Error("Expected validation error, got none")
			}
		})
	}
}
