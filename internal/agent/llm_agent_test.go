package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/acmelabs/moderation-agent/internal/config"
	"github.com/acmelabs/moderation-agent/internal/llm"
	"github.com/acmelabs/moderation-agent/internal/models"
)

// MockLLMClient records the last request and returns a canned response.
type MockLLMClient struct {
	ResponseToReturn *llm.LLMResponse
	ErrorToReturn    error
	LastRequest      llm.LLMRequest
	RetryCalled      bool
}

func (m *MockLLMClient) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	m.LastRequest = request
	return m.ResponseToReturn, m.ErrorToReturn
}

func (m *MockLLMClient) InvokeModelWithRetry(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	m.RetryCalled = true
	return m.InvokeModel(ctx, request)
}

func textAgentConfig(retry bool) config.AgentConfiguration {
	return config.AgentConfiguration{
		Modality:     "text",
		Enabled:      true,
		Instructions: "Review the message for tone and PII.",
		UnsafeFlags:  []string{"contains_pii"},
		Model: &config.ModelConfig{
			MaxTokens:   1024,
			Temperature: 0.0,
			Retry:       retry,
		},
	}
}

func TestNewLLMAgent_Success(t *testing.T) {
	logger := zerolog.Nop()

	a, err := NewLLMAgent(textAgentConfig(false), &MockLLMClient{}, &logger)
	if err != nil {
		t.Fatalf("NewLLMAgent failed: %v", err)
	}

	if a.Modality() != models.ModalityText {
		t.Errorf("Expected modality text, got %s", a.Modality())
	}
	if a.modelConfig.MaxTokens != 1024 {
		t.Errorf("Expected MaxTokens=1024, got %d", a.modelConfig.MaxTokens)
	}
}

func TestNewLLMAgent_UnknownModality(t *testing.T) {
	logger := zerolog.Nop()

	cfg := textAgentConfig(false)
	cfg.Modality = "hologram"

	_, err := NewLLMAgent(cfg, &MockLLMClient{}, &logger)
	if err == nil {
		t.Error("Expected error for unknown modality")
	}
}

func TestNewLLMAgent_NilModelConfig(t *testing.T) {
	logger := zerolog.Nop()

	cfg := textAgentConfig(false)
	cfg.Model = nil // Should not happen after config loading

	_, err := NewLLMAgent(cfg, &MockLLMClient{}, &logger)
	if err == nil {
		t.Error("Expected error for nil model config")
	}
}

func TestLLMAgent_Moderate_Success(t *testing.T) {
	logger := zerolog.Nop()

	mockClient := &MockLLMClient{
		ResponseToReturn: &llm.LLMResponse{
			Content: `{"is_unfriendly": false, "is_unprofessional": false, "contains_pii": true, "rationale": "Card number present."}`,
		},
	}

	a, err := NewLLMAgent(textAgentConfig(false), mockClient, &logger)
	if err != nil {
		t.Fatalf("NewLLMAgent failed: %v", err)
	}

	input := models.Input{
		Modality: models.ModalityText,
		Text:     "Here is my card number 4111111111111111",
	}

	result, err := a.Moderate(context.Background(), input)
	if err != nil {
		t.Fatalf("Moderate failed: %v", err)
	}

	if !result.Flags["contains_pii"] {
		t.Error("Expected contains_pii=true")
	}
	if result.Rationale != "Card number present." {
		t.Errorf("Unexpected rationale: %q", result.Rationale)
	}

	prompt := mockClient.LastRequest.Prompt
	if !strings.Contains(prompt, "Review the message for tone and PII.") {
		t.Error("Prompt does not contain the configured instructions")
	}
	if !strings.Contains(prompt, "Here is my card number") {
		t.Error("Prompt does not contain the content under review")
	}
	if !strings.Contains(prompt, `"contains_pii": <bool>`) {
		t.Error("Prompt does not state the output contract")
	}
}

func TestLLMAgent_Moderate_WrongModalityInput(t *testing.T) {
	logger := zerolog.Nop()

	a, _ := NewLLMAgent(textAgentConfig(false), &MockLLMClient{}, &logger)

	_, err := a.Moderate(context.Background(), models.Input{Modality: models.ModalityImage})
	if err == nil {
		t.Error("Expected error for modality mismatch")
	}
}

func TestLLMAgent_Moderate_LLMCallFails(t *testing.T) {
	logger := zerolog.Nop()

	mockClient := &MockLLMClient{
		ErrorToReturn: errors.New("API error"),
	}

	a, _ := NewLLMAgent(textAgentConfig(false), mockClient, &logger)

	_, err := a.Moderate(context.Background(), models.Input{Modality: models.ModalityText, Text: "hello"})
	if err == nil {
		t.Error("Expected error when LLM call fails")
	}
}

func TestLLMAgent_Moderate_InvalidReply(t *testing.T) {
	logger := zerolog.Nop()

	mockClient := &MockLLMClient{
		ResponseToReturn: &llm.LLMResponse{Content: `{"verdict": "fine"}`},
	}

	a, _ := NewLLMAgent(textAgentConfig(false), mockClient, &logger)

	_, err := a.Moderate(context.Background(), models.Input{Modality: models.ModalityText, Text: "hello"})
	if err == nil {
		t.Fatal("Expected validation error for malformed reply")
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Expected *ValidationError, got %T", err)
	}
}

func TestLLMAgent_Moderate_WithRetry(t *testing.T) {
	logger := zerolog.Nop()

	mockClient := &MockLLMClient{
		ResponseToReturn: &llm.LLMResponse{
			Content: `{"is_unfriendly": false, "is_unprofessional": false, "contains_pii": false, "rationale": "Fine."}`,
		},
	}

	a, _ := NewLLMAgent(textAgentConfig(true), mockClient, &logger)

	_, err := a.Moderate(context.Background(), models.Input{Modality: models.ModalityText, Text: "hello"})
	if err != nil {
		t.Fatalf("Moderate failed: %v", err)
	}
	if !mockClient.RetryCalled {
		t.Error("Expected InvokeModelWithRetry to be used when retry is enabled")
	}
}

func TestLLMAgent_Moderate_MediaAttached(t *testing.T) {
	logger := zerolog.Nop()

	cfg := config.AgentConfiguration{
		Modality:     "image",
		Enabled:      true,
		Instructions: "Review the image.",
		UnsafeFlags:  []string{"is_disturbing"},
		Model:        &config.ModelConfig{MaxTokens: 1024},
	}

	mockClient := &MockLLMClient{
		ResponseToReturn: &llm.LLMResponse{
			Content: `{"contains_pii": false, "is_disturbing": false, "is_low_quality": false, "rationale": "Clean product photo."}`,
		},
	}

	a, err := NewLLMAgent(cfg, mockClient, &logger)
	if err != nil {
		t.Fatalf("NewLLMAgent failed: %v", err)
	}

	input := models.Input{
		Modality:  models.ModalityImage,
		Media:     []byte{0x89, 0x50, 0x4e, 0x47},
		MediaType: "image/png",
	}

	if _, err := a.Moderate(context.Background(), input); err != nil {
		t.Fatalf("Moderate failed: %v", err)
	}

	if len(mockClient.LastRequest.Media) != 1 {
		t.Fatalf("Expected 1 media part, got %d", len(mockClient.LastRequest.Media))
	}
	if mockClient.LastRequest.Media[0].MIMEType != "image/png" {
		t.Errorf("Unexpected media type: %s", mockClient.LastRequest.Media[0].MIMEType)
	}
}
