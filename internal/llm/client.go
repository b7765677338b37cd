package llm

import (
	"context"
)

// LLMClient invokes a multimodal LLM. Both moderation agents and the
// simulated customer go through this interface, so tests can swap in a
// mock without real API calls.
type LLMClient interface {
	InvokeModel(ctx context.Context, request LLMRequest) (*LLMResponse, error)
	InvokeModelWithRetry(ctx context.Context, request LLMRequest) (*LLMResponse, error)
}
