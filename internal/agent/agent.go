package agent

import (
	"context"

	"github.com/acmelabs/moderation-agent/internal/models"
)

// Agent issues one LLM call per invocation and returns a validated
// moderation result for its modality, or an explicit error. Partial or
// malformed results are never returned.
type Agent interface {
	Moderate(ctx context.Context, input models.Input) (models.Result, error)
}
