package moderator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/acmelabs/moderation-agent/internal/agent"
	"github.com/acmelabs/moderation-agent/internal/models"
	"github.com/acmelabs/moderation-agent/internal/policy"
	"github.com/acmelabs/moderation-agent/internal/tracing"
)

// Outcome pairs a validated moderation result with the policy decision
// derived from it.
type Outcome struct {
	Result   models.Result   `json:"result"`
	Decision models.Decision `json:"decision"`
	Feedback string          `json:"feedback"`
}

// Moderator routes an input to the agent for its modality, applies the
// unsafe-flag policy and records a moderate_<modality> span. One call
// in, one resolved outcome or an explicit error out.
type Moderator struct {
	registry *agent.Registry
	policy   *policy.Policy
	tracer   trace.Tracer
	logger   *zerolog.Logger
}

func New(registry *agent.Registry, pol *policy.Policy, logger *zerolog.Logger) *Moderator {
	return &Moderator{
		registry: registry,
		policy:   pol,
		tracer:   tracing.Tracer("moderator"),
		logger:   logger,
	}
}

func (m *Moderator) Moderate(ctx context.Context, input models.Input) (Outcome, error) {
	ctx, span := m.tracer.Start(ctx, fmt.Sprintf("moderate_%s", input.Modality))
	defer span.End()

	if input.Modality == models.ModalityText {
		span.SetAttributes(attribute.Int("input.text.length", len(input.Text)))
	} else {
		span.SetAttributes(tracing.MediaAttributes(input.MediaType, len(input.Media))...)
	}

	a, err := m.registry.Get(input.Modality)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Outcome{}, err
	}

	result, err := a.Moderate(ctx, input)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Outcome{}, err
	}

	for flag, value := range result.Flags {
		span.SetAttributes(attribute.Bool("output."+flag, value))
	}
	span.SetAttributes(attribute.String("output.rationale", result.Rationale))

	decision, feedback := m.policy.Decide(result)
	span.SetAttributes(attribute.String("output.decision", string(decision)))

	m.logger.Info().
		Str("modality", string(input.Modality)).
		Str("decision", string(decision)).
		Msg("moderation resolved")

	return Outcome{
		Result:   result,
		Decision: decision,
		Feedback: feedback,
	}, nil
}
