package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/acmelabs/moderation-agent/internal/models"
	"github.com/acmelabs/moderation-agent/internal/moderator"
	"github.com/acmelabs/moderation-agent/internal/tracing"
)

// BlockedPlaceholder replaces the original content of a blocked turn.
const BlockedPlaceholder = "[Content blocked by moderation]"

// Moderator resolves an input into a moderation outcome.
type Moderator interface {
	Moderate(ctx context.Context, input models.Input) (moderator.Outcome, error)
}

// CustomerAgent produces the simulated customer's next reply.
type CustomerAgent interface {
	Reply(ctx context.Context, history []models.Turn, input models.Input) (string, error)
}

// TurnResult is what one Submit call appended to the conversation.
// Customer is nil when the trainee's turn was blocked.
type TurnResult struct {
	Trainee  models.Turn
	Customer *models.Turn
	Feedback string
}

// Session drives a turn-by-turn training conversation. Each turn is
// PENDING until the moderation outcome resolves it to BLOCKED or
// FORWARDED; only forwarded turns trigger a simulated customer reply.
// The turn log is append-only and discarded with the session.
type Session struct {
	id               string
	turns            []models.Turn
	moderator        Moderator
	customer         CustomerAgent
	tracer           trace.Tracer
	conversationSpan trace.Span
	logger           *zerolog.Logger
}

func NewSession(mod Moderator, customer CustomerAgent, logger *zerolog.Logger) *Session {
	sessionID := uuid.NewString()

	tracer := tracing.Tracer("chat")
	_, conversationSpan := tracer.Start(context.Background(), "conversation",
		trace.WithAttributes(attribute.String("session.id", sessionID)))

	logger.Info().Str("session_id", sessionID).Msg("session started")

	return &Session{
		id:               sessionID,
		moderator:        mod,
		customer:         customer,
		tracer:           tracer,
		conversationSpan: conversationSpan,
		logger:           logger,
	}
}

func (s *Session) ID() string {
	return s.id
}

// Turns returns a copy of the conversation log.
func (s *Session) Turns() []models.Turn {
	turns := make([]models.Turn, len(s.turns))
	copy(turns, s.turns)
	return turns
}

// Submit runs one trainee turn through moderation. On BLOCKED the
// displayed content is the placeholder, the rationale becomes feedback
// and no customer reply happens. On FORWARDED the content is shown and
// the simulated customer answers.
func (s *Session) Submit(ctx context.Context, input models.Input) (TurnResult, error) {
	ctx = trace.ContextWithSpan(ctx, s.conversationSpan)
	ctx, span := s.tracer.Start(ctx, "chat_turn")
	defer span.End()

	outcome, err := s.moderator.Moderate(ctx, input)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return TurnResult{}, err
	}

	turn := models.Turn{
		Speaker:   models.SpeakerTrainee,
		State:     models.TurnStateResolved,
		Decision:  outcome.Decision,
		Feedback:  outcome.Feedback,
		Result:    &outcome.Result,
		CreatedAt: time.Now(),
	}

	if outcome.Decision == models.DecisionBlocked {
		turn.Content = BlockedPlaceholder
		s.turns = append(s.turns, turn)

		span.SetAttributes(attribute.String("feedback", outcome.Feedback))
		s.logger.Info().
			Str("session_id", s.id).
			Str("modality", string(input.Modality)).
			Msg("turn blocked")

		return TurnResult{Trainee: turn, Feedback: outcome.Feedback}, nil
	}

	turn.Content = displayContent(input)
	history := s.Turns()
	s.turns = append(s.turns, turn)

	replyCtx, replySpan := s.tracer.Start(ctx, "llm_customer")
	reply, err := s.customer.Reply(replyCtx, history, input)
	replySpan.End()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return TurnResult{}, err
	}

	customerTurn := models.Turn{
		Speaker:   models.SpeakerCustomer,
		Content:   reply,
		State:     models.TurnStateResolved,
		Decision:  models.DecisionForwarded,
		CreatedAt: time.Now(),
	}
	s.turns = append(s.turns, customerTurn)

	s.logger.Info().
		Str("session_id", s.id).
		Str("modality", string(input.Modality)).
		Msg("turn forwarded")

	return TurnResult{Trainee: turn, Customer: &customerTurn, Feedback: outcome.Feedback}, nil
}

// End closes the conversation span. The turn log is not persisted.
func (s *Session) End() {
	if s.conversationSpan != nil {
		s.conversationSpan.End()
	}
	s.logger.Info().Str("session_id", s.id).Int("turns", len(s.turns)).Msg("session ended")
}

func displayContent(input models.Input) string {
	if input.Modality == models.ModalityText {
		return input.Text
	}
	return "[" + string(input.Modality) + " attachment: " + input.MediaType + "]"
}
