package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/acmelabs/moderation-agent/internal/models"
	"github.com/acmelabs/moderation-agent/internal/moderator"
)

type Consumer struct {
	client       *redis.Client
	stream       string
	groupID      string
	consumerName string
	moderator    *moderator.Moderator
	logger       *zerolog.Logger
}

func NewConsumer(client *redis.Client, stream string, groupID string, consumerName string, mod *moderator.Moderator, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       stream,
		groupID:      groupID,
		consumerName: consumerName,
		moderator:    mod,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, msg := range msgs[0].Messages {
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) Stop() error {
	// No-op
	return nil
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	// decode json
	payload, ok := msg.Values["payload"].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("Missing payload field")
		c.ack(ctx, msg.ID)
		return
	}

	var event models.ModerationEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		c.ack(ctx, msg.ID) // bad message, ACK to skip it
		return
	}

	input, err := normalize(event)
	if err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Invalid moderation event")
		c.ack(ctx, msg.ID)
		return
	}

	outcome, err := c.moderator.Moderate(ctx, input)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("id", msg.ID).
			Str("event_id", event.EventID).
			Msg("Moderation failed")
		c.ack(ctx, msg.ID)
		return
	}

	c.logger.Info().
		Str("id", msg.ID).
		Str("event_id", event.EventID).
		Str("decision", string(outcome.Decision)).
		Msg("Moderation complete")

	c.ack(ctx, msg.ID)
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}

func normalize(event models.ModerationEvent) (models.Input, error) {
	switch event.Modality {
	case models.ModalityText:
		if event.Text == "" {
			return models.Input{}, fmt.Errorf("event %s: text is required", event.EventID)
		}
		return models.Input{Modality: models.ModalityText, Text: event.Text}, nil
	case models.ModalityImage, models.ModalityAudio, models.ModalityVideo:
		if len(event.Media) == 0 || event.MediaType == "" {
			return models.Input{}, fmt.Errorf("event %s: media and media_type are required", event.EventID)
		}
		return models.Input{
			Modality:  event.Modality,
			Media:     event.Media,
			MediaType: event.MediaType,
		}, nil
	default:
		return models.Input{}, fmt.Errorf("event %s: unknown modality %q", event.EventID, event.Modality)
	}
}
