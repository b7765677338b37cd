package stream

import "context"

// StreamConsumer pulls moderation events from a message stream and runs
// them through the moderator. Setup creates whatever the provider needs
// (consumer groups etc.) before Start enters the read loop.
type StreamConsumer interface {
	Setup(ctx context.Context) error
	Start(ctx context.Context) error
	Stop() error
}
