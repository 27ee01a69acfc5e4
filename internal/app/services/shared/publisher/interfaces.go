package publisher

import (
	"context"

	"github.com/rabbitmq/amqp091-go"
)

// ChannelPublisher is the subset of *amqp091.Channel used for publishing.
type ChannelPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}
