package publisher

import (
	"context"
	"petcare-billing-service/internal/app/contracts"
	"petcare-billing-service/internal/pkg/constvars"
	"petcare-billing-service/internal/pkg/dto/requests"
	"petcare-billing-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type invoicePublisher struct {
	Channel ChannelPublisher
	Queue   string
	Log     *zap.Logger
}

func NewInvoicePublisher(channel ChannelPublisher, queue string, logger *zap.Logger) contracts.InvoicePublisher {
	return &invoicePublisher{
		Channel: channel,
		Queue:   queue,
		Log:     logger,
	}
}

func (p *invoicePublisher) Publish(ctx context.Context, event *requests.InvoiceEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	headers := amqp091.Table{
		"message_type":     "JSON",
		"event_type":       event.EventType,
		"requeue_strategy": "DROP",
	}

	message := amqp091.Publishing{
		ContentType:   constvars.MIMEApplicationJSON,
		Body:          body,
		DeliveryMode:  amqp091.Persistent,
		Priority:      0,
		Headers:       headers,
		MessageId:     event.InvoiceID,
		CorrelationId: requestID,
	}

	err = p.Channel.PublishWithContext(ctx, "", p.Queue, false, false, message)
	if err != nil {
		p.Log.Error("invoicePublisher.Publish error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueKey, p.Queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, p.Queue)
	}

	p.Log.Info("invoicePublisher.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueKey, p.Queue),
		zap.String(constvars.LoggingInvoiceIDKey, event.InvoiceID),
	)
	return nil
}
