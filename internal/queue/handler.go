package queue

import (
	"context"

	"github.com/OFFIS-RIT/greenlens/pkg/logger"

	"github.com/rabbitmq/amqp091-go"
)

// HandleProcessingError moves a failed delivery to the queue's DLQ and acks
// it. When the DLQ publish fails the delivery is requeued instead.
func HandleProcessingError(ctx context.Context, ch Publisher, msg amqp091.Delivery, queueName string, cause error) {
	dlqName := DLQName(queueName)
	headers := msg.Headers
	if headers == nil {
		headers = amqp091.Table{}
	}
	if cause != nil {
		headers["x-error"] = cause.Error()
	}

	logger.Info("[Queue] Sending message to DLQ", "dlq", dlqName)
	pubErr := ch.PublishWithContext(ctx, "", dlqName, false, false, amqp091.Publishing{
		ContentType:  msg.ContentType,
		Body:         msg.Body,
		Headers:      headers,
		DeliveryMode: amqp091.Persistent,
	})
	if pubErr != nil {
		logger.Error("[Queue] Failed to publish to DLQ", "dlq", dlqName, "err", pubErr)
		if err := msg.Nack(false, true); err != nil {
			logger.Error("[Queue] Failed to nack message", "err", err)
		}
		return
	}
	if err := msg.Ack(false); err != nil {
		logger.Error("[Queue] Failed to ack message", "err", err)
	}
}
