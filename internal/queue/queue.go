package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/OFFIS-RIT/greenlens/internal/util"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"

	"github.com/rabbitmq/amqp091-go"
)

const (
	AuditQueue  = "audit_queue"
	IngestQueue = "ingest_queue"

	statusExchange = "audit_status"
)

// Queues lists every work queue the worker consumes.
var Queues = []string{AuditQueue, IngestQueue}

// URL builds the broker URL from the RABBITMQ_* variables.
func URL() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		util.GetEnv("RABBITMQ_USER"),
		util.GetEnv("RABBITMQ_PASSWORD"),
		util.GetEnvString("RABBITMQ_HOST", "localhost"),
		util.GetEnvString("RABBITMQ_PORT", "5672"),
	)
}

func Init() *amqp091.Connection {
	conn, err := amqp091.Dial(URL())
	if err != nil {
		logger.Fatal("Failed to connect to RabbitMQ", "err", err)
	}
	return conn
}

// DLQName returns the dead letter queue of queueName.
func DLQName(queueName string) string {
	return queueName + "_dlq"
}

// SetupQueues declares each queue with its dead letter queue, plus the
// status exchange. Messages are never retried; failed ones go to the DLQ.
func SetupQueues(ch *amqp091.Channel, queueNames []string) error {
	if err := ch.ExchangeDeclare(statusExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", statusExchange, err)
	}

	for _, name := range queueNames {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", name, err)
		}
		if _, err := ch.QueueDeclare(DLQName(name), true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", DLQName(name), err)
		}
	}
	return nil
}

// Publisher is the subset of *amqp091.Channel used for publishing.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

func PublishFIFO(ctx context.Context, ch Publisher, queueName string, data []byte) error {
	return ch.PublishWithContext(ctx, "", queueName, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		Body:         data,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
	})
}

// PublishTopic publishes to the status exchange, e.g. "audit.completed".
func PublishTopic(ctx context.Context, ch Publisher, topic string, data []byte) error {
	return ch.PublishWithContext(ctx, statusExchange, topic, false, false, amqp091.Publishing{
		ContentType: "application/json",
		Body:        data,
		Timestamp:   time.Now(),
	})
}
