package queue

import (
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/graphlens/lens/internal/util"
	"github.com/graphlens/lens/pkg/logger"
)

// RefreshQueue carries pipeline-completion notifications. Each message
// names an artifact location; consuming one supersedes the current
// in-memory graph with a fresh load.
const RefreshQueue = "artifact_refresh_queue"

// Configured reports whether RabbitMQ connection settings are present.
// The refresh queue is optional; without it loads are purely user-driven.
func Configured() bool {
	return util.GetEnv("RABBITMQ_HOST") != ""
}

// Init connects to RabbitMQ using RABBITMQ_* environment variables.
func Init() (*amqp091.Connection, error) {
	user := util.GetEnv("RABBITMQ_USER")
	pass := util.GetEnv("RABBITMQ_PASSWORD")
	host := util.GetEnv("RABBITMQ_HOST")
	port := util.GetEnvString("RABBITMQ_PORT", "5672")

	connURL := fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		user,
		pass,
		host,
		port,
	)

	conn, err := amqp091.Dial(connURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return conn, nil
}

// SetupQueues declares the refresh queue and its dead-letter sibling.
func SetupQueues(ch *amqp091.Channel) error {
	_, err := ch.QueueDeclare(
		RefreshQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %q: %w", RefreshQueue, err)
	}

	dlqName := RefreshQueue + "_dlq"
	_, err = ch.QueueDeclare(
		dlqName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %q: %w", dlqName, err)
	}

	return nil
}

// Publish enqueues a persistent message on the named queue.
func Publish(ch *amqp091.Channel, queueName string, data []byte) error {
	q, err := ch.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         data,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
	}

	return ch.Publish(
		"",
		q.Name,
		false,
		false,
		publishing,
	)
}

// Consume opens a manual-ack delivery channel on the named queue.
func Consume(ch *amqp091.Channel, queueName string) (<-chan amqp091.Delivery, error) {
	deliveries, err := ch.Consume(
		queueName,
		"",    // consumer tag
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to consume queue %q: %w", queueName, err)
	}
	logger.Info("[Queue] Consuming", "queue", queueName)
	return deliveries, nil
}
