package utils

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Unacked requests a consumer may hold; ranking is CPU bound, so one
const prefetch = 1

// DeclareQueue declares the durable request queue shared by every worker
// and limits ch to prefetch unacked deliveries
func DeclareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	queue, err := ch.QueueDeclare(name, true, false, false, false, nil)
	if err != nil {
		return queue, fmt.Errorf("declare queue %s: %w", name, err)
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return queue, fmt.Errorf("set prefetch on %s: %w", name, err)
	}
	return queue, nil
}

// DeclareReplyQueue declares a server-named queue private to this connection
func DeclareReplyQueue(ch *amqp.Channel) (amqp.Queue, error) {
	queue, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return queue, fmt.Errorf("declare reply queue: %w", err)
	}
	return queue, nil
}

// Consume registers a manual-ack consumer on queue
func Consume(ch *amqp.Channel, queue string) (<-chan amqp.Delivery, error) {
	return ch.Consume(
		queue, // queue
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
}

// FailOnNack puts the message back in the queue after a failed handling
func FailOnNack(d amqp.Delivery, err error) {
	WarnLog("queue", "Could not handle message %s: %v", d.CorrelationId, err)
	// Message will be re-added to the queue
	if err = d.Nack(false, true); err != nil {
		WarnLog("queue", "Could not NACK to message queue: %v", err)
	}
}
