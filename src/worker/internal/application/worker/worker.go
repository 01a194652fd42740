package worker

import (
	"github.com/apex/log"
	amqp "github.com/rabbitmq/amqp091-go"
)

type MessageChannel <-chan amqp.Delivery

// MessageHandler processes one queue delivery.
type MessageHandler interface {
	HandleMessage(message amqp.Delivery) error
}

func NewQueueWorker(channel MessageChannel, handler MessageHandler) QueueWorker {
	return QueueWorker{
		channel: channel,
		handler: handler,
	}
}

// QueueWorker drains the job queue, acking messages that were
// handled and dropping ones that were not. Failed jobs are already
// marked failed in the DB by the router, so requeueing them would
// only repeat the failure.
type QueueWorker struct {
	channel MessageChannel
	handler MessageHandler
}

func (q QueueWorker) Start() {
	log.Info("Worker started, waiting for jobs")

	for message := range q.channel {
		q.handleMessage(message)
	}

	log.Info("Message channel closed, worker stopping")
}

func (q QueueWorker) handleMessage(message amqp.Delivery) {
	logger := log.WithField("message_type", message.Type)

	err := q.handler.HandleMessage(message)
	if err != nil {
		logger.WithError(err).Error("Failed to handle message")

		nackErr := message.Nack(false, false)
		if nackErr != nil {
			logger.WithError(nackErr).Error("Failed to nack message")
		}
		return
	}

	ackErr := message.Ack(false)
	if ackErr != nil {
		logger.WithError(ackErr).Error("Failed to ack message")
	}
}
