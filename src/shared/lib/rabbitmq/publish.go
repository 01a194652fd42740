package rabbitmq

import (
	"github.com/cockroachdb/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher interface {
	Publish(message amqp.Publishing) error
}

func NewQueuePublisher(conn *amqp.Connection, queueName string) (QueuePublisher, error) {
	publisher := QueuePublisher{
		conn:      conn,
		queueName: queueName,
	}

	err := publisher.resetChannel()
	if err != nil {
		return QueuePublisher{}, errors.Wrap(err, "Failed to open channel to rabbitmq")
	}

	return publisher, nil
}

type QueuePublisher struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	queueName string
}

func (q *QueuePublisher) resetChannel() error {
	channel, err := q.conn.Channel()
	if err != nil {
		return errors.Wrap(err, "Failed to open channel to rabbitmq")
	}

	queue, err := channel.QueueDeclare(q.queueName, true, false, false, false, nil)
	if err != nil {
		return errors.Wrap(err, "Failed to declare queue")
	}

	q.channel = channel
	q.queueName = queue.Name
	return nil
}

func (q *QueuePublisher) Publish(message amqp.Publishing) error {
	publish := func() error {
		return q.channel.Publish("", q.queueName, false, false, message)
	}

	err := publish()
	if err == nil {
		return nil
	}

	// channels die on connection hiccups, recreate once and retry
	if errors.Is(err, amqp.ErrClosed) {
		resetErr := q.resetChannel()
		if resetErr != nil {
			return errors.Wrap(resetErr, "Failed to reset closed channel")
		}

		err = publish()
		if err != nil {
			return errors.Wrap(err, "Failed to publish message after channel reset")
		}

		return nil
	}

	return errors.Wrap(err, "Failed to publish message")
}
