package dummy

import (
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/voxsplit/voxsplit-be/src/shared/lib/rabbitmq"
)

var _ rabbitmq.Publisher = &Publisher{}

func NewPublisher() *Publisher {
	return &Publisher{}
}

// Publisher records published messages instead of sending them, so
// tests can drive the pipeline one stage at a time.
type Publisher struct {
	mutex    sync.Mutex
	Messages []amqp.Publishing
}

func (p *Publisher) Publish(message amqp.Publishing) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.Messages = append(p.Messages, message)
	return nil
}

// Pop removes and returns the oldest published message.
func (p *Publisher) Pop() (amqp.Publishing, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if len(p.Messages) == 0 {
		return amqp.Publishing{}, false
	}

	message := p.Messages[0]
	p.Messages = p.Messages[1:]
	return message, true
}
