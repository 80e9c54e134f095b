package messaging

import (
	"context"
	"log/slog"
	"sync"

	"hostel-backoffice/internal/pkg/config"
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends outbox jobs to durable queues named prefix+topic.
// The connection is opened on first use and reopened after a failure.
type Publisher struct {
	url    string
	prefix string

	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	declared map[string]struct{}
}

func NewPublisher(cfg config.AMQPConfig) *Publisher {
	return &Publisher{
		url:      cfg.URL,
		prefix:   cfg.QueuePrefix,
		declared: map[string]struct{}{},
	}
}

func (p *Publisher) QueueName(topic string) string {
	return p.prefix + topic
}

func (p *Publisher) Publish(ctx context.Context, job shared.NotificationJob) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureChannel(); err != nil {
		return err
	}

	queue := p.QueueName(job.Topic)
	if _, ok := p.declared[queue]; !ok {
		if _, err := p.ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			p.reset()
			return errs.Wrapf(err, "failed to declare queue %s", queue)
		}
		p.declared[queue] = struct{}{}
	}

	err := p.ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    job.ID.String(),
		Type:         job.Kind,
		Timestamp:    job.CreatedAt,
		Body:         job.Payload,
	})
	if err != nil {
		p.reset()
		return errs.Wrapf(err, "failed to publish %s to %s", job.Kind, queue)
	}
	return nil
}

func (p *Publisher) ensureChannel() error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return errs.Wrap(err, "failed to dial broker")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return errs.Wrap(err, "failed to open channel")
	}
	p.conn, p.ch = conn, ch
	return nil
}

// reset drops the connection; the next Publish dials again and redeclares queues.
func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
	clear(p.declared)
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil
	}
	slog.Info("closing broker connection")
	p.reset()
	return nil
}
