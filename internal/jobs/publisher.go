package jobs

import (
	"context"
	"encoding/json"

	"rentora/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const mailRoutingKey = "mail.send"

// MailJob is one queued outbound email.
type MailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Publisher enqueues background jobs.
type Publisher interface {
	PublishMail(ctx context.Context, job MailJob) error
	Close() error
}

// NewPublisher builds an AMQP publisher, or a noop publisher when AMQP is not
// configured or unreachable so the rest of the service keeps working.
func NewPublisher(amqpURL, exchange string, l *logger.Logger) Publisher {
	if amqpURL == "" {
		l.Infof("amqp disabled, mail jobs will be dropped")
		return noopPublisher{}
	}

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		l.Errorf("amqp dial failed, using noop publisher: %v", err)
		return noopPublisher{}
	}

	ch, err := conn.Channel()
	if err != nil {
		l.Errorf("amqp channel failed, using noop publisher: %v", err)
		_ = conn.Close()
		return noopPublisher{}
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		l.Errorf("amqp exchange declare failed, using noop publisher: %v", err)
		_ = ch.Close()
		_ = conn.Close()
		return noopPublisher{}
	}

	l.Infof("amqp connected exchange=%s", exchange)
	return &amqpPublisher{conn: conn, ch: ch, exchange: exchange, logger: l}
}

type amqpPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   *logger.Logger
}

func (p *amqpPublisher) PublishMail(ctx context.Context, job MailJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, mailRoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		p.logger.Errorf("amqp publish failed: %v", err)
	}
	return err
}

func (p *amqpPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}

type noopPublisher struct{}

func (noopPublisher) PublishMail(ctx context.Context, job MailJob) error { return nil }
func (noopPublisher) Close() error                                       { return nil }
