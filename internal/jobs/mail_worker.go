package jobs

import (
	"context"
	"encoding/json"

	"rentora/internal/mail"
	"rentora/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MailWorker consumes queued mail jobs and hands them to the mailer.
type MailWorker struct {
	url      string
	exchange string
	queue    string
	mailer   mail.Mailer
	logger   *logger.Logger
}

func NewMailWorker(amqpURL, exchange string, mailer mail.Mailer, l *logger.Logger) *MailWorker {
	return &MailWorker{
		url:      amqpURL,
		exchange: exchange,
		queue:    "rentora.mail.send",
		mailer:   mailer,
		logger:   l,
	}
}

// Run blocks consuming mail jobs until the context is cancelled. When AMQP is
// not configured it returns immediately.
func (w *MailWorker) Run(ctx context.Context) error {
	if w.url == "" {
		w.logger.Infof("amqp disabled, mail worker not started")
		return nil
	}

	conn, err := amqp.Dial(w.url)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(w.exchange, "topic", true, false, false, false, nil); err != nil {
		return err
	}
	q, err := ch.QueueDeclare(w.queue, true, false, false, false, nil)
	if err != nil {
		return err
	}
	if err := ch.QueueBind(q.Name, mailRoutingKey, w.exchange, false, nil); err != nil {
		return err
	}

	deliveries, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	w.logger.Infof("mail worker consuming queue=%s", w.queue)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *MailWorker) handle(ctx context.Context, d amqp.Delivery) {
	var job MailJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		w.logger.Errorf("mail job decode failed: %v", err)
		_ = d.Nack(false, false)
		return
	}
	if err := w.mailer.Send(ctx, job.To, job.Subject, job.Body); err != nil {
		w.logger.Errorf("mail send to %s failed: %v", job.To, err)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}
