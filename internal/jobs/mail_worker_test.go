package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"

	"rentora/pkg/logger"
)

type mailerStub struct {
	sent []MailJob
	err  error
}

func (m *mailerStub) Send(ctx context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, MailJob{To: to, Subject: subject, Body: body})
	return nil
}

func TestMailWorkerDispatchesJobToMailer(t *testing.T) {
	mailer := &mailerStub{}
	w := NewMailWorker("", "rentora.mail", mailer, logger.NewNop())

	body, err := json.Marshal(MailJob{To: "alice@example.com", Subject: "Welcome", Body: "hi"})
	require.NoError(t, err)

	w.handle(context.Background(), amqp.Delivery{Body: body})

	require.Len(t, mailer.sent, 1)
	require.Equal(t, "alice@example.com", mailer.sent[0].To)
	require.Equal(t, "Welcome", mailer.sent[0].Subject)
	require.Equal(t, "hi", mailer.sent[0].Body)
}

func TestMailWorkerSkipsMalformedJob(t *testing.T) {
	mailer := &mailerStub{}
	w := NewMailWorker("", "rentora.mail", mailer, logger.NewNop())

	w.handle(context.Background(), amqp.Delivery{Body: []byte("not json")})

	require.Empty(t, mailer.sent)
}

func TestMailWorkerMailerFailureDoesNotPanic(t *testing.T) {
	mailer := &mailerStub{err: errors.New("smtp down")}
	w := NewMailWorker("", "rentora.mail", mailer, logger.NewNop())

	body, err := json.Marshal(MailJob{To: "bob@example.com", Subject: "s", Body: "b"})
	require.NoError(t, err)

	w.handle(context.Background(), amqp.Delivery{Body: body})

	require.Empty(t, mailer.sent)
}

func TestMailWorkerRunWithoutBrokerReturnsNil(t *testing.T) {
	w := NewMailWorker("", "rentora.mail", &mailerStub{}, logger.NewNop())
	require.NoError(t, w.Run(context.Background()))
}
