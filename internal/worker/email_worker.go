package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the body of a QueueEmail job.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Sender delivers one plain-text e-mail. infra.Mailer satisfies it.
type Sender interface {
	Send(to, subject, body string) error
}

// EmailWorker sends vendor notifications (invitations and due-date reminders).
type EmailWorker struct {
	mailer Sender
}

func NewEmailWorker(mailer Sender) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

var errNoRecipient = errors.New("email job without recipient")

// Process returns nil for payloads that can never succeed so they are not retried.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil
	}
	if payload.ToEmail == "" {
		log.Warn().Err(errNoRecipient).Msg("email_worker: skipping")
		return nil
	}
	if err := w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body); err != nil {
		return err
	}
	log.Info().Str("to", payload.ToEmail).Str("subject", payload.Subject).Msg("email_worker: sent")
	return nil
}
