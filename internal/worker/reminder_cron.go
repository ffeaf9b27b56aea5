package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/embunadw/E-Procurement/internal/repository"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// DueLister finds invited vendors of approved RFQs due in [from, to).
// repository.RfqRepository satisfies it.
type DueLister interface {
	DueBetween(ctx context.Context, from, to time.Time) ([]repository.ReminderRow, error)
}

// EmailEnqueuer is satisfied by *Dispatcher.
type EmailEnqueuer interface {
	EnqueueEmail(ctx context.Context, payload interface{}) error
}

// StartReminderCron schedules SendDueReminders on spec in loc and stops the
// scheduler when ctx is cancelled.
func StartReminderCron(ctx context.Context, spec string, loc *time.Location, rfqs DueLister, queue EmailEnqueuer) (*cron.Cron, error) {
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	_, err := c.AddFunc(spec, func() {
		runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		defer cancel()
		n, err := SendDueReminders(runCtx, rfqs, queue, time.Now().In(loc))
		if err != nil {
			log.Error().Err(err).Msg("reminder_cron: run failed")
			return
		}
		log.Info().Int("queued", n).Msg("reminder_cron: reminders queued")
	})
	if err != nil {
		return nil, fmt.Errorf("reminder cron %q: %w", spec, err)
	}
	c.Start()
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
		log.Info().Msg("reminder_cron: stopped")
	}()
	log.Info().Str("spec", spec).Msg("reminder_cron: scheduled")
	return c, nil
}

// SendDueReminders queues one e-mail per invited vendor of every RFQ due on
// the calendar day after now, and returns how many were queued.
func SendDueReminders(ctx context.Context, rfqs DueLister, queue EmailEnqueuer, now time.Time) (int, error) {
	y, m, d := now.Date()
	from := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 1)

	rows, err := rfqs.DueBetween(ctx, from, to)
	if err != nil {
		return 0, err
	}
	queued := 0
	for _, r := range rows {
		payload := EmailJobPayload{
			ToEmail: r.VendorEmail,
			Subject: fmt.Sprintf("Reminder: %s is due tomorrow", r.RfqNumber),
			Body: fmt.Sprintf("Dear %s,\n\nThe quotation period for %s (%s) closes on %s.\n",
				r.VendorName, r.RfqNumber, r.RfqTitle, r.RfqDuedate.In(now.Location()).Format("02 Jan 2006 15:04")),
		}
		if err := queue.EnqueueEmail(ctx, payload); err != nil {
			log.Error().Err(err).Int("rfq_id", r.RfqID).Int("vendor_id", r.VendorID).Msg("reminder_cron: enqueue")
			continue
		}
		queued++
	}
	return queued, nil
}
