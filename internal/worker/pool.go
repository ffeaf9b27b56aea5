package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueEmail = "jobs:email"

	jobTypeEmail = "email"

	// MaxJobAttempts is how many times a job is tried before it goes to the DLQ.
	MaxJobAttempts = 3

	// popBackoff is the pause after a failed BRPOP (Redis unreachable).
	popBackoff = 2 * time.Second
)

// Job is the envelope stored in the Redis lists.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// pusher is the slice of *redis.Client the pool writes with.
type pusher interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// popper is the slice of *redis.Client the workers read with.
type popper interface {
	BRPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
}

// Dispatcher enqueues jobs with LPUSH; the pool consumes them with BRPOP.
type Dispatcher struct {
	rdb pusher
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueEmail queues an EmailJobPayload for the e-mail worker.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload interface{}) error {
	return enqueue(ctx, d.rdb, QueueEmail, Job{Type: jobTypeEmail}, payload)
}

func enqueue(ctx context.Context, rdb pusher, queue string, job Job, payload interface{}) error {
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		job.Payload = data
	}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return rdb.LPush(ctx, queue, encoded).Err()
}

// Processor handles one job payload. A returned error schedules a retry.
type Processor interface {
	Process(ctx context.Context, raw json.RawMessage) error
}

// StartWorkerPool launches numWorkers goroutines blocking on BRPOP until ctx
// is cancelled.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, email Processor) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	p := &pool{rdb: rdb, processors: map[string]Processor{jobTypeEmail: email}, backoff: popBackoff}
	for i := 0; i < numWorkers; i++ {
		go p.run(ctx, rdb, i)
	}
	log.Info().Int("workers", numWorkers).Msg("worker pool started")
}

type pool struct {
	rdb        pusher
	processors map[string]Processor
	backoff    time.Duration
}

func (p *pool) run(ctx context.Context, src popper, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", id).Msg("worker shutting down")
			return
		default:
		}

		// Wakes every 5s to notice cancellation.
		result, err := src.BRPop(ctx, 5*time.Second, QueueEmail).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			log.Debug().Err(err).Int("worker", id).Msg("worker: brpop failed, backing off")
			select {
			case <-ctx.Done():
			case <-time.After(p.backoff):
			}
			continue
		}
		if len(result) < 2 {
			continue
		}
		p.handle(ctx, result[0], result[1])
	}
}

// handle runs one job; failures are re-queued until MaxJobAttempts and then
// moved to the dead letter queue.
func (p *pool) handle(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("worker: undecodable job dropped")
		return
	}
	proc, ok := p.processors[job.Type]
	if !ok || proc == nil {
		SendToDLQ(ctx, p.rdb, queue, job.Type, job.Payload, "no processor for job type", job.Attempts)
		return
	}

	err := proc.Process(ctx, job.Payload)
	if err == nil {
		return
	}
	job.Attempts++
	if job.Attempts >= MaxJobAttempts {
		SendToDLQ(ctx, p.rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
		return
	}
	log.Warn().Err(err).Str("queue", queue).Int("attempt", job.Attempts).Msg("worker: job failed, re-queued")
	if err := enqueue(ctx, p.rdb, queue, job, nil); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("worker: re-queue failed")
	}
}
