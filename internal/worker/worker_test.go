package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/embunadw/E-Procurement/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type fakeRedis struct {
	lists map[string][]string
}

func newFakeRedis() *fakeRedis { return &fakeRedis{lists: make(map[string][]string)} }

func (f *fakeRedis) LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	for _, v := range values {
		switch b := v.(type) {
		case []byte:
			f.lists[key] = append([]string{string(b)}, f.lists[key]...)
		case string:
			f.lists[key] = append([]string{b}, f.lists[key]...)
		}
	}
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(int64(len(f.lists[key])))
	return cmd
}

type fakeSender struct {
	err  error
	sent []EmailJobPayload
}

func (s *fakeSender) Send(to, subject, body string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, EmailJobPayload{ToEmail: to, Subject: subject, Body: body})
	return nil
}

// ── Dispatcher / pool ─────────────────────────────────────────────────────────

func TestDispatcher_EnqueueEmail(t *testing.T) {
	rdb := newFakeRedis()
	d := &Dispatcher{rdb: rdb}

	require.NoError(t, d.EnqueueEmail(context.Background(), EmailJobPayload{ToEmail: "a@x.id", Subject: "hi"}))
	require.Len(t, rdb.lists[QueueEmail], 1)

	var job Job
	require.NoError(t, json.Unmarshal([]byte(rdb.lists[QueueEmail][0]), &job))
	assert.Equal(t, "email", job.Type)
	assert.Zero(t, job.Attempts)
	assert.JSONEq(t, `{"to_email":"a@x.id","subject":"hi","body":""}`, string(job.Payload))
}

func TestPool_SuccessfulJobIsConsumed(t *testing.T) {
	rdb := newFakeRedis()
	sender := &fakeSender{}
	p := &pool{rdb: rdb, processors: map[string]Processor{jobTypeEmail: NewEmailWorker(sender)}}

	require.NoError(t, (&Dispatcher{rdb: rdb}).EnqueueEmail(context.Background(), EmailJobPayload{ToEmail: "a@x.id"}))
	raw := rdb.lists[QueueEmail][0]
	rdb.lists[QueueEmail] = nil

	p.handle(context.Background(), QueueEmail, raw)
	assert.Len(t, sender.sent, 1)
	assert.Empty(t, rdb.lists[QueueEmail])
	assert.Empty(t, rdb.lists[DLQPrefix+QueueEmail])
}

func TestPool_FailingJobEndsInDLQ(t *testing.T) {
	rdb := newFakeRedis()
	sender := &fakeSender{err: errors.New("smtp down")}
	p := &pool{rdb: rdb, processors: map[string]Processor{jobTypeEmail: NewEmailWorker(sender)}}
	require.NoError(t, (&Dispatcher{rdb: rdb}).EnqueueEmail(context.Background(), EmailJobPayload{ToEmail: "a@x.id"}))

	for attempt := 1; attempt <= MaxJobAttempts; attempt++ {
		queue := rdb.lists[QueueEmail]
		require.Len(t, queue, 1, "attempt %d", attempt)
		raw := queue[0]
		rdb.lists[QueueEmail] = nil
		p.handle(context.Background(), QueueEmail, raw)
	}

	assert.Empty(t, rdb.lists[QueueEmail])
	require.Len(t, rdb.lists[DLQPrefix+QueueEmail], 1)
	var entry DLQEntry
	require.NoError(t, json.Unmarshal([]byte(rdb.lists[DLQPrefix+QueueEmail][0]), &entry))
	assert.Equal(t, MaxJobAttempts, entry.Attempts)
	assert.Equal(t, "smtp down", entry.Reason)
}

type flakyPopper struct {
	mu    sync.Mutex
	calls int
	err   error
	jobs  []string
}

func (f *flakyPopper) BRPop(ctx context.Context, _ time.Duration, keys ...string) *redis.StringSliceCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	cmd := redis.NewStringSliceCmd(ctx)
	if len(f.jobs) > 0 {
		cmd.SetVal([]string{keys[0], f.jobs[0]})
		f.jobs = f.jobs[1:]
		return cmd
	}
	cmd.SetErr(f.err)
	return cmd
}

func (f *flakyPopper) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestPool_RunBacksOffWhenRedisFails(t *testing.T) {
	src := &flakyPopper{err: errors.New("dial tcp: connection refused")}
	p := &pool{rdb: newFakeRedis(), processors: map[string]Processor{}, backoff: 100 * time.Millisecond}

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	done := make(chan struct{})
	go func() {
		p.run(ctx, src, 0)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
	assert.GreaterOrEqual(t, src.count(), 1)
	assert.LessOrEqual(t, src.count(), 4)
}

func TestPool_RunProcessesPoppedJob(t *testing.T) {
	sender := &fakeSender{}
	rdb := newFakeRedis()
	require.NoError(t, (&Dispatcher{rdb: rdb}).EnqueueEmail(context.Background(), EmailJobPayload{ToEmail: "a@x.id"}))
	src := &flakyPopper{err: redis.Nil, jobs: rdb.lists[QueueEmail]}
	rdb.lists[QueueEmail] = nil
	p := &pool{rdb: rdb, processors: map[string]Processor{jobTypeEmail: NewEmailWorker(sender)}, backoff: time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	p.run(ctx, src, 0)

	assert.Len(t, sender.sent, 1)
}

func TestEmailWorker_SkipsUnusablePayloads(t *testing.T) {
	sender := &fakeSender{}
	w := NewEmailWorker(sender)

	assert.NoError(t, w.Process(context.Background(), json.RawMessage(`{"to_email":""}`)))
	assert.NoError(t, w.Process(context.Background(), json.RawMessage(`not json`)))
	assert.Empty(t, sender.sent)
}

// ── Reminder cron ─────────────────────────────────────────────────────────────

type fakeDue struct {
	from, to time.Time
	rows     []repository.ReminderRow
}

func (f *fakeDue) DueBetween(_ context.Context, from, to time.Time) ([]repository.ReminderRow, error) {
	f.from, f.to = from, to
	return f.rows, nil
}

type recordingQueue struct{ payloads []EmailJobPayload }

func (q *recordingQueue) EnqueueEmail(_ context.Context, payload interface{}) error {
	q.payloads = append(q.payloads, payload.(EmailJobPayload))
	return nil
}

func TestSendDueReminders_TomorrowInBusinessZone(t *testing.T) {
	wib := time.FixedZone("WIB", 7*60*60)
	now := time.Date(2025, 3, 5, 23, 30, 0, 0, wib)
	due := &fakeDue{rows: []repository.ReminderRow{
		{RfqID: 1, RfqNumber: "RFQ-UTE-VM/0503/1/I", RfqTitle: "Hoses", RfqDuedate: now.Add(12 * time.Hour), VendorID: 2, VendorName: "Maju", VendorEmail: "maju@x.id"},
	}}
	q := &recordingQueue{}

	n, err := SendDueReminders(context.Background(), due, q, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, time.Date(2025, 3, 6, 0, 0, 0, 0, wib), due.from)
	assert.Equal(t, time.Date(2025, 3, 7, 0, 0, 0, 0, wib), due.to)
	require.Len(t, q.payloads, 1)
	assert.Equal(t, "maju@x.id", q.payloads[0].ToEmail)
	assert.Contains(t, q.payloads[0].Subject, "RFQ-UTE-VM/0503/1/I")
}

func TestStartReminderCron_RejectsBadSpec(t *testing.T) {
	_, err := StartReminderCron(context.Background(), "not a cron", time.UTC, &fakeDue{}, &recordingQueue{})
	assert.Error(t, err)
}
