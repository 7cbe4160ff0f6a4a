package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/admin/astro-transits/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeJob struct {
	failures int32
	calls    atomic.Int32
	done     chan struct{}
	once     sync.Once
}

func (j *fakeJob) Name() string { return "fake" }

func (j *fakeJob) NextRun(now time.Time) time.Time { return now.Add(time.Millisecond) }

func (j *fakeJob) Run(context.Context) error {
	n := j.calls.Add(1)
	if n <= j.failures {
		return errors.New("boom")
	}
	j.once.Do(func() { close(j.done) })
	return nil
}

type fakeAlerter struct {
	mu       sync.Mutex
	messages []string
}

func (a *fakeAlerter) SendAlert(_ context.Context, message string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, message)
	return nil
}

func newTestScheduler(alerter *fakeAlerter) *Scheduler {
	s := NewScheduler(testLogger(), nil)
	if alerter != nil {
		s.alerterService = alerter
	}
	s.retryDelays = []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}
	return s
}

func TestScheduler_RunsAndStops(t *testing.T) {
	job := &fakeJob{failures: 2, done: make(chan struct{})}
	s := newTestScheduler(&fakeAlerter{})
	s.Register(job)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))

	select {
	case <-job.done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not succeed")
	}

	cancel()
	s.Wait()
	assert.GreaterOrEqual(t, job.calls.Load(), int32(3))
}

func TestScheduler_NoJobs(t *testing.T) {
	s := newTestScheduler(nil)
	assert.NoError(t, s.Start(context.Background()))
	s.Wait()
}

func TestExecuteJobWithRetry_Exhausted(t *testing.T) {
	job := &fakeJob{failures: 100, done: make(chan struct{})}
	s := newTestScheduler(nil)

	attempts, err := s.executeJobWithRetry(context.Background(), job)
	require.Error(t, err)
	assert.Len(t, attempts, 4)
	assert.Equal(t, int32(4), job.calls.Load())
	assert.Contains(t, err.Error(), "total attempts: 4")
}

func TestExecuteJobWithRetry_RecoversOnRetry(t *testing.T) {
	job := &fakeJob{failures: 1, done: make(chan struct{})}
	s := newTestScheduler(nil)

	attempts, err := s.executeJobWithRetry(context.Background(), job)
	require.NoError(t, err)
	assert.Empty(t, attempts)
	assert.Equal(t, int32(2), job.calls.Load())
}

func TestExecuteJobWithRetry_CancelledDuringPause(t *testing.T) {
	job := &fakeJob{failures: 100, done: make(chan struct{})}
	s := NewScheduler(testLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts, err := s.executeJobWithRetry(ctx, job)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, attempts, 1)
}

func TestSendAlert(t *testing.T) {
	alerter := &fakeAlerter{}
	s := newTestScheduler(alerter)

	s.sendAlert(context.Background(), "positions-warmer", []jobAttemptError{
		{attempt: 1, err: errors.New("oracle down")},
		{attempt: 2, err: errors.New("oracle still down")},
	})

	require.Len(t, alerter.messages, 1)
	assert.Contains(t, alerter.messages[0], "Job: positions-warmer")
	assert.Contains(t, alerter.messages[0], "Attempt 2: oracle still down")
}

type fakeWarmer struct {
	from domain.Date
	days int
	err  error
}

func (w *fakeWarmer) WarmPositions(_ context.Context, from domain.Date, days int) error {
	w.from = from
	w.days = days
	return w.err
}

func TestPositionsWarmer_NextRun(t *testing.T) {
	job := NewPositionsWarmer(&fakeWarmer{}, 30, testLogger())

	before := time.Date(2025, 3, 10, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 5, 0, 0, time.UTC), job.NextRun(before))

	exact := time.Date(2025, 3, 10, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 5, 0, 0, time.UTC), job.NextRun(exact))

	moscow := time.FixedZone("MSK", 3*60*60)
	evening := time.Date(2025, 3, 10, 2, 0, 0, 0, moscow)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 5, 0, 0, time.UTC), job.NextRun(evening))
}

func TestPositionsWarmer_Run(t *testing.T) {
	warmer := &fakeWarmer{}
	job := NewPositionsWarmer(warmer, 14, testLogger())
	job.now = func() time.Time { return time.Date(2025, 6, 1, 0, 5, 0, 0, time.UTC) }

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, "2025-06-01", warmer.from.String())
	assert.Equal(t, 14, warmer.days)
	assert.Equal(t, "positions-warmer", job.Name())

	warmer.err = errors.New("down")
	assert.Error(t, job.Run(context.Background()))
}
