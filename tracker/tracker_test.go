package tracker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	smartwallet "github.com/Debraj8301/smart-wallet"
	"github.com/Debraj8301/smart-wallet/api"
)

// fastConfig keeps the test suite quick while exercising the real schedule.
func fastConfig() Config {
	return Config{
		AgentInitialDelay:   time.Millisecond,
		InsightInitialDelay: time.Millisecond,
		Interval:            time.Millisecond,
		MaxWait:             time.Second,
	}
}

// scriptedStatus replays a fixed sequence of states, counting calls.
type scriptedStatus struct {
	mu     sync.Mutex
	states []api.JobState
	errs   []error
	calls  int
}

func (s *scriptedStatus) fn(ctx context.Context, jobID string) (api.JobState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	if i >= len(s.states) {
		i = len(s.states) - 1
	}
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	return s.states[i], err
}

func (s *scriptedStatus) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func submitAs(jobID string) SubmitFunc {
	return func(ctx context.Context) (string, error) { return jobID, nil }
}

func TestTracker_PollsUntilDone(t *testing.T) {
	status := &scriptedStatus{states: []api.JobState{
		{Status: smartwallet.JobProcessing},
		{Status: smartwallet.JobProcessing},
		{Status: smartwallet.JobDone, Result: map[string]any{"processed": 12.0}},
	}}
	tr := New(status.fn, fastConfig(), zerolog.Nop())

	var notified []smartwallet.Job
	h, err := tr.Submit(context.Background(), smartwallet.AgentRun, submitAs("job-1"), func(j smartwallet.Job) {
		notified = append(notified, j)
	})
	require.NoError(t, err)

	require.NoError(t, h.Wait(context.Background()))

	assert.Equal(t, 3, status.callCount())
	require.Len(t, notified, 1, "terminal notification must fire exactly once")
	assert.Equal(t, smartwallet.JobDone, notified[0].Status)
	assert.Equal(t, map[string]any{"processed": 12.0}, notified[0].Result)
	assert.Equal(t, smartwallet.JobDone, h.Job().Status)
	assert.Equal(t, notified[0].Result, h.Result())
}

func TestTracker_ServerFailure(t *testing.T) {
	status := &scriptedStatus{states: []api.JobState{
		{Status: smartwallet.JobProcessing},
		{Status: smartwallet.JobError, Error: "model unavailable"},
	}}
	tr := New(status.fn, fastConfig(), zerolog.Nop())

	var notified []smartwallet.Job
	h, err := tr.Submit(context.Background(), smartwallet.InsightGeneration, submitAs("job-2"), func(j smartwallet.Job) {
		notified = append(notified, j)
	})
	require.NoError(t, err)

	err = h.Wait(context.Background())

	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, "job-2", serverErr.JobID)
	assert.Equal(t, "model unavailable", serverErr.Message)

	require.Len(t, notified, 1)
	assert.Equal(t, smartwallet.JobError, notified[0].Status)
	assert.Equal(t, "model unavailable", notified[0].Message)

	// a terminal job must not be polled again
	calls := status.callCount()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, calls, status.callCount())
}

func TestTracker_SubmissionFailure(t *testing.T) {
	tr := New(nil, fastConfig(), zerolog.Nop())

	boom := errors.New("backend down")
	_, err := tr.Submit(context.Background(), smartwallet.AgentRun, func(ctx context.Context) (string, error) {
		return "", boom
	}, nil)

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.ErrorIs(t, err, boom)
}

func TestTracker_SubmissionWithoutJobID(t *testing.T) {
	tr := New(nil, fastConfig(), zerolog.Nop())

	_, err := tr.Submit(context.Background(), smartwallet.AgentRun, submitAs(""), nil)

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
}

func TestTracker_PollingFailure(t *testing.T) {
	status := &scriptedStatus{
		states: []api.JobState{{}},
		errs:   []error{errors.New("connection refused")},
	}
	tr := New(status.fn, fastConfig(), zerolog.Nop())

	h, err := tr.Submit(context.Background(), smartwallet.AgentRun, submitAs("job-3"), nil)
	require.NoError(t, err)

	err = h.Wait(context.Background())

	var pollErr *PollingError
	require.ErrorAs(t, err, &pollErr)
	assert.Equal(t, "job-3", pollErr.JobID)
	assert.Equal(t, smartwallet.JobStalled, h.Job().Status)
}

func TestTracker_StalledDistinctFromServerError(t *testing.T) {
	// A transport failure must not look like a server-reported failure in
	// the terminal snapshot: the backend job may still be running.
	status := &scriptedStatus{
		states: []api.JobState{{}},
		errs:   []error{errors.New("connection refused")},
	}
	tr := New(status.fn, fastConfig(), zerolog.Nop())

	var snapshot smartwallet.Job
	h, err := tr.Submit(context.Background(), smartwallet.AgentRun, submitAs("job-7"), func(j smartwallet.Job) {
		snapshot = j
	})
	require.NoError(t, err)
	<-h.Done()

	assert.Equal(t, smartwallet.JobStalled, snapshot.Status)
	assert.Empty(t, snapshot.Message, "no server message for a client-side failure")

	server := &scriptedStatus{states: []api.JobState{{Status: smartwallet.JobError, Error: "model unavailable"}}}
	tr = New(server.fn, fastConfig(), zerolog.Nop())

	h, err = tr.Submit(context.Background(), smartwallet.AgentRun, submitAs("job-8"), func(j smartwallet.Job) {
		snapshot = j
	})
	require.NoError(t, err)
	<-h.Done()

	assert.Equal(t, smartwallet.JobError, snapshot.Status)
	assert.Equal(t, "model unavailable", snapshot.Message)
}

func TestTracker_StopAbandonsWithoutNotification(t *testing.T) {
	cfg := fastConfig()
	cfg.AgentInitialDelay = time.Hour // stop arrives before the first poll
	status := &scriptedStatus{states: []api.JobState{{Status: smartwallet.JobProcessing}}}
	tr := New(status.fn, cfg, zerolog.Nop())

	notified := atomic.Int32{}
	h, err := tr.Submit(context.Background(), smartwallet.AgentRun, submitAs("job-4"), func(smartwallet.Job) {
		notified.Add(1)
	})
	require.NoError(t, err)

	h.Stop()
	<-h.Done()

	assert.ErrorIs(t, h.Err(), ErrAbandoned)
	assert.Equal(t, int32(0), notified.Load(), "a stopped job must not notify")
	assert.Equal(t, 0, status.callCount())

	// stopping twice is fine
	h.Stop()
}

func TestTracker_ContextCancelAbandons(t *testing.T) {
	status := &scriptedStatus{states: []api.JobState{{Status: smartwallet.JobProcessing}}}
	tr := New(status.fn, fastConfig(), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	h, err := tr.Submit(ctx, smartwallet.AgentRun, submitAs("job-5"), nil)
	require.NoError(t, err)

	cancel()
	<-h.Done()

	assert.ErrorIs(t, h.Err(), ErrAbandoned)
}

func TestTracker_MaxWait(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxWait = 20 * time.Millisecond
	status := &scriptedStatus{states: []api.JobState{{Status: smartwallet.JobProcessing}}}
	tr := New(status.fn, cfg, zerolog.Nop())

	h, err := tr.Submit(context.Background(), smartwallet.AgentRun, submitAs("job-6"), nil)
	require.NoError(t, err)

	err = h.Wait(context.Background())

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, smartwallet.JobStalled, h.Job().Status)
}

func TestTracker_PollsNeverOverlap(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	polls := atomic.Int32{}
	status := func(ctx context.Context, jobID string) (api.JobState, error) {
		n := inFlight.Add(1)
		if m := maxInFlight.Load(); n > m {
			maxInFlight.Store(n)
		}
		time.Sleep(5 * time.Millisecond) // slower than the interval
		inFlight.Add(-1)
		if polls.Add(1) >= 5 {
			return api.JobState{Status: smartwallet.JobDone}, nil
		}
		return api.JobState{Status: smartwallet.JobProcessing}, nil
	}
	tr := New(status, fastConfig(), zerolog.Nop())

	h, err := tr.Submit(context.Background(), smartwallet.AgentRun, submitAs("job-7"), nil)
	require.NoError(t, err)
	require.NoError(t, h.Wait(context.Background()))

	assert.Equal(t, int32(1), maxInFlight.Load(), "status calls must be sequential")
}

func TestHandle_WaitHonorsContext(t *testing.T) {
	cfg := fastConfig()
	cfg.AgentInitialDelay = time.Hour
	tr := New(func(ctx context.Context, jobID string) (api.JobState, error) {
		return api.JobState{Status: smartwallet.JobProcessing}, nil
	}, cfg, zerolog.Nop())

	h := tr.Start(context.Background(), smartwallet.AgentRun, "job-8", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	err := h.Wait(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	<-h.Done()
	assert.ErrorIs(t, h.Err(), ErrAbandoned)
}
