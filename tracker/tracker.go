// Package tracker drives asynchronous backend jobs from submission to a
// terminal status without blocking the caller.
//
// Each tracked job owns one polling goroutine:
//
//	submit → wait initial delay → poll status → classify →
//	processing: wait a fixed interval after the response, poll again
//	done/error: record the outcome, notify the caller exactly once, stop
//
// The next poll is always scheduled from the previous response, so a slow
// backend delays polling instead of stacking overlapping requests. Stopping a
// handle prevents any further scheduling; a response that arrives after the
// stop is dropped.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	smartwallet "github.com/Debraj8301/smart-wallet"
	"github.com/Debraj8301/smart-wallet/api"
)

// SubmitFunc issues the job-creation call and returns the new job id.
type SubmitFunc func(ctx context.Context) (string, error)

// StatusFunc issues one status query for a job.
type StatusFunc func(ctx context.Context, jobID string) (api.JobState, error)

// ErrAbandoned marks a handle that was stopped before reaching a terminal
// status. No caller notification happens in that case.
var ErrAbandoned = errors.New("job abandoned")

// ErrTimeout marks a job that exceeded the tracker's MaxWait bound.
var ErrTimeout = errors.New("gave up waiting for job")

// SubmissionError is a failed job creation: the network call failed or the
// backend returned no identifier. Submissions are never retried.
type SubmissionError struct {
	Kind smartwallet.JobKind
	Err  error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("cannot submit %s job: %v", e.Kind, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// PollingError is a transport failure during a status check. It terminates
// the job's loop; the job itself may still be running server-side and the
// caller may resubmit.
type PollingError struct {
	JobID string
	Err   error
}

func (e *PollingError) Error() string {
	return fmt.Sprintf("cannot poll job %s: %v", e.JobID, e.Err)
}

func (e *PollingError) Unwrap() error { return e.Err }

// ServerError is a job the backend explicitly marked as failed, carrying the
// backend's message.
type ServerError struct {
	JobID   string
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("job %s failed: %s", e.JobID, e.Message)
}

// Config sets the polling schedule. The initial delay differs per kind:
// insight generation answers within seconds, a bulk agent run takes longer,
// so polling earlier only wastes requests.
type Config struct {
	AgentInitialDelay   time.Duration
	InsightInitialDelay time.Duration
	Interval            time.Duration
	// MaxWait bounds the total time a job may be polled. Zero polls
	// until a terminal status arrives, which matches the backend's own
	// fire-and-forget job table but risks waiting forever on a stuck
	// job; the default config sets a bound.
	MaxWait time.Duration
}

// DefaultConfig returns the standard polling schedule.
func DefaultConfig() Config {
	return Config{
		AgentInitialDelay:   10 * time.Second,
		InsightInitialDelay: 3 * time.Second,
		Interval:            5 * time.Second,
		MaxWait:             10 * time.Minute,
	}
}

// Tracker creates and drives job handles. One tracker may run any number of
// independent job loops concurrently; they share nothing but the HTTP
// session underneath the status function.
type Tracker struct {
	status StatusFunc
	cfg    Config
	log    zerolog.Logger
}

// New creates a tracker that polls jobs via status with the given schedule.
func New(status StatusFunc, cfg Config, log zerolog.Logger) *Tracker {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	return &Tracker{status: status, cfg: cfg, log: log}
}

// Submit issues the creation call and, on success, starts tracking the new
// job. onTerminal, when non-nil, is invoked exactly once with the terminal
// job snapshot.
func (t *Tracker) Submit(ctx context.Context, kind smartwallet.JobKind, submit SubmitFunc, onTerminal func(smartwallet.Job)) (*Handle, error) {
	jobID, err := submit(ctx)
	if err != nil {
		return nil, &SubmissionError{Kind: kind, Err: err}
	}
	if jobID == "" {
		return nil, &SubmissionError{Kind: kind, Err: errors.New("backend returned no job id")}
	}
	t.log.Info().Str("kind", string(kind)).Str("job_id", jobID).Msg("job submitted")
	return t.Start(ctx, kind, jobID, onTerminal), nil
}

// Start begins tracking an already-submitted job.
func (t *Tracker) Start(ctx context.Context, kind smartwallet.JobKind, jobID string, onTerminal func(smartwallet.Job)) *Handle {
	h := &Handle{
		job:        smartwallet.Job{ID: jobID, Kind: kind, Status: smartwallet.JobStarting},
		done:       make(chan struct{}),
		stop:       make(chan struct{}),
		onTerminal: onTerminal,
	}
	go t.loop(ctx, h)
	return h
}

// initialDelay returns the pre-first-poll wait for a job kind.
func (t *Tracker) initialDelay(kind smartwallet.JobKind) time.Duration {
	if kind == smartwallet.InsightGeneration {
		return t.cfg.InsightInitialDelay
	}
	return t.cfg.AgentInitialDelay
}

// loop is the polling state machine for one job. It is the only writer of
// the handle's job.
func (t *Tracker) loop(ctx context.Context, h *Handle) {
	timer := time.NewTimer(t.initialDelay(h.job.Kind))
	defer timer.Stop()

	var deadline <-chan time.Time
	if t.cfg.MaxWait > 0 {
		dt := time.NewTimer(t.cfg.MaxWait)
		defer dt.Stop()
		deadline = dt.C
	}

	for {
		select {
		case <-h.stop:
			h.abandon()
			return
		case <-ctx.Done():
			h.abandon()
			return
		case <-deadline:
			t.log.Warn().Str("job_id", h.job.ID).Dur("max_wait", t.cfg.MaxWait).Msg("job polling timed out")
			h.finish(smartwallet.JobStalled, nil, "", &PollingError{JobID: h.job.ID, Err: ErrTimeout})
			return
		case <-timer.C:
		}

		state, err := t.status(ctx, h.job.ID)

		// The handle may have been stopped while the request was in
		// flight; the late response must not be delivered.
		select {
		case <-h.stop:
			h.abandon()
			return
		default:
		}

		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			h.abandon()
			return
		case err != nil:
			t.log.Warn().Err(err).Str("job_id", h.job.ID).Msg("job poll failed")
			h.finish(smartwallet.JobStalled, nil, "", &PollingError{JobID: h.job.ID, Err: err})
			return
		}

		switch state.Status {
		case smartwallet.JobDone:
			t.log.Info().Str("job_id", h.job.ID).Msg("job done")
			h.finish(smartwallet.JobDone, state.Result, "", nil)
			return
		case smartwallet.JobError:
			t.log.Info().Str("job_id", h.job.ID).Str("error", state.Error).Msg("job failed server-side")
			h.finish(smartwallet.JobError, nil, state.Error, &ServerError{JobID: h.job.ID, Message: state.Error})
			return
		default:
			h.setProcessing()
			// Interval counts from this response, not from the
			// previous tick, so polls never overlap.
			timer.Reset(t.cfg.Interval)
		}
	}
}

// Handle is the caller's view of one tracked job. All methods are safe for
// concurrent use.
type Handle struct {
	done chan struct{}
	stop chan struct{}

	stopOnce   sync.Once
	finishOnce sync.Once
	onTerminal func(smartwallet.Job)

	mu  sync.Mutex
	job smartwallet.Job
	err error
}

// Done is closed once the job reaches a terminal state or is abandoned.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Stop abandons the job: no further poll is scheduled and no notification
// fires. The backend job itself keeps running; an in-flight poll response is
// discarded. Stopping an already-terminal handle is a no-op.
func (h *Handle) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
}

// Job returns a snapshot of the tracked job.
func (h *Handle) Job() smartwallet.Job {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.job
}

// Err returns the terminal error: nil for a completed job, a *PollingError,
// *ServerError, or ErrAbandoned otherwise. Valid after Done is closed.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Result returns the done payload. Valid after Done is closed.
func (h *Handle) Result() any {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.job.Result
}

// Wait blocks until the job terminates or ctx is cancelled, then returns the
// terminal error.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		h.Stop()
		return ctx.Err()
	case <-h.done:
		return h.Err()
	}
}

func (h *Handle) setProcessing() {
	h.mu.Lock()
	h.job.Status = smartwallet.JobProcessing
	h.mu.Unlock()
}

// finish records the terminal state and notifies exactly once. Repeated
// terminal observations (or a finish racing a stop) collapse to the first.
func (h *Handle) finish(status smartwallet.JobStatus, result any, message string, err error) {
	h.finishOnce.Do(func() {
		h.mu.Lock()
		h.job.Status = status
		h.job.Result = result
		h.job.Message = message
		h.err = err
		job := h.job
		h.mu.Unlock()

		if h.onTerminal != nil {
			h.onTerminal(job)
		}
		close(h.done)
	})
}

// abandon closes the handle without caller notification.
func (h *Handle) abandon() {
	h.finishOnce.Do(func() {
		h.mu.Lock()
		h.err = ErrAbandoned
		h.mu.Unlock()
		close(h.done)
	})
}
