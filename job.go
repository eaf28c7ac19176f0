package smartwallet

import "strings"

// JobKind identifies the two asynchronous units of backend work the client
// can start.
type JobKind string

const (
	// AgentRun is a bulk re-categorization pass over unverified transactions.
	AgentRun JobKind = "agent-run"
	// InsightGeneration produces a markdown spending report.
	InsightGeneration JobKind = "insight-generation"
)

// JobStatus is the client's view of a job's lifecycle state.
type JobStatus string

const (
	// JobStarting is a client-side label, held only until the first poll
	// response is observed. The server never reports it back.
	JobStarting JobStatus = "starting"
	// JobProcessing means the backend is still working on the job.
	JobProcessing JobStatus = "processing"
	// JobDone is terminal: the job finished and carries a result payload.
	JobDone JobStatus = "done"
	// JobError is terminal: the backend reported a failure message.
	JobError JobStatus = "error"
	// JobStalled is terminal and client-side only: polling failed or the
	// wait bound elapsed, so the backend's final state is unknown. The job
	// may still be running server-side. The server never reports it.
	JobStalled JobStatus = "stalled"
)

// Terminal reports whether no further transition can occur.
func (s JobStatus) Terminal() bool { return s == JobDone || s == JobError || s == JobStalled }

// ClassifyStatus maps a server status string to one of Processing, Done or
// Error. Anything unrecognized ("pending", "running", a future value) counts
// as Processing, so new server states never crash an old client.
func ClassifyStatus(raw string) JobStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "done":
		return JobDone
	case "error":
		return JobError
	default:
		return JobProcessing
	}
}

// Job is one tracked unit of asynchronous backend work. A Job is owned
// exclusively by the polling loop that created it and is never resurrected
// once terminal.
type Job struct {
	ID     string
	Kind   JobKind
	Status JobStatus
	// Result holds the backend payload once Status is JobDone. Its shape
	// depends on the kind, so it stays loosely typed.
	Result any
	// Message holds the backend's error string once Status is JobError.
	Message string
}
