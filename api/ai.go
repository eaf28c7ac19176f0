package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	smartwallet "github.com/Debraj8301/smart-wallet"
)

// DefaultAgentBatchSize and DefaultAgentThreshold mirror the backend's
// defaults for run-agent-async.
const (
	DefaultAgentBatchSize = 100
	DefaultAgentThreshold = 0.85
)

type jobCreated struct {
	JobID string `json:"job_id"`
}

// RunAgentAsync starts a bulk categorization run and returns the job id to
// poll. batchSize and threshold at zero use the backend defaults.
func (c *Client) RunAgentAsync(ctx context.Context, batchSize int, threshold float64) (string, error) {
	if batchSize <= 0 {
		batchSize = DefaultAgentBatchSize
	}
	if threshold <= 0 {
		threshold = DefaultAgentThreshold
	}
	q := url.Values{
		"batch_size": {strconv.Itoa(batchSize)},
		"threshold":  {strconv.FormatFloat(threshold, 'f', -1, 64)},
	}
	var created jobCreated
	if err := c.post(ctx, "/ai/run-agent-async", q, nil, &created); err != nil {
		return "", err
	}
	return created.JobID, nil
}

// GenerateInsights starts insight-report generation and returns the job id.
func (c *Client) GenerateInsights(ctx context.Context) (string, error) {
	var created jobCreated
	if err := c.post(ctx, "/ai/generate-insights", nil, nil, &created); err != nil {
		return "", err
	}
	return created.JobID, nil
}

// JobState is one status snapshot for a tracked job.
type JobState struct {
	Status smartwallet.JobStatus
	Result any
	Error  string
}

// JobStatus polls one job. The raw server status is classified into the
// client's processing/done/error model; unknown values count as processing.
func (c *Client) JobStatus(ctx context.Context, jobID string) (JobState, error) {
	var resp struct {
		Status string `json:"status"`
		Result any    `json:"result"`
		Error  string `json:"error"`
	}
	if err := c.get(ctx, "/ai/job-status/"+url.PathEscape(jobID), nil, &resp); err != nil {
		return JobState{}, err
	}
	return JobState{
		Status: smartwallet.ClassifyStatus(resp.Status),
		Result: resp.Result,
		Error:  resp.Error,
	}, nil
}

// Insight is the latest persisted insight report.
type Insight struct {
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// LatestInsights fetches the most recent insight report, or nil when none
// has been generated yet.
func (c *Client) LatestInsights(ctx context.Context) (*Insight, error) {
	var resp struct {
		Insights *Insight `json:"insights"`
	}
	if err := c.get(ctx, "/ai/insights", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Insights == nil {
		return nil, nil
	}
	if resp.Insights.Content == "" {
		return nil, fmt.Errorf("insight report is empty")
	}
	return resp.Insights, nil
}
