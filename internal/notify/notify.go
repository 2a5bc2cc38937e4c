// Package notify posts a completion summary to a run's webhook, when one is
// configured. Delivery is best-effort: the caller logs failures and moves
// on, a lost webhook never fails the run itself.
package notify

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"
)

// Summary is the JSON body posted to the webhook after a run finishes.
type Summary struct {
	Run      string  `json:"run"`
	Status   string  `json:"status"`
	Duration float64 `json:"duration_seconds"`
	Error    string  `json:"error,omitempty"`
}

// Statuses reported in a Summary.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// NewSummary builds a Summary from a finished run's outcome.
func NewSummary(runName string, elapsed time.Duration, runErr error) Summary {
	s := Summary{
		Run:      runName,
		Status:   StatusSucceeded,
		Duration: elapsed.Seconds(),
	}
	if runErr != nil {
		s.Status = StatusFailed
		s.Error = runErr.Error()
	}
	return s
}

// Send posts the summary to the given URL. A non-2xx response is an error.
func Send(ctx context.Context, url string, summary Summary) error {
	client := resty.New().SetTimeout(10 * time.Second)
	defer client.Close()

	res, err := client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(summary).
		Post(url)
	if err != nil {
		return fmt.Errorf("webhook post to %s failed: %w", url, err)
	}
	if res.IsError() {
		return fmt.Errorf("webhook %s answered %s", url, res.Status())
	}
	return nil
}
