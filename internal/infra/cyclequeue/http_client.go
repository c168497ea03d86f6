//go:build !gcloud

package cyclequeue

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"
)

// The local scheduler speaks a Cloud Tasks shaped JSON API, so switching
// platforms only swaps the transport.
type schedulerTaskRequest struct {
	Task schedulerTask `json:"task"`
}

type schedulerTask struct {
	HTTPRequest  schedulerHTTPRequest `json:"httpRequest"`
	ScheduleTime string               `json:"scheduleTime,omitempty"`
}

type schedulerHTTPRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type schedulerTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}

type SchedulerClient struct {
	baseURL    string
	queueName  string
	httpClient *http.Client
	maxRetries int
}

func NewSchedulerClient(baseURL, queueName string, maxRetries int) *SchedulerClient {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &SchedulerClient{
		baseURL:   baseURL,
		queueName: queueName,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: maxRetries,
	}
}

func (c *SchedulerClient) ScheduleCycle(ctx context.Context, task *CycleTask) (*ScheduleResponse, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cycle task: %w", err)
	}

	schedReq := schedulerTaskRequest{
		Task: schedulerTask{
			HTTPRequest: schedulerHTTPRequest{
				Body: base64.StdEncoding.EncodeToString(payload),
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
			},
		},
	}

	if !task.ScheduleAt.IsZero() {
		schedReq.Task.ScheduleTime = task.ScheduleAt.Format(time.RFC3339)
	}

	reqBody, err := json.Marshal(schedReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scheduler request: %w", err)
	}

	url := fmt.Sprintf("%s/tasks", c.baseURL)
	if c.queueName != "" && c.queueName != "default" {
		url = fmt.Sprintf("%s/tasks/%s", c.baseURL, c.queueName)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.DebugContext(ctx, "retrying cycle scheduling",
				slog.String("project_id", task.ProjectID),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.doRequest(ctx, url, reqBody, task.ProjectID)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}

	slog.ErrorContext(ctx, "all retries exhausted for cycle scheduling",
		slog.String("project_id", task.ProjectID),
		slog.Int("max_retries", c.maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return nil, fmt.Errorf("failed to schedule cycle after %d retries: %w", c.maxRetries, lastErr)
}

func (c *SchedulerClient) doRequest(ctx context.Context, url string, reqBody []byte, projectID string) (*ScheduleResponse, error) {
	slog.DebugContext(ctx, "scheduling re-evaluation cycle",
		slog.String("url", url),
		slog.String("project_id", projectID),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "failed to send request to scheduler",
			slog.String("project_id", projectID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to send scheduler request: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("scheduler returned status %d", resp.StatusCode)
	}

	var schedResp schedulerTaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&schedResp); err != nil {
		return nil, fmt.Errorf("failed to decode scheduler response: %w", err)
	}

	result := &ScheduleResponse{Name: schedResp.Name}
	if t, err := time.Parse(time.RFC3339, schedResp.ScheduleTime); err == nil {
		result.ScheduleTime = t
	}
	if t, err := time.Parse(time.RFC3339, schedResp.CreateTime); err == nil {
		result.CreateTime = t
	}

	return result, nil
}

func (c *SchedulerClient) CancelCycle(ctx context.Context, taskID string) error {
	url := fmt.Sprintf("%s/tasks/%s", c.baseURL, taskID)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send scheduler request: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("scheduler returned status %d", resp.StatusCode)
	}

	return nil
}
