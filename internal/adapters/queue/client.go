// Package queue implements the task-queue collaborator over HTTP.
package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.trai.ch/decide/internal/core/domain"
	"go.trai.ch/decide/internal/core/ports"
	"go.trai.ch/zerr"
)

// Client submits tasks to the queue service. The base endpoint is usually the
// in-cluster proxy, so no credentials are handled here.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     ports.Logger
}

// NewClient creates a queue client for the given base endpoint.
func NewClient(baseURL string, logger ports.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// CreateTask submits the task definition under the given identifier.
// Any rejection is fatal to the caller; there is no retry here because a
// half-submitted graph must abort the whole decision task.
func (c *Client) CreateTask(ctx context.Context, taskID string, task domain.TaskDescriptor) error {
	body, err := json.Marshal(task)
	if err != nil {
		return zerr.Wrap(err, "failed to marshal task definition")
	}

	endpoint := fmt.Sprintf("%s/task/%s", c.baseURL, taskID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return zerr.Wrap(err, "failed to build createTask request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "createTask request failed"), "task_id", taskID)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		err := zerr.With(domain.ErrTaskSubmission, "task_id", taskID)
		err = zerr.With(err, "status", resp.StatusCode)
		return zerr.With(err, "response", strings.TrimSpace(string(payload)))
	}

	c.logger.Info(fmt.Sprintf("created task %s (%s)", taskID, task.Metadata.Name))
	return nil
}
