// Package rest implements the service.Service interface against the remote
// task REST service.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"taskdeck/internal/service"
)

const (
	// RequestIDHeader carries a per-request UUID for log correlation.
	RequestIDHeader = "X-Request-ID"

	// maxErrorBody bounds how much of a failed response is read.
	maxErrorBody = 1 << 20
)

// Client implements service.Service over HTTP+JSON.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the service rooted at baseURL
// (for example http://localhost:5000/api).
// No request timeout is applied; callers bound requests through ctx.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the resolved service address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListTasks returns all tasks in service order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, false, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, in service.CreateTaskInput) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", in, false, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateTask applies a partial patch to a task.
func (c *Client) UpdateTask(ctx context.Context, id string, in service.UpdateTaskInput) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, http.MethodPut, taskPath(id), in, true, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// DeleteTask deletes a task. A 204 response is a success.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, true, nil)
}

// ToggleTask sets the completion flag of a task.
func (c *Client) ToggleTask(ctx context.Context, id string, completed bool) (service.Task, error) {
	return c.UpdateTask(ctx, id, service.UpdateTaskInput{Completed: &completed})
}

func taskPath(id string) string {
	return "/tasks/" + url.PathEscape(id)
}

// errorBody is the error envelope returned by the service.
type errorBody struct {
	Error string `json:"error"`
}

// do performs one request and normalizes every failure into *service.Error.
// idKeyed marks operations addressed by task ID, where 404 means the task
// does not exist. out may be nil; 204 leaves it untouched. When out is set,
// any other 2xx must carry a non-null JSON body.
func (c *Client) do(ctx context.Context, method, endpoint string, body any, idKeyed bool, out any) error {
	reqURL := c.baseURL + endpoint
	requestID := uuid.NewString()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return service.NetworkError(fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return service.NetworkError(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	log := c.logger.With(
		zap.String("method", method),
		zap.String("url", reqURL),
		zap.String("request_id", requestID),
	)
	log.Debug("calling API endpoint")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("API request failed", zap.Error(err))
		return service.NetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := errorFromResponse(resp, method, idKeyed)
		log.Warn("API request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("error", apiErr.Message),
		)
		return apiErr
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("failed to read response body", zap.Error(err))
		return service.NetworkError(fmt.Errorf("read response: %w", err))
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		log.Warn("missing response body", zap.Int("status", resp.StatusCode))
		return &service.Error{
			Kind:    service.KindService,
			Status:  resp.StatusCode,
			Message: "invalid response body",
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Warn("failed to decode response body", zap.Error(err))
		return &service.Error{
			Kind:    service.KindService,
			Status:  resp.StatusCode,
			Message: "invalid response body",
			Err:     err,
		}
	}
	return nil
}

// errorFromResponse maps a non-2xx response to the error taxonomy.
func errorFromResponse(resp *http.Response, method string, idKeyed bool) *service.Error {
	message := fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil {
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil && eb.Error != "" {
			message = eb.Error
		}
	}

	apiErr := &service.Error{Status: resp.StatusCode, Message: message}
	switch {
	case resp.StatusCode == http.StatusNotFound && idKeyed:
		apiErr.Kind = service.KindNotFound
	case isValidationStatus(resp.StatusCode) && (method == http.MethodPost || method == http.MethodPut):
		apiErr.Kind = service.KindValidation
	default:
		apiErr.Kind = service.KindService
	}
	return apiErr
}

func isValidationStatus(status int) bool {
	return status == http.StatusBadRequest || status == http.StatusUnprocessableEntity
}

