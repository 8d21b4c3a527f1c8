// Package googletasks implements the service.Service interface using Google Tasks API.
package googletasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"taskdeck/internal/config"
	"taskdeck/internal/service"
)

const (
	// PageSize is the number of tasks fetched per request.
	PageSize = 100

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"
)

// Client implements service.Service over one Google task list.
type Client struct {
	svc          *tasks.Service
	listID       string
	defaultColor string
}

// New creates a new Google Tasks client.
// Requires oauth_client.json and token.json to exist; failures to load
// either match ErrCredentials.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oauthConfig, err := OAuthConfig(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCredentials, err)
	}

	token, err := ReadToken(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCredentials, err)
	}

	// The oauth2 transport wraps whatever client ctx carries.
	base := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)

	// Create token source that auto-refreshes
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))

	return NewWithHTTPClient(ctx, httpClient, cfg.GoogleList, cfg.DefaultColor)
}

// NewWithHTTPClient creates a client with a custom HTTP client.
// Extra options (for example option.WithEndpoint) are passed to the API.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, listID, defaultColor string, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	if listID == "" {
		listID = config.DefaultGoogleList
	}
	if defaultColor == "" {
		defaultColor = service.DefaultColor
	}
	return &Client{svc: svc, listID: listID, defaultColor: defaultColor}, nil
}

// ListTasks returns every task of the list, completed and hidden included,
// in API order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	result := []service.Task{}
	err := c.svc.Tasks.List(c.listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, t := range resp.Items {
				result = append(result, c.toTask(t))
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err, false)
	}
	return result, nil
}

// CreateTask creates a task. The colour is stored in the notes.
func (c *Client) CreateTask(ctx context.Context, in service.CreateTaskInput) (service.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return service.Task{}, service.ValidationError("Title is required")
	}
	if in.Color == "" {
		return service.Task{}, service.ValidationError("Color is required")
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	created, err := c.svc.Tasks.Insert(c.listID, &tasks.Task{
		Title:  in.Title,
		Notes:  withColor("", in.Color),
		Status: statusNeedsAction,
	}).Context(ctx).Do()
	if err != nil {
		return service.Task{}, wrapError(err, false)
	}
	return c.toTask(created), nil
}

// UpdateTask applies a partial patch. Changing the colour reads the task
// first so the other note lines survive.
func (c *Client) UpdateTask(ctx context.Context, id string, in service.UpdateTaskInput) (service.Task, error) {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return service.Task{}, service.ValidationError("Title is required")
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if in.IsEmpty() {
		current, err := c.svc.Tasks.Get(c.listID, id).Context(ctx).Do()
		if err != nil {
			return service.Task{}, wrapError(err, true)
		}
		return c.toTask(current), nil
	}

	patch := &tasks.Task{}
	if in.Title != nil {
		patch.Title = *in.Title
	}
	if in.Color != nil {
		current, err := c.svc.Tasks.Get(c.listID, id).Context(ctx).Do()
		if err != nil {
			return service.Task{}, wrapError(err, true)
		}
		patch.Notes = withColor(current.Notes, *in.Color)
	}
	if in.Completed != nil {
		if *in.Completed {
			patch.Status = statusCompleted
		} else {
			patch.Status = statusNeedsAction
			patch.NullFields = []string{"Completed"}
		}
	}

	updated, err := c.svc.Tasks.Patch(c.listID, id, patch).Context(ctx).Do()
	if err != nil {
		return service.Task{}, wrapError(err, true)
	}
	return c.toTask(updated), nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if err := c.svc.Tasks.Delete(c.listID, id).Context(ctx).Do(); err != nil {
		return wrapError(err, true)
	}
	return nil
}

// ToggleTask sets the completion flag of a task.
func (c *Client) ToggleTask(ctx context.Context, id string, completed bool) (service.Task, error) {
	return c.UpdateTask(ctx, id, service.UpdateTaskInput{Completed: &completed})
}

// toTask converts an API task. Google exposes no creation time, so
// CreatedAt is the last update time.
func (c *Client) toTask(t *tasks.Task) service.Task {
	color, _ := splitNotes(t.Notes)
	if color == "" {
		color = c.defaultColor
	}
	updated, _ := time.Parse(time.RFC3339, t.Updated)
	return service.Task{
		ID:        t.Id,
		Title:     t.Title,
		Color:     color,
		Completed: t.Status == statusCompleted,
		CreatedAt: updated,
		UpdatedAt: updated,
	}
}

// wrapError maps API errors to the service error kinds. idKeyed marks
// calls addressed by task ID, where 404 means the task does not exist.
func wrapError(err error, idKeyed bool) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &service.Error{Kind: service.KindNetwork, Message: "request timed out", Err: err}
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return service.NetworkError(err)
	}

	message := apiErr.Message
	if message == "" {
		message = fmt.Sprintf("HTTP error! status: %d", apiErr.Code)
	}

	switch {
	case apiErr.Code == http.StatusNotFound && idKeyed:
		return &service.Error{Kind: service.KindNotFound, Status: apiErr.Code, Message: "Task not found", Err: err}
	case apiErr.Code == http.StatusBadRequest:
		return &service.Error{Kind: service.KindValidation, Status: apiErr.Code, Message: message, Err: err}
	case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
		return &service.Error{Kind: service.KindService, Status: apiErr.Code, Message: "token expired or revoked (run: taskdeck login)", Err: err}
	default:
		return &service.Error{Kind: service.KindService, Status: apiErr.Code, Message: message, Err: err}
	}
}
