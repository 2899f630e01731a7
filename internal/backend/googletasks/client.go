// Package googletasks mirrors the local task collection into a Google Tasks list.
package googletasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"taskcli/internal/config"
	"taskcli/internal/logging"
	"taskcli/internal/service"
	"taskcli/internal/task"
)

const (
	// PageSize is the number of items per page.
	PageSize = 100

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// MarkerPrefix starts the notes line that ties a remote task to a local id.
	MarkerPrefix = "taskcli-id:"

	statusNeedsAction = "needsAction"
	statusCompleted   = "completed"
)

// ErrTokenRejected indicates the API refused the stored credentials.
var ErrTokenRejected = errors.New("token expired or revoked (run: taskcli login)")

// Client implements service.Mirror using the Google Tasks API.
type Client struct {
	svc    *tasks.Service
	logger *log.Logger
}

// New creates a new Google Tasks client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg.TokenPath())
	if err != nil {
		return nil, err
	}

	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))
	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc, logger: cfg.Log()}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client and
// endpoint (for testing). An empty endpoint uses the production API.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, endpoint string) (*Client, error) {
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc, logger: logging.Discard()}, nil
}

// Push makes the remote list match local. The list is created when it does
// not exist. Remote tasks without a marker are left alone.
func (c *Client) Push(ctx context.Context, listName string, local []task.Task) (service.PushResult, error) {
	list, err := c.resolveOrCreateList(ctx, listName)
	if err != nil {
		return service.PushResult{}, err
	}
	result := service.PushResult{ListTitle: list.Title}

	remote, err := c.listMarkedTasks(ctx, list.Id)
	if err != nil {
		return result, err
	}

	for _, t := range local {
		body := remoteTask(t)
		existing, ok := remote[t.ID]
		if ok {
			if err := c.patchTask(ctx, list.Id, existing[0].Id, body); err != nil {
				return result, fmt.Errorf("update task %d: %w", t.ID, err)
			}
			result.Updated++
			// Extra copies of the same marker are stale.
			for _, dup := range existing[1:] {
				if err := c.deleteTask(ctx, list.Id, dup.Id); err != nil {
					return result, fmt.Errorf("delete duplicate of task %d: %w", t.ID, err)
				}
				result.Deleted++
			}
			delete(remote, t.ID)
			continue
		}
		if err := c.insertTask(ctx, list.Id, body); err != nil {
			return result, fmt.Errorf("create task %d: %w", t.ID, err)
		}
		result.Created++
	}

	for id, stale := range remote {
		for _, rt := range stale {
			if err := c.deleteTask(ctx, list.Id, rt.Id); err != nil {
				return result, fmt.Errorf("delete task %d: %w", id, err)
			}
			result.Deleted++
		}
	}

	c.logger.Debug("push finished", "list", list.Title,
		"created", result.Created, "updated", result.Updated, "deleted", result.Deleted)
	return result, nil
}

// resolveOrCreateList finds a list by name (case-insensitive, trimmed),
// creating it when absent.
func (c *Client) resolveOrCreateList(ctx context.Context, name string) (*tasks.TaskList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: list name required", service.ErrInvalidArgument)
	}
	nameLower := strings.ToLower(name)

	pageCtx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var matches []*tasks.TaskList
	err := c.svc.Tasklists.List().MaxResults(PageSize).Pages(pageCtx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			if strings.ToLower(strings.TrimSpace(list.Title)) == nameLower {
				matches = append(matches, list)
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrapError(err)
	}

	switch len(matches) {
	case 0:
		insertCtx, cancel := context.WithTimeout(ctx, APITimeout)
		defer cancel()
		list, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: name}).Context(insertCtx).Do()
		if err != nil {
			return nil, wrapError(err)
		}
		c.logger.Debug("created remote list", "title", list.Title, "id", list.Id)
		return list, nil
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("ambiguous list name: %s", name)
	}
}

// listMarkedTasks returns every remote task carrying a marker, keyed by local id.
func (c *Client) listMarkedTasks(ctx context.Context, listID string) (map[int][]*tasks.Task, error) {
	pageCtx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	marked := make(map[int][]*tasks.Task)
	err := c.svc.Tasks.List(listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(pageCtx, func(resp *tasks.Tasks) error {
			for _, rt := range resp.Items {
				if id, ok := ParseMarker(rt.Notes); ok {
					marked[id] = append(marked[id], rt)
				}
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	return marked, nil
}

func (c *Client) insertTask(ctx context.Context, listID string, body *tasks.Task) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := c.svc.Tasks.Insert(listID, body).Context(ctx).Do()
	return wrapError(err)
}

func (c *Client) patchTask(ctx context.Context, listID, taskID string, body *tasks.Task) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := c.svc.Tasks.Patch(listID, taskID, body).Context(ctx).Do()
	return wrapError(err)
}

func (c *Client) deleteTask(ctx context.Context, listID, taskID string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	return wrapError(c.svc.Tasks.Delete(listID, taskID).Context(ctx).Do())
}

// remoteTask builds the API representation of a local task.
func remoteTask(t task.Task) *tasks.Task {
	rt := &tasks.Task{
		Title:  t.Description,
		Notes:  Marker(t.ID),
		Status: statusNeedsAction,
	}
	if t.Status == task.StatusDone {
		rt.Status = statusCompleted
	} else {
		// Reopening a completed task requires clearing its completion time.
		rt.NullFields = []string{"Completed"}
	}
	return rt
}

// Marker returns the notes line for a local id.
func Marker(id int) string {
	return MarkerPrefix + " " + strconv.Itoa(id)
}

// ParseMarker extracts the local id from task notes.
func ParseMarker(notes string) (int, bool) {
	for _, line := range strings.Split(notes, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, MarkerPrefix) {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, MarkerPrefix)))
		if err != nil || id < 1 {
			return 0, false
		}
		return id, true
	}
	return 0, false
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return ErrTokenRejected
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrTokenRejected
		case http.StatusNotFound:
			return fmt.Errorf("not found")
		}
	}
	return err
}
