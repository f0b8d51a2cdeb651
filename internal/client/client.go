// Package client talks to the remote todo collection over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"github.com/nibzard/todoboard/internal/logging"
	"github.com/nibzard/todoboard/internal/todo"
)

// Options configures a Client.
type Options struct {
	// BaseURL is the collection endpoint, e.g. http://localhost:8080/todos.
	BaseURL string
	// Token, when set, is sent as a bearer token on every request.
	Token string
	// HTTPClient is the base client. http.DefaultClient when nil.
	HTTPClient *http.Client
	// Timeout bounds each request. Zero waits indefinitely.
	Timeout time.Duration
	// ValidateResponses checks list/get bodies against the collection schema.
	ValidateResponses bool
	Logger            *log.Logger
}

// Client issues list/get/create/update/delete calls against a collection.
type Client struct {
	base     *url.URL
	http     *http.Client
	validate bool
	logger   *log.Logger
}

// New creates a client for the collection at opts.BaseURL.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	if opts.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, hc)
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: opts.Token,
			TokenType:   "Bearer",
		}))
	}
	if opts.Timeout > 0 {
		withTimeout := *hc
		withTimeout.Timeout = opts.Timeout
		hc = &withTimeout
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Client{
		base:     base,
		http:     hc,
		validate: opts.ValidateResponses,
		logger:   logger,
	}, nil
}

// BaseURL returns the collection endpoint.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// List returns the full collection in server order.
func (c *Client) List(ctx context.Context) ([]todo.Task, error) {
	const op = "list todos"
	status, body, err := c.do(ctx, op, http.MethodGet, c.base.String(), nil)
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, c.fail(&TransportError{Op: op, StatusCode: status, Body: body})
	}
	if c.validate {
		if err := todo.ValidateCollection([]byte(body)); err != nil {
			return nil, c.fail(&TransportError{Op: op, StatusCode: status, Err: err})
		}
	}

	var tasks []todo.Task
	if err := json.Unmarshal([]byte(body), &tasks); err != nil {
		return nil, c.fail(&TransportError{Op: op, StatusCode: status, Err: fmt.Errorf("decode response: %w", err)})
	}
	if tasks == nil {
		tasks = []todo.Task{}
	}
	c.logger.Debug("listed todos", "count", len(tasks))
	return tasks, nil
}

// Get fetches a single record.
func (c *Client) Get(ctx context.Context, id todo.ID) (*todo.Task, error) {
	const op = "get todo"
	if id == "" {
		return nil, &ValidationError{Message: "todo id is required"}
	}
	status, body, err := c.do(ctx, op, http.MethodGet, c.itemURL(id), nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, c.fail(&NotFoundError{ID: id, Message: body})
	}
	if !success(status) {
		return nil, c.fail(&TransportError{Op: op, StatusCode: status, Body: body})
	}
	if c.validate {
		if err := todo.ValidateRecord([]byte(body)); err != nil {
			return nil, c.fail(&TransportError{Op: op, StatusCode: status, Err: err})
		}
	}

	var task todo.Task
	if err := json.Unmarshal([]byte(body), &task); err != nil {
		return nil, c.fail(&TransportError{Op: op, StatusCode: status, Err: fmt.Errorf("decode response: %w", err)})
	}
	if task.ID == "" {
		return nil, c.fail(&TransportError{Op: op, StatusCode: status, Err: errors.New("response has no todo id")})
	}
	return &task, nil
}

// Create stores a new record. The returned task is the server's echo when it
// sends one.
func (c *Client) Create(ctx context.Context, task todo.Task) (*todo.Task, error) {
	return c.save(ctx, "create todo", http.MethodPost, c.base.String(), task)
}

// Update replaces the record stored under id.
func (c *Client) Update(ctx context.Context, id todo.ID, task todo.Task) (*todo.Task, error) {
	if id == "" {
		return nil, &ValidationError{Message: "todo id is required"}
	}
	task.ID = id
	return c.save(ctx, "update todo", http.MethodPut, c.itemURL(id), task)
}

// Delete removes the record stored under id.
func (c *Client) Delete(ctx context.Context, id todo.ID) error {
	const op = "delete todo"
	if id == "" {
		return &ValidationError{Message: "todo id is required"}
	}
	status, body, err := c.do(ctx, op, http.MethodDelete, c.itemURL(id), nil)
	if err != nil {
		return err
	}
	if !success(status) {
		return c.fail(mutationError(op, status, body))
	}
	c.logger.Info("deleted todo", "id", id)
	return nil
}

func (c *Client) save(ctx context.Context, op, method, target string, task todo.Task) (*todo.Task, error) {
	payload, err := json.Marshal(task.Payload())
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
	}
	status, body, err := c.do(ctx, op, method, target, payload)
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, c.fail(mutationError(op, status, body))
	}

	saved := task
	if strings.HasPrefix(body, "{") {
		var echo todo.Task
		if err := json.Unmarshal([]byte(body), &echo); err != nil {
			c.logger.Warn("ignoring undecodable response", "op", op, "err", err)
		} else {
			saved = echo
			if saved.ID == "" {
				saved.ID = task.ID
			}
		}
	}
	c.logger.Info("saved todo", "op", op, "id", saved.ID, "status", status)
	return &saved, nil
}

// do performs one request and returns the status and trimmed body.
func (c *Client) do(ctx context.Context, op, method, target string, payload []byte) (int, string, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, "", &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("request", "method", method, "url", target)
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, "", c.fail(&TransportError{Op: op, Err: err})
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", c.fail(&TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)})
	}
	c.logger.Debug("response", "method", method, "url", target, "status", resp.StatusCode, "bytes", len(data))
	return resp.StatusCode, strings.TrimSpace(string(data)), nil
}

func (c *Client) fail(err error) error {
	c.logger.Warn("request failed", "err", err)
	return err
}

func (c *Client) itemURL(id todo.ID) string {
	return c.base.String() + "/" + url.PathEscape(id.String())
}

func mutationError(op string, status int, body string) error {
	if body != "" {
		return &ValidationError{StatusCode: status, Message: body}
	}
	return &TransportError{Op: op, StatusCode: status}
}

func success(status int) bool {
	return status >= 200 && status < 300
}
