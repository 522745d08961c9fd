// Package api is the gateway between the client and the helpdesk backend.
// Every read and write goes through it: it injects the bearer credential,
// translates error responses into the APIError taxonomy, and tears the
// session down on an authorization failure.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// TokenStore supplies the bearer credential and is cleared when the backend
// rejects it. *session.Store satisfies this.
type TokenStore interface {
	Token() string
	Clear() error
}

// Config represents client configuration.
type Config struct {
	BaseURL   string
	Store     TokenStore
	Logger    *zap.Logger
	UserAgent string
	Timeout   time.Duration
	Debug     bool

	// OnUnauthorized runs after a 401 on an authenticated call has cleared
	// the session, the console analogue of redirecting to the login page.
	OnUnauthorized func()
}

// Client represents the helpdesk API client.
type Client struct {
	httpClient *resty.Client
	baseURL    string
	store      TokenStore
	logger     *zap.Logger

	onUnauthorized func()
	teardownOnce   sync.Once

	// Service clients
	Auth    *AuthService
	Tickets *TicketsService
	Support *SupportService
}

// NewClient creates a new helpdesk API client.
func NewClient(config *Config) *Client {
	if config.UserAgent == "" {
		config.UserAgent = "supportdesk-cli/" + Version
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	httpClient := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetHeader("User-Agent", config.UserAgent).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if config.Debug {
		httpClient.SetDebug(true)
	}

	client := &Client{
		httpClient:     httpClient,
		baseURL:        config.BaseURL,
		store:          config.Store,
		logger:         config.Logger,
		onUnauthorized: config.OnUnauthorized,
	}

	client.Auth = &AuthService{client: client}
	client.Tickets = &TicketsService{client: client}
	client.Support = &SupportService{client: client}

	httpClient.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		client.setAuth(req)
		return nil
	})

	httpClient.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		return client.handleError(resp)
	})

	return client
}

// Version is the client version reported in the User-Agent header.
const Version = "1.0.0"

// setAuth attaches the bearer header when a session exists. Login and
// register run through the same path with an empty store and go out bare.
func (c *Client) setAuth(req *resty.Request) {
	if c.store == nil {
		return
	}
	if token := c.store.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
}

// handleError maps non-2xx responses to APIError values. A 401 on a request
// that carried a credential clears the session exactly once per client and
// fires the OnUnauthorized callback.
func (c *Client) handleError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	detail := parseDetail(resp.Body())
	apiErr := NewAPIError(resp.StatusCode(), detail)

	if resp.StatusCode() == http.StatusUnauthorized && resp.Request.Header.Get("Authorization") != "" {
		c.teardownOnce.Do(func() {
			c.logger.Warn("credential rejected, clearing session",
				zap.String("path", resp.Request.URL))
			if c.store != nil {
				if err := c.store.Clear(); err != nil {
					c.logger.Error("failed to clear session", zap.Error(err))
				}
			}
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
		})
	}

	return apiErr
}

// parseDetail extracts the backend's {"detail": ...} message. The detail
// field is usually a string but is an object list for validation failures;
// anything unreadable falls back to empty.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}
	return string(envelope.Detail)
}

// wrap normalizes transport errors; API errors pass through untouched.
func (c *Client) wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &NetworkError{Operation: op, URL: c.baseURL + path, Err: err}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	req := c.httpClient.R().SetContext(ctx)
	if result != nil {
		req.SetResult(result)
	}
	_, err := req.Get(path)
	return c.wrap(http.MethodGet, path, err)
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}, result interface{}) error {
	req := c.httpClient.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	_, err := req.Post(path)
	return c.wrap(http.MethodPost, path, err)
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}, result interface{}) error {
	req := c.httpClient.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	_, err := req.Put(path)
	return c.wrap(http.MethodPut, path, err)
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}, result interface{}) error {
	req := c.httpClient.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	_, err := req.Patch(path)
	return c.wrap(http.MethodPatch, path, err)
}

// LoggedIn reports whether the client currently holds a credential.
func (c *Client) LoggedIn() bool {
	return c.store != nil && c.store.Token() != ""
}
