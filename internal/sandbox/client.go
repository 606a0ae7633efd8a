// Package sandbox talks to the component store that hosts generated
// screens. Records are addressed by physical id for single calls, but
// ids churn whenever the store rewrites a file, so durable references
// go through Handle and resolve by name.
package sandbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/DesignOS/backend/internal/infrastructure/resilience"
)

// ErrNotFound is returned when a component cannot be located.
var ErrNotFound = errors.New("component not found")

// Component is one stored screen/component record.
type Component struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Filename  string `json:"filename"`
	Code      string `json:"code,omitempty"`
	Prompt    string `json:"prompt,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// SaveResult is the store's response to a create or update.
type SaveResult struct {
	Success    bool       `json:"success"`
	Component  *Component `json:"component,omitempty"`
	PreviewURL string     `json:"previewUrl,omitempty"`
	FilePath   string     `json:"filePath,omitempty"`
	Error      string     `json:"error,omitempty"`
}

type listResponse struct {
	Components []Component `json:"components"`
}

// Client is a resty client bound to the store's REST surface and
// guarded by a circuit breaker and rate limiter.
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
	baseURL string
}

// Config configures the sandbox client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// New creates a sandbox client with retrying transport.
func New(cfg Config) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 2
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = nil

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	restyClient := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetTransport(retryClient.HTTPClient.Transport)

	breaker := resilience.New("sandbox", resilience.Settings{
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			if counts.ConsecutiveFailures >= 10 {
				return true
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 20 && failureRatio > 0.7
		},
	})

	return &Client{
		resty:   restyClient,
		limiter: rate.NewLimiter(rate.Limit(20), 40),
		breaker: breaker,
		baseURL: cfg.BaseURL,
	}
}

// do gates a request through the limiter and circuit breaker.
func (c *Client) do(ctx context.Context, fn func() (*resty.Response, error)) (*resty.Response, error) {
	if c.breaker.State() == resilience.StateOpen {
		return nil, resilience.ErrCircuitOpen
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := fn()
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() >= 500 {
			return resp, fmt.Errorf("server error: %s", resp.Status())
		}
		return resp, nil
	})
	if result == nil {
		return nil, err
	}
	return result.(*resty.Response), err
}

// Create stores a new component.
func (c *Client) Create(ctx context.Context, name, code, prompt string) (*SaveResult, error) {
	var result SaveResult
	resp, err := c.do(ctx, func() (*resty.Response, error) {
		return c.resty.R().
			SetContext(ctx).
			SetBody(map[string]string{"code": code, "name": name, "prompt": prompt}).
			SetResult(&result).
			Post(c.baseURL)
	})
	if err != nil {
		return nil, fmt.Errorf("sandbox create: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("sandbox create: %s", resp.Status())
	}
	if !result.Success {
		return nil, fmt.Errorf("sandbox create: %s", result.Error)
	}
	return &result, nil
}

// List returns all components, optionally with their code.
func (c *Client) List(ctx context.Context, withCode bool) ([]Component, error) {
	var result listResponse
	resp, err := c.do(ctx, func() (*resty.Response, error) {
		req := c.resty.R().SetContext(ctx)
		if withCode {
			req.SetQueryParam("withCode", "true")
		}
		return req.SetResult(&result).Get(c.baseURL)
	})
	if err != nil {
		return nil, fmt.Errorf("sandbox list: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("sandbox list: %s", resp.Status())
	}
	return result.Components, nil
}

// Get returns one component by id, including its code.
func (c *Client) Get(ctx context.Context, componentID string) (*Component, error) {
	var result Component
	resp, err := c.do(ctx, func() (*resty.Response, error) {
		return c.resty.R().
			SetContext(ctx).
			SetQueryParam("id", componentID).
			SetQueryParam("withCode", "true").
			SetResult(&result).
			Get(c.baseURL)
	})
	if err != nil {
		return nil, fmt.Errorf("sandbox get: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("sandbox get: %s", resp.Status())
	}
	if result.ID == "" {
		return nil, ErrNotFound
	}
	return &result, nil
}

// GetByName scans the store for a component whose name or filename
// matches. Filenames carry the .tsx suffix the store appends.
func (c *Client) GetByName(ctx context.Context, name string) (*Component, error) {
	components, err := c.List(ctx, true)
	if err != nil {
		return nil, err
	}
	for i := range components {
		if components[i].Name == name || components[i].Filename == name+".tsx" {
			return &components[i], nil
		}
	}
	return nil, ErrNotFound
}

// Update replaces a component's code in place. Name and prompt are
// optional and only sent when non-empty.
func (c *Client) Update(ctx context.Context, componentID, code, name, prompt string) (*SaveResult, error) {
	body := map[string]string{"code": code}
	if name != "" {
		body["name"] = name
	}
	if prompt != "" {
		body["prompt"] = prompt
	}

	var result SaveResult
	resp, err := c.do(ctx, func() (*resty.Response, error) {
		return c.resty.R().
			SetContext(ctx).
			SetQueryParam("id", componentID).
			SetBody(body).
			SetResult(&result).
			Put(c.baseURL)
	})
	if err != nil {
		return nil, fmt.Errorf("sandbox update: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("sandbox update: %s", resp.Status())
	}
	if !result.Success {
		return nil, fmt.Errorf("sandbox update: %s", result.Error)
	}
	return &result, nil
}

// Delete removes a component by id.
func (c *Client) Delete(ctx context.Context, componentID string) error {
	var result SaveResult
	resp, err := c.do(ctx, func() (*resty.Response, error) {
		return c.resty.R().
			SetContext(ctx).
			SetQueryParam("id", componentID).
			SetResult(&result).
			Delete(c.baseURL)
	})
	if err != nil {
		return fmt.Errorf("sandbox delete: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("sandbox delete: %s", resp.Status())
	}
	if !result.Success {
		return fmt.Errorf("sandbox delete: %s", result.Error)
	}
	return nil
}
