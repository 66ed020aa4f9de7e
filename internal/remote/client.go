// Package remote is the typed client of the REST API behind the console.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Client calls the remote API. Copies made with WithAuth share the transport
// and carry one console client's Authorization header.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *fiber.Client
	auth    *AuthHeader
}

// NewClient returns an unauthenticated client for baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &fiber.Client{},
	}
}

// WithAuth returns a copy of the client that sends header on every call.
func (c *Client) WithAuth(header *AuthHeader) *Client {
	clone := *c
	clone.auth = header
	return &clone
}

// Auth returns the header bound to this client, if any.
func (c *Client) Auth() *AuthHeader {
	return c.auth
}

// BaseURL returns the API root the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) send(ctx context.Context, method, path string, body any) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	url := c.baseURL + path
	var agent *fiber.Agent
	switch method {
	case fiber.MethodGet:
		agent = c.http.Get(url)
	case fiber.MethodPost:
		agent = c.http.Post(url)
	case fiber.MethodPut:
		agent = c.http.Put(url)
	case fiber.MethodDelete:
		agent = c.http.Delete(url)
	default:
		return 0, nil, fmt.Errorf("unsupported method %s", method)
	}

	agent.Timeout(c.deadline(ctx))
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if value, ok := c.auth.Value(); ok {
		agent.Set(fiber.HeaderAuthorization, value)
	}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			fiber.ReleaseAgent(agent)
			return 0, nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		agent.ContentType(fiber.MIMEApplicationJSON)
		agent.Body(payload)
	}

	status, respBody, errs := agent.Bytes()
	if len(errs) > 0 {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, errors.Join(errs...))
	}
	return status, respBody, nil
}

func (c *Client) deadline(ctx context.Context) time.Duration {
	timeout := c.timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		timeout = time.Millisecond
	}
	return timeout
}

// call performs the request and decodes the envelope's data into out.
// A nil out only checks the status and success flag.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	status, respBody, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	endpoint := method + " " + path

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return apiError(status, respBody)
	}

	trimmed := bytes.TrimSpace(respBody)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(trimmed, out); err != nil {
			return malformed(endpoint, "decode list: %v", err)
		}
		return nil
	}
	if len(trimmed) == 0 {
		if out == nil {
			return nil
		}
		return malformed(endpoint, "empty body")
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return malformed(endpoint, "body is not a JSON object: %v", err)
	}
	if env.Success != nil && !*env.Success {
		return &APIError{Status: status, Message: env.Message}
	}
	if out == nil {
		return nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return malformed(endpoint, "missing data")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return malformed(endpoint, "decode data: %v", err)
	}
	return nil
}

func apiError(status int, body []byte) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &APIError{Status: status}
	}
	return &APIError{Status: status, Message: env.Message}
}
