package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RPCError is an error envelope returned by the panel. The message is
// surfaced verbatim; the only classification anyone performs on it is the
// deploy trigger's transient check.
type RPCError struct {
	Message string
}

func (e *RPCError) Error() string {
	return e.Message
}

// Client talks to the panel's RPC endpoint. Every operation is an
// authenticated POST of {"json": payload} to a per-operation path, answered
// by either {result:{data:{json:...}}} or {error:...}.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

type requestBody struct {
	JSON any `json:"json"`
}

type envelope struct {
	Result *struct {
		Data struct {
			JSON json.RawMessage `json:"json"`
		} `json:"data"`
	} `json:"result"`
	Error json.RawMessage `json:"error"`
}

// Call sends one operation and decodes the response envelope once, at the
// boundary. It returns the result data on success and *RPCError when the
// panel answered with an error branch. A body that is not JSON at all is a
// malformed response, reported as such rather than swallowed.
func (c *Client) Call(ctx context.Context, operation string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(requestBody{JSON: payload})
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", operation, err)
	}

	url := c.baseURL + "/api/trpc/" + operation
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", operation, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", operation, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("malformed response from %s: %w (body: %s)", operation, err, snippet(raw))
	}

	if len(env.Error) > 0 {
		return nil, &RPCError{Message: errorMessage(env.Error)}
	}
	if env.Result != nil {
		return env.Result.Data.JSON, nil
	}
	return nil, nil
}

// errorMessage walks the known error envelope shapes: error.json.message,
// then error.message, then the raw error object as a string.
func errorMessage(raw json.RawMessage) string {
	var nested struct {
		JSON struct {
			Message string `json:"message"`
		} `json:"json"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		if nested.JSON.Message != "" {
			return nested.JSON.Message
		}
		if nested.Message != "" {
			return nested.Message
		}
	}
	return string(raw)
}

func snippet(b []byte) string {
	const max = 200
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
