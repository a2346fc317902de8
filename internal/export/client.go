package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"spritepad/internal/domain"
)

// Result is the endpoint's answer to an export. Any HTTP response,
// including a 500, is a Result; only transport failures are errors.
type Result struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// OK reports whether the endpoint stored the file.
func (r *Result) OK() bool { return r.StatusCode == http.StatusOK }

// Client posts frame sequences to the export endpoint.
type Client struct {
	URL   string
	Shape Shape
	HTTP  *http.Client
}

// NewClient returns a client for the endpoint at url.
func NewClient(url string, shape Shape) *Client {
	return &Client{
		URL:   url,
		Shape: shape,
		HTTP:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Send encodes frames and posts them in one request.
func (c *Client) Send(ctx context.Context, frames []domain.Frame) (*Result, error) {
	body, err := Encode(frames, c.Shape)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post export: %w", err)
	}
	defer resp.Body.Close()

	msg, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return &Result{StatusCode: resp.StatusCode, Message: string(msg)}, nil
}
