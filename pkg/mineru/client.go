package mineru

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"
)

const parsePath = "/file_parse"

// Client submits documents to a MinerU service. It is safe for concurrent
// use.
type Client struct {
	url string

	transport Transport
	client    *http.Client

	timeout time.Duration
	logger  *slog.Logger

	closed atomic.Bool
}

func New(url string, options ...Option) (*Client, error) {
	url = strings.TrimSpace(url)

	if url == "" {
		return nil, errors.New("invalid url")
	}

	c := &Client{
		url: strings.TrimRight(url, "/"),
	}

	for _, option := range options {
		option(c)
	}

	if c.transport == nil {
		c.client = newHTTPClient()
		c.client.Timeout = c.timeout

		c.transport = &HTTPTransport{Client: c.client}
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c, nil
}

func (c *Client) URL() string {
	return c.url
}

// Parse submits the request and returns the unread response. Non-success
// responses are returned as *Error. If ctx ends before the service answers,
// ctx.Err() is returned as is.
func (c *Client) Parse(ctx context.Context, req *Request) (*Response, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}

	if req == nil {
		return nil, fmt.Errorf("%w: request is nil", ErrInvalidRequest)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := Encode(req)

	if err != nil {
		return nil, err
	}

	defer body.Close()

	url := c.url + parsePath

	c.logger.DebugContext(ctx, "submitting documents", "url", url, "files", len(req.Files), "backend", req.Backend)

	resp, err := c.transport.Send(ctx, url, body)

	if err != nil {
		return nil, c.convertError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result := classifyResponse(resp)

		c.logger.WarnContext(ctx, "service returned error", "url", url, "status", result.StatusCode, "validation_errors", len(result.ValidationErrors))

		return nil, result
	}

	return newResponse(resp), nil
}

func (c *Client) convertError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if errors.Is(err, ErrTransmissionConsumed) {
		return err
	}

	if isTimeout(err) {
		return &Error{
			StatusCode: http.StatusRequestTimeout,
			Message:    messageTimeout,

			Err: err,
		}
	}

	return &Error{
		StatusCode: http.StatusServiceUnavailable,
		Message:    messageUnavailable,

		Err: err,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}

// Close rejects further submissions and releases idle connections of the
// default HTTP client. Responses already returned stay usable.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	if c.client != nil {
		c.client.CloseIdleConnections()
	}

	return nil
}
