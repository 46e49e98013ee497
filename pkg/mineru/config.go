package mineru

import (
	"log/slog"
	"net/http"
	"time"
)

type Option func(*Client)

// WithClient sends requests through the given client. The client is not
// closed by Client.Close.
func WithClient(client *http.Client) Option {
	return func(c *Client) {
		c.transport = &HTTPTransport{Client: client}
	}
}

func WithTransport(transport Transport) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithTimeout limits each submission when the default HTTP client is used.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}
