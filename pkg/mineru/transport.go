package mineru

import (
	"context"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Transport performs the network call of a submission. Implementations must
// honor ctx for cancellation of in-flight requests.
type Transport interface {
	Send(ctx context.Context, url string, body *Transmission) (*http.Response, error)
}

var _ Transport = &HTTPTransport{}

type HTTPTransport struct {
	Client *http.Client
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func (t *HTTPTransport) Send(ctx context.Context, url string, body *Transmission) (*http.Response, error) {
	reader, err := body.Reader()

	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)

	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", body.ContentType())
	req.Header.Set("Accept", "application/json, application/zip")

	client := t.Client

	if client == nil {
		client = http.DefaultClient
	}

	return client.Do(req)
}
