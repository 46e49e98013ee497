package mineru_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adrianliechti/mineru/pkg/mineru"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := mineru.New("")
	require.Error(t, err)

	_, err = mineru.New("   ")
	require.Error(t, err)

	c, err := mineru.New("http://localhost:8000//")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000", c.URL())
}

func TestParseSendsForm(t *testing.T) {
	var fields []field
	var path string

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		fields = readFields(t, r.Header.Get("Content-Type"), r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleBody))
	})

	c := newClient(t, server.URL+"/")

	req, err := mineru.NewBuilder().
		WithFiles(strings.NewReader("one"), strings.NewReader("two")).
		WithLanguages("en").
		WithPageRange(0, 5).
		Build()

	require.NoError(t, err)

	resp, err := c.Parse(t.Context(), req)
	require.NoError(t, err)

	defer resp.Close()

	require.Equal(t, "/file_parse", path)

	require.Equal(t, field{Name: "files", FileName: "file0", Value: "one"}, fields[0])
	require.Equal(t, field{Name: "files", FileName: "file1", Value: "two"}, fields[1])
	require.Equal(t, field{Name: "output_dir", Value: "./output"}, fields[2])
	require.Equal(t, field{Name: "lang_list", Value: "en"}, fields[3])
	require.Equal(t, field{Name: "end_page_id", Value: "5"}, fields[len(fields)-1])

	markdown, err := resp.Markdown()
	require.NoError(t, err)
	require.Equal(t, "Test content", markdown)
}

func TestParseInvalidRequest(t *testing.T) {
	var calls atomic.Int64

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	c := newClient(t, server.URL)

	_, err := c.Parse(t.Context(), nil)
	require.ErrorIs(t, err, mineru.ErrInvalidRequest)

	req := sampleRequest()
	req.EndPage = -1

	_, err = c.Parse(t.Context(), req)
	require.ErrorIs(t, err, mineru.ErrInvalidRequest)
	require.Contains(t, err.Error(), "end_page")

	_, err = c.Parse(t.Context(), mineru.NewRequest())
	require.ErrorIs(t, err, mineru.ErrInvalidRequest)
	require.Contains(t, err.Error(), "files")

	require.Zero(t, calls.Load())
}

func TestParseCancelledBeforeSubmit(t *testing.T) {
	var calls atomic.Int64

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	c := newClient(t, server.URL)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	resp, err := c.Parse(ctx, sampleRequest())

	require.Nil(t, resp)
	require.ErrorIs(t, err, context.Canceled)

	var serviceErr *mineru.Error
	require.False(t, errors.As(err, &serviceErr))

	require.Zero(t, calls.Load())
}

func TestParseCancelledInFlight(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)

		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})

	c := newClient(t, server.URL)

	ctx, cancel := context.WithCancel(t.Context())
	time.AfterFunc(50*time.Millisecond, cancel)

	_, err := c.Parse(ctx, sampleRequest())
	require.ErrorIs(t, err, context.Canceled)

	var serviceErr *mineru.Error
	require.False(t, errors.As(err, &serviceErr))
}

func TestParseTimeout(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)

		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})

	c := newClient(t, server.URL, mineru.WithTimeout(50*time.Millisecond))

	_, err := c.Parse(t.Context(), sampleRequest())

	e := serviceError(t, err)

	require.Equal(t, http.StatusRequestTimeout, e.StatusCode)
	require.Equal(t, "Request to the service timed out.", e.Message)
	require.True(t, e.Timeout())
	require.NotNil(t, errors.Unwrap(e))
}

func TestParseUnavailable(t *testing.T) {
	server := newServer(t, reply(http.StatusOK, "application/json", sampleBody))
	url := server.URL
	server.Close()

	c := newClient(t, url)

	_, err := c.Parse(t.Context(), sampleRequest())

	e := serviceError(t, err)

	require.Equal(t, http.StatusServiceUnavailable, e.StatusCode)
	require.Equal(t, "Failed to send request to the service.", e.Message)
	require.False(t, e.Timeout())
	require.NotNil(t, errors.Unwrap(e))
}

type stubTransport struct {
	calls atomic.Int64

	resp *http.Response
	err  error
}

func (s *stubTransport) Send(ctx context.Context, url string, body *mineru.Transmission) (*http.Response, error) {
	s.calls.Add(1)

	if _, err := body.Reader(); err != nil {
		return nil, err
	}

	return s.resp, s.err
}

type trackingBody struct {
	io.Reader
	closed atomic.Int64
}

func (b *trackingBody) Close() error {
	b.closed.Add(1)
	return nil
}

func TestParseDrainsErrorBody(t *testing.T) {
	body := &trackingBody{Reader: strings.NewReader("boom")}

	transport := &stubTransport{
		resp: &http.Response{
			StatusCode: http.StatusInternalServerError,
			Header:     http.Header{"Content-Type": []string{"text/plain"}},
			Body:       body,
		},
	}

	c := newClient(t, "http://mineru.invalid", mineru.WithTransport(transport))

	_, err := c.Parse(t.Context(), sampleRequest())

	e := serviceError(t, err)
	require.Equal(t, "boom", e.Body)
	require.EqualValues(t, 1, body.closed.Load())
}

func TestResponseCloseReleasesBodyOnce(t *testing.T) {
	body := &trackingBody{Reader: strings.NewReader(sampleBody)}

	transport := &stubTransport{
		resp: &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       body,
		},
	}

	c := newClient(t, "http://mineru.invalid", mineru.WithTransport(transport))

	resp, err := c.Parse(t.Context(), sampleRequest())
	require.NoError(t, err)

	require.Zero(t, body.closed.Load())

	resp.Close()
	resp.Close()

	require.EqualValues(t, 1, body.closed.Load())
}

func TestParseTransportError(t *testing.T) {
	transport := &stubTransport{
		err: errors.New("tls: handshake failure"),
	}

	c := newClient(t, "http://mineru.invalid", mineru.WithTransport(transport))

	_, err := c.Parse(t.Context(), sampleRequest())

	e := serviceError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, e.StatusCode)
	require.EqualError(t, errors.Unwrap(e), "tls: handshake failure")
}

func TestClientClose(t *testing.T) {
	transport := &stubTransport{}

	c, err := mineru.New("http://mineru.invalid", mineru.WithTransport(transport), mineru.WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err = c.Parse(t.Context(), sampleRequest())
	require.ErrorIs(t, err, mineru.ErrClientClosed)
	require.Zero(t, transport.calls.Load())
}
