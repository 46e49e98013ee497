package mineru_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adrianliechti/mineru/pkg/mineru"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

const sampleBody = `{"backend":"pipeline","version":"2.6.3","results":{"file0":{"md_content":"Test content"}}}`

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()
	r.Post("/file_parse", handler)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return server
}

func newClient(t *testing.T, url string, options ...mineru.Option) *mineru.Client {
	t.Helper()

	c, err := mineru.New(url, options...)
	require.NoError(t, err)

	t.Cleanup(func() { c.Close() })

	return c
}

func reply(status int, contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}

		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func sampleRequest() *mineru.Request {
	return mineru.NewRequest(strings.NewReader("%PDF-1.4 test"))
}

// parse submits a sample request to a server answering with the given
// status, content type and body.
func parse(t *testing.T, status int, contentType, body string) (*mineru.Response, error) {
	t.Helper()

	server := newServer(t, reply(status, contentType, body))
	c := newClient(t, server.URL)

	resp, err := c.Parse(t.Context(), sampleRequest())

	if resp != nil {
		t.Cleanup(func() { resp.Close() })
	}

	return resp, err
}
