package mineru

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"strings"
	"sync"
)

// Response gives access to the body of a successful submission. The body is
// a single stream: Body caches its result, every other view consumes what is
// left of the stream. Close must be called once the response is no longer
// needed.
type Response struct {
	mu sync.Mutex

	resp *http.Response
	body io.ReadCloser

	parsed *ResponseBody
	closed bool
}

func newResponse(resp *http.Response) *Response {
	return &Response{
		resp: resp,
		body: resp.Body,
	}
}

func (r *Response) StatusCode() int {
	return r.resp.StatusCode
}

// ContentType returns the media type of the response without parameters.
func (r *Response) ContentType() string {
	value := r.resp.Header.Get("Content-Type")

	if value == "" {
		return ""
	}

	mediatype, _, err := mime.ParseMediaType(value)

	if err != nil {
		return strings.TrimSpace(strings.Split(value, ";")[0])
	}

	return mediatype
}

// IsZip reports whether the service answered with an archive.
func (r *Response) IsZip() bool {
	return strings.Contains(strings.ToLower(r.ContentType()), "zip")
}

// Body decodes the stream as a ResponseBody. The result is cached, later
// calls do not touch the stream again.
func (r *Response) Body() (*ResponseBody, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.readBody()
}

func (r *Response) readBody() (*ResponseBody, error) {
	if r.closed {
		return nil, ErrResponseClosed
	}

	if r.parsed != nil {
		return r.parsed, nil
	}

	var body ResponseBody

	if err := json.NewDecoder(r.body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding response body: %w", err)
	}

	r.parsed = &body
	return r.parsed, nil
}

// Markdown returns the markdown of the first result in wire order. The
// service is expected to list "file0" first; the wire format does not
// guarantee it.
func (r *Response) Markdown() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return "", ErrResponseClosed
	}

	if r.IsZip() {
		return "", ErrZipResponse
	}

	body, err := r.readBody()

	if err != nil {
		return "", err
	}

	_, result, ok := body.Results.First()

	if !ok {
		return "", ErrNoResults
	}

	if result.Markdown == "" {
		return "", ErrNoMarkdown
	}

	return result.Markdown, nil
}

// JSON decodes the stream into a generic value without touching the Body
// cache. Numbers are kept as json.Number.
func (r *Response) JSON() (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrResponseClosed
	}

	dec := json.NewDecoder(r.body)
	dec.UseNumber()

	var value any

	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("decoding response body: %w", err)
	}

	return value, nil
}

// Bytes reads the remaining stream into memory.
func (r *Response) Bytes() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrResponseClosed
	}

	var buf bytes.Buffer

	if _, err := io.Copy(&buf, r.body); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// SaveToFile writes the remaining stream to path, creating or truncating
// the file.
func (r *Response) SaveToFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: path: must not be empty", ErrInvalidRequest)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrResponseClosed
	}

	f, err := os.Create(path)

	if err != nil {
		return err
	}

	if _, err := io.Copy(f, r.body); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Reader returns the underlying stream. It stays owned by the response and
// is closed by Close.
func (r *Response) Reader() (io.Reader, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrResponseClosed
	}

	return struct{ io.Reader }{r.body}, nil
}

// Close releases the stream and the connection behind it. Calling it more
// than once is a no-op.
func (r *Response) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}

	r.closed = true
	r.parsed = nil

	return r.body.Close()
}
