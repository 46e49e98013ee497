package mineru

import (
	"net/http"
	"time"

	"github.com/adrianliechti/mineru/pkg/mineru"
)

var SupportedExtensions = []string{
	".pdf",

	".png",
	".jpg",
	".jpeg",
	".webp",
	".gif",
	".bmp",
	".tif",
	".tiff",
}

var SupportedMimeTypes = []string{
	"application/pdf",

	"image/png",
	"image/jpeg",
	"image/webp",
	"image/gif",
	"image/bmp",
	"image/tiff",
}

type Option func(*Client)

func WithClient(client *http.Client) Option {
	return func(c *Client) {
		c.options = append(c.options, mineru.WithClient(client))
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.options = append(c.options, mineru.WithTimeout(timeout))
	}
}

// WithRequest uses the given request as template for every extraction. Its
// files are ignored.
func WithRequest(r *mineru.Request) Option {
	return func(c *Client) {
		c.template = r
	}
}

// WithZip makes the extractor return the result archive instead of text.
func WithZip() Option {
	return func(c *Client) {
		c.zip = true
	}
}
