package mineru

import (
	"bytes"
	"context"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/adrianliechti/mineru/pkg/extractor"
	"github.com/adrianliechti/mineru/pkg/mineru"
	"github.com/adrianliechti/mineru/pkg/text"
)

var _ extractor.Provider = &Client{}

type Client struct {
	client  *mineru.Client
	options []mineru.Option

	template *mineru.Request

	zip bool
}

func New(url string, options ...Option) (*Client, error) {
	c := &Client{
		template: mineru.NewRequest(),
	}

	for _, option := range options {
		option(c)
	}

	if c.template == nil {
		c.template = mineru.NewRequest()
	}

	client, err := mineru.New(url, c.options...)

	if err != nil {
		return nil, err
	}

	c.client = client

	return c, nil
}

func (c *Client) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	if options == nil {
		options = new(extractor.ExtractOptions)
	}

	if !isSupported(file) {
		return nil, extractor.ErrUnsupported
	}

	req := c.request(file)

	resp, err := c.client.Parse(ctx, req)

	if err != nil {
		return nil, err
	}

	defer resp.Close()

	if resp.IsZip() {
		data, err := resp.Bytes()

		if err != nil {
			return nil, err
		}

		return &extractor.Document{
			Name: file.Name,

			ContentType: "application/zip",
			Archive:     data,
		}, nil
	}

	markdown, err := resp.Markdown()

	if err != nil {
		return nil, err
	}

	markdown = strings.TrimSpace(markdown)

	result := &extractor.Document{
		Name: file.Name,

		Text:        markdown,
		ContentType: "text/markdown",

		Sections: convertSections(text.Sections(markdown)),
	}

	if options.Format != nil && *options.Format == extractor.FormatText {
		result.Text = text.Plain(markdown)
		result.ContentType = "text/plain"
	}

	return result, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) request(file extractor.File) *mineru.Request {
	req := *c.template

	req.Files = []io.Reader{bytes.NewReader(file.Content)}
	req.Languages = slices.Clone(c.template.Languages)

	if c.zip {
		req.ResponseFormatZip = true
	}

	return &req
}

func convertSections(sections []text.Section) []extractor.Section {
	var result []extractor.Section

	for _, s := range sections {
		result = append(result, extractor.Section{
			Title: s.Title,
			Level: s.Level,

			Text: s.Text,
		})
	}

	return result
}

func isSupported(file extractor.File) bool {
	if file.Name != "" {
		ext := strings.ToLower(path.Ext(file.Name))

		if slices.Contains(SupportedExtensions, ext) {
			return true
		}
	}

	if file.ContentType != "" {
		contentType, _, _ := strings.Cut(strings.ToLower(file.ContentType), ";")

		if slices.Contains(SupportedMimeTypes, strings.TrimSpace(contentType)) {
			return true
		}
	}

	return false
}
