package extractor

import (
	"context"
	"errors"
)

type Provider interface {
	Extract(ctx context.Context, file File, options *ExtractOptions) (*Document, error)
}

var (
	ErrUnsupported = errors.New("unsupported type")
)

type File struct {
	Name string

	Content     []byte
	ContentType string
}

type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

type ExtractOptions struct {
	Format *Format
}

type Document struct {
	Name string

	Text        string
	ContentType string

	Sections []Section

	// Archive holds the raw result archive when the provider returns one
	// instead of text.
	Archive []byte
}

type Section struct {
	Title string
	Level int

	Text string
}

func (d *Document) IsArchive() bool {
	return len(d.Archive) > 0
}
