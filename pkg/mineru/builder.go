package mineru

import (
	"io"
	"slices"
)

// Builder assembles a Request starting from the service defaults. Invalid
// input is remembered and reported by Build.
type Builder struct {
	req *Request
	err error
}

func NewBuilder() *Builder {
	return &Builder{
		req: NewRequest(),
	}
}

func (b *Builder) WithFile(file io.Reader) *Builder {
	if file == nil {
		b.fail(invalidField("files", "file must not be nil"))
		return b
	}

	b.req.Files = append(b.req.Files, file)
	return b
}

func (b *Builder) WithFiles(files ...io.Reader) *Builder {
	for _, f := range files {
		b.WithFile(f)
	}

	return b
}

func (b *Builder) WithOutputDir(dir string) *Builder {
	b.req.OutputDir = dir
	return b
}

func (b *Builder) WithLanguages(languages ...string) *Builder {
	if len(languages) == 0 {
		b.fail(invalidField("languages", "at least one language is required"))
		return b
	}

	b.req.Languages = slices.Clone(languages)
	return b
}

func (b *Builder) WithBackend(backend string) *Builder {
	b.req.Backend = backend
	return b
}

func (b *Builder) WithParseMethod(method string) *Builder {
	b.req.ParseMethod = method
	return b
}

func (b *Builder) WithFormula(enable bool) *Builder {
	b.req.FormulaEnable = enable
	return b
}

func (b *Builder) WithTable(enable bool) *Builder {
	b.req.TableEnable = enable
	return b
}

func (b *Builder) WithServerURL(url string) *Builder {
	b.req.ServerURL = url
	return b
}

func (b *Builder) WithMarkdown(enable bool) *Builder {
	b.req.ReturnMarkdown = enable
	return b
}

func (b *Builder) WithMiddleJSON(enable bool) *Builder {
	b.req.ReturnMiddleJSON = enable
	return b
}

func (b *Builder) WithModelOutput(enable bool) *Builder {
	b.req.ReturnModelOutput = enable
	return b
}

func (b *Builder) WithContentList(enable bool) *Builder {
	b.req.ReturnContentList = enable
	return b
}

func (b *Builder) WithImages(enable bool) *Builder {
	b.req.ReturnImages = enable
	return b
}

func (b *Builder) WithZip(enable bool) *Builder {
	b.req.ResponseFormatZip = enable
	return b
}

func (b *Builder) WithPageRange(start, end int) *Builder {
	if start < 0 {
		b.fail(invalidField("start_page", "must be non-negative"))
		return b
	}

	if end < start {
		b.fail(invalidField("end_page", "must be greater than or equal to start_page"))
		return b
	}

	b.req.StartPage = start
	b.req.EndPage = end

	return b
}

// Build returns a copy of the assembled request, so the builder can keep
// being used afterwards.
func (b *Builder) Build() (*Request, error) {
	if b.err != nil {
		return nil, b.err
	}

	r := *b.req

	r.Files = slices.Clone(b.req.Files)
	r.Languages = slices.Clone(b.req.Languages)

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return &r, nil
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
