package mineru

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"sync"
)

const (
	fieldFiles = "files"

	fieldOutputDir         = "output_dir"
	fieldLanguages         = "lang_list"
	fieldBackend           = "backend"
	fieldParseMethod       = "parse_method"
	fieldFormulaEnable     = "formula_enable"
	fieldTableEnable       = "table_enable"
	fieldServerURL         = "server_url"
	fieldReturnMarkdown    = "return_md"
	fieldReturnMiddleJSON  = "return_middle_json"
	fieldReturnModelOutput = "return_model_output"
	fieldReturnContentList = "return_content_list"
	fieldReturnImages      = "return_images"
	fieldResponseFormatZip = "response_format_zip"
	fieldStartPage         = "start_page_id"
	fieldEndPage           = "end_page_id"

	fileContentType = "application/octet-stream"
)

// Part is a single named field of a transmission. File parts carry a Reader,
// scalar parts a Value.
type Part struct {
	Name string

	FileName    string
	ContentType string
	Reader      io.Reader

	Value string
}

func (p Part) IsFile() bool {
	return p.Reader != nil
}

// Transmission is the multipart/form-data body of one submission. It is
// streamed exactly once: file content is never buffered.
type Transmission struct {
	mu sync.Mutex

	parts []Part

	writer   *multipart.Writer
	consumed bool
	closed   bool
}

// Encode turns a request into a transmission with a fixed part order: the
// files, then the scalar options.
func Encode(r *Request) (*Transmission, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: request is nil", ErrInvalidRequest)
	}

	var parts []Part

	for i, f := range r.Files {
		parts = append(parts, Part{
			Name: fieldFiles,

			FileName:    "file" + strconv.Itoa(i),
			ContentType: fileContentType,
			Reader:      f,
		})
	}

	parts = append(parts, scalar(fieldOutputDir, r.OutputDir))

	for _, lang := range r.Languages {
		parts = append(parts, scalar(fieldLanguages, lang))
	}

	parts = append(parts,
		scalar(fieldBackend, r.Backend),
		scalar(fieldParseMethod, r.ParseMethod),
		scalar(fieldFormulaEnable, strconv.FormatBool(r.FormulaEnable)),
		scalar(fieldTableEnable, strconv.FormatBool(r.TableEnable)),
	)

	if r.ServerURL != "" {
		parts = append(parts, scalar(fieldServerURL, r.ServerURL))
	}

	parts = append(parts,
		scalar(fieldReturnMarkdown, strconv.FormatBool(r.ReturnMarkdown)),
		scalar(fieldReturnMiddleJSON, strconv.FormatBool(r.ReturnMiddleJSON)),
		scalar(fieldReturnModelOutput, strconv.FormatBool(r.ReturnModelOutput)),
		scalar(fieldReturnContentList, strconv.FormatBool(r.ReturnContentList)),
		scalar(fieldReturnImages, strconv.FormatBool(r.ReturnImages)),
		scalar(fieldResponseFormatZip, strconv.FormatBool(r.ResponseFormatZip)),
		scalar(fieldStartPage, strconv.Itoa(r.StartPage)),
		scalar(fieldEndPage, strconv.Itoa(r.EndPage)),
	)

	return &Transmission{
		parts: parts,

		writer: multipart.NewWriter(io.Discard),
	}, nil
}

func scalar(name, value string) Part {
	return Part{
		Name:  name,
		Value: value,
	}
}

// Parts returns the parts in transmission order.
func (t *Transmission) Parts() []Part {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]Part(nil), t.parts...)
}

func (t *Transmission) ContentType() string {
	return t.writer.FormDataContentType()
}

// Reader returns the encoded body. It can only be obtained once.
func (t *Transmission) Reader() (io.Reader, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || t.consumed {
		return nil, ErrTransmissionConsumed
	}

	t.consumed = true

	var body segments

	w := multipart.NewWriter(&body)

	if err := w.SetBoundary(t.writer.Boundary()); err != nil {
		return nil, err
	}

	for _, p := range t.parts {
		if !p.IsFile() {
			if err := w.WriteField(p.Name, p.Value); err != nil {
				return nil, err
			}

			continue
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", multipart.FileContentDisposition(p.Name, p.FileName))
		h.Set("Content-Type", p.ContentType)

		if _, err := w.CreatePart(h); err != nil {
			return nil, err
		}

		body.append(p.Reader)
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return io.MultiReader(body.readers...), nil
}

// Close drops every part reference. Readers supplied by the caller are left
// open.
func (t *Transmission) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.parts = nil
	t.closed = true

	return nil
}

// segments collects multipart framing into buffers and splices the file
// readers in between, so the body can be streamed without copying files.
type segments struct {
	readers []io.Reader
	current *bytes.Buffer
}

func (s *segments) Write(p []byte) (int, error) {
	if s.current == nil {
		s.current = new(bytes.Buffer)
		s.readers = append(s.readers, s.current)
	}

	return s.current.Write(p)
}

func (s *segments) append(r io.Reader) {
	s.readers = append(s.readers, r)
	s.current = nil
}
