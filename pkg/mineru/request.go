package mineru

import (
	"fmt"
	"io"
	"slices"
)

const (
	DefaultOutputDir   = "./output"
	DefaultBackend     = "pipeline"
	DefaultParseMethod = "auto"

	DefaultFormulaEnable = true
	DefaultTableEnable   = true

	DefaultReturnMarkdown    = true
	DefaultReturnMiddleJSON  = false
	DefaultReturnModelOutput = false
	DefaultReturnContentList = false
	DefaultReturnImages      = false
	DefaultResponseFormatZip = false

	DefaultStartPage = 0
	DefaultEndPage   = 99999
)

var DefaultLanguages = []string{"ch"}

// Request holds the files and parsing options of a single submission.
//
// The zero value does not carry the service defaults; use NewRequest or
// Builder to obtain a request populated with them.
type Request struct {
	Files []io.Reader

	OutputDir string
	Languages []string

	Backend     string
	ParseMethod string

	FormulaEnable bool
	TableEnable   bool

	// ServerURL is sent only when not empty.
	ServerURL string

	ReturnMarkdown    bool
	ReturnMiddleJSON  bool
	ReturnModelOutput bool
	ReturnContentList bool
	ReturnImages      bool
	ResponseFormatZip bool

	StartPage int
	EndPage   int
}

func NewRequest(files ...io.Reader) *Request {
	return &Request{
		Files: files,

		OutputDir: DefaultOutputDir,
		Languages: slices.Clone(DefaultLanguages),

		Backend:     DefaultBackend,
		ParseMethod: DefaultParseMethod,

		FormulaEnable: DefaultFormulaEnable,
		TableEnable:   DefaultTableEnable,

		ReturnMarkdown:    DefaultReturnMarkdown,
		ReturnMiddleJSON:  DefaultReturnMiddleJSON,
		ReturnModelOutput: DefaultReturnModelOutput,
		ReturnContentList: DefaultReturnContentList,
		ReturnImages:      DefaultReturnImages,
		ResponseFormatZip: DefaultResponseFormatZip,

		StartPage: DefaultStartPage,
		EndPage:   DefaultEndPage,
	}
}

// Validate reports the first violated constraint as an error wrapping
// ErrInvalidRequest. The message starts with the offending field name.
func (r *Request) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidRequest)
	}

	if len(r.Files) == 0 {
		return invalidField("files", "at least one file is required")
	}

	for i, f := range r.Files {
		if f == nil {
			return invalidField("files", fmt.Sprintf("file %d is nil", i))
		}
	}

	if len(r.Languages) == 0 {
		return invalidField("languages", "at least one language is required")
	}

	if r.StartPage < 0 {
		return invalidField("start_page", "must be non-negative")
	}

	if r.EndPage < r.StartPage {
		return invalidField("end_page", "must be greater than or equal to start_page")
	}

	return nil
}

func invalidField(field, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidRequest, field, reason)
}
