package config

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/adrianliechti/mineru/pkg/mineru"
)

type requestConfig struct {
	Backend     string   `yaml:"backend"`
	ParseMethod string   `yaml:"parse_method"`
	Languages   []string `yaml:"languages"`

	Formula *bool `yaml:"formula"`
	Table   *bool `yaml:"table"`

	ServerURL string `yaml:"server_url"`

	StartPage *int `yaml:"start_page"`
	EndPage   *int `yaml:"end_page"`

	Images      *bool `yaml:"images"`
	MiddleJSON  *bool `yaml:"middle_json"`
	ModelOutput *bool `yaml:"model_output"`
	ContentList *bool `yaml:"content_list"`

	Zip bool `yaml:"zip"`
}

func (cfg *Config) registerRequest(r *requestConfig) error {
	if r == nil {
		return nil
	}

	t := cfg.template

	if r.Backend != "" {
		t.Backend = r.Backend
	}

	if r.ParseMethod != "" {
		t.ParseMethod = r.ParseMethod
	}

	if len(r.Languages) > 0 {
		t.Languages = slices.Clone(r.Languages)
	}

	setBool(&t.FormulaEnable, r.Formula)
	setBool(&t.TableEnable, r.Table)

	t.ServerURL = r.ServerURL

	if r.StartPage != nil {
		t.StartPage = *r.StartPage
	}

	if r.EndPage != nil {
		t.EndPage = *r.EndPage
	}

	setBool(&t.ReturnImages, r.Images)
	setBool(&t.ReturnMiddleJSON, r.MiddleJSON)
	setBool(&t.ReturnModelOutput, r.ModelOutput)
	setBool(&t.ReturnContentList, r.ContentList)

	cfg.zip = r.Zip

	probe := *t
	probe.Files = []io.Reader{strings.NewReader("")}

	if err := probe.Validate(); err != nil {
		return fmt.Errorf("invalid request config: %w", err)
	}

	return nil
}

// Request returns a new request for the given files carrying the configured
// options.
func (cfg *Config) Request(files ...io.Reader) (*mineru.Request, error) {
	r := *cfg.template

	r.Files = files
	r.Languages = slices.Clone(cfg.template.Languages)
	r.ResponseFormatZip = cfg.zip

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return &r, nil
}

func setBool(target *bool, value *bool) {
	if value != nil {
		*target = *value
	}
}
