package mineru_test

import (
	"io"
	"strings"
	"testing"

	"github.com/adrianliechti/mineru/pkg/mineru"

	"github.com/stretchr/testify/require"
)

func TestNewRequestDefaults(t *testing.T) {
	r := mineru.NewRequest(strings.NewReader("data"))

	require.Len(t, r.Files, 1)
	require.Equal(t, "./output", r.OutputDir)
	require.Equal(t, []string{"ch"}, r.Languages)
	require.Equal(t, "pipeline", r.Backend)
	require.Equal(t, "auto", r.ParseMethod)
	require.True(t, r.FormulaEnable)
	require.True(t, r.TableEnable)
	require.Empty(t, r.ServerURL)
	require.True(t, r.ReturnMarkdown)
	require.False(t, r.ReturnMiddleJSON)
	require.False(t, r.ReturnModelOutput)
	require.False(t, r.ReturnContentList)
	require.False(t, r.ReturnImages)
	require.False(t, r.ResponseFormatZip)
	require.Equal(t, 0, r.StartPage)
	require.Equal(t, 99999, r.EndPage)

	r.Languages[0] = "en"
	require.Equal(t, []string{"ch"}, mineru.DefaultLanguages)
}

func TestValidate(t *testing.T) {
	valid := func() *mineru.Request {
		return mineru.NewRequest(strings.NewReader("a"), strings.NewReader("b"))
	}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, valid().Validate())

		r := valid()
		r.StartPage = 3
		r.EndPage = 3
		require.NoError(t, r.Validate())
	})

	tests := []struct {
		name  string
		field string

		modify func(r *mineru.Request)
	}{
		{"no files", "files", func(r *mineru.Request) { r.Files = nil }},
		{"empty files", "files", func(r *mineru.Request) { r.Files = []io.Reader{} }},
		{"nil file", "files", func(r *mineru.Request) { r.Files = append(r.Files, nil) }},
		{"no languages", "languages", func(r *mineru.Request) { r.Languages = nil }},
		{"negative start", "start_page", func(r *mineru.Request) { r.StartPage = -1 }},
		{"end before start", "end_page", func(r *mineru.Request) { r.StartPage = 5; r.EndPage = 4 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.modify(r)

			err := r.Validate()

			require.ErrorIs(t, err, mineru.ErrInvalidRequest)
			require.Contains(t, err.Error(), tt.field)
		})
	}

	t.Run("nil request", func(t *testing.T) {
		var r *mineru.Request
		require.ErrorIs(t, r.Validate(), mineru.ErrInvalidRequest)
	})
}

func TestBuilder(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r, err := mineru.NewBuilder().
			WithFile(strings.NewReader("a")).
			Build()

		require.NoError(t, err)
		require.Equal(t, mineru.NewRequest(r.Files...), r)
	})

	t.Run("options", func(t *testing.T) {
		r, err := mineru.NewBuilder().
			WithFiles(strings.NewReader("a"), strings.NewReader("b")).
			WithOutputDir("/tmp/out").
			WithLanguages("en", "de").
			WithBackend("vlm-http-client").
			WithParseMethod("ocr").
			WithFormula(false).
			WithTable(false).
			WithServerURL("http://vlm:30000").
			WithMarkdown(false).
			WithMiddleJSON(true).
			WithModelOutput(true).
			WithContentList(true).
			WithImages(true).
			WithZip(true).
			WithPageRange(2, 7).
			Build()

		require.NoError(t, err)

		require.Len(t, r.Files, 2)
		require.Equal(t, "/tmp/out", r.OutputDir)
		require.Equal(t, []string{"en", "de"}, r.Languages)
		require.Equal(t, "vlm-http-client", r.Backend)
		require.Equal(t, "ocr", r.ParseMethod)
		require.False(t, r.FormulaEnable)
		require.False(t, r.TableEnable)
		require.Equal(t, "http://vlm:30000", r.ServerURL)
		require.False(t, r.ReturnMarkdown)
		require.True(t, r.ReturnMiddleJSON)
		require.True(t, r.ReturnModelOutput)
		require.True(t, r.ReturnContentList)
		require.True(t, r.ReturnImages)
		require.True(t, r.ResponseFormatZip)
		require.Equal(t, 2, r.StartPage)
		require.Equal(t, 7, r.EndPage)
	})

	t.Run("build copies state", func(t *testing.T) {
		b := mineru.NewBuilder().WithFile(strings.NewReader("a"))

		first, err := b.Build()
		require.NoError(t, err)

		b.WithFile(strings.NewReader("b"))

		second, err := b.Build()
		require.NoError(t, err)

		require.Len(t, first.Files, 1)
		require.Len(t, second.Files, 2)
	})

	tests := []struct {
		name  string
		field string

		build func() *mineru.Builder
	}{
		{"no files", "files", func() *mineru.Builder { return mineru.NewBuilder() }},
		{"nil file", "files", func() *mineru.Builder { return mineru.NewBuilder().WithFile(nil) }},
		{"no languages", "languages", func() *mineru.Builder {
			return mineru.NewBuilder().WithFile(strings.NewReader("a")).WithLanguages()
		}},
		{"negative start", "start_page", func() *mineru.Builder {
			return mineru.NewBuilder().WithFile(strings.NewReader("a")).WithPageRange(-1, 3)
		}},
		{"end before start", "end_page", func() *mineru.Builder {
			return mineru.NewBuilder().WithFile(strings.NewReader("a")).WithPageRange(4, 1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build().Build()

			require.ErrorIs(t, err, mineru.ErrInvalidRequest)
			require.Contains(t, err.Error(), tt.field)
		})
	}
}
