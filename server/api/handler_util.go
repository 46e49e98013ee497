package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/adrianliechti/mineru/pkg/extractor"
	"github.com/adrianliechti/mineru/pkg/mineru"
)

const maxUploadSize = 256 << 20

func valueFormat(r *http.Request) (*extractor.Format, error) {
	val := strings.ToLower(r.FormValue("format"))

	switch val {
	case "":
		return nil, nil

	case string(extractor.FormatMarkdown), string(extractor.FormatText):
		format := extractor.Format(val)
		return &format, nil
	}

	return nil, fmt.Errorf("invalid format: %s", val)
}

func readFile(r *http.Request) (*extractor.File, error) {
	file, header, err := r.FormFile("file")

	if err != nil {
		file, header, err = r.FormFile("files")
	}

	if err != nil {
		return nil, errors.New("missing file")
	}

	defer file.Close()

	data, err := io.ReadAll(file)

	if err != nil {
		return nil, err
	}

	return &extractor.File{
		Name: header.Filename,

		Content:     data,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}

func errorStatus(err error) int {
	var serviceErr *mineru.Error

	if errors.As(err, &serviceErr) {
		return serviceErr.StatusCode
	}

	switch {
	case errors.Is(err, extractor.ErrUnsupported):
		return http.StatusUnsupportedMediaType

	case errors.Is(err, mineru.ErrInvalidRequest):
		return http.StatusBadRequest

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}

	return http.StatusInternalServerError
}
