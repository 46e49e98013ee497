package unstructured

import (
	"errors"
	"io"
	"net/http"

	"github.com/adrianliechti/mineru/pkg/extractor"
	"github.com/adrianliechti/mineru/pkg/mineru"

	"github.com/google/uuid"
)

func (h *Handler) handlePartition(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("files")

	if err != nil {
		file, header, err = r.FormFile("file")
	}

	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}

	defer file.Close()

	data, err := io.ReadAll(file)

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	input := extractor.File{
		Name: header.Filename,

		Content:     data,
		ContentType: header.Header.Get("Content-Type"),
	}

	format := extractor.FormatText

	document, err := h.extractor.Extract(r.Context(), input, &extractor.ExtractOptions{
		Format: &format,
	})

	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	if document.IsArchive() {
		http.Error(w, "archive results cannot be partitioned", http.StatusNotAcceptable)
		return
	}

	metadata := PartitionMetadata{
		FileName: input.Name,
		FileType: input.ContentType,
	}

	result := []Partition{}

	for _, s := range document.Sections {
		var parent string

		if s.Title != "" {
			title := Partition{
				ID:   uuid.NewString(),
				Type: ElementTypeTitle,
				Text: s.Title,

				Metadata: metadata,
			}

			title.Metadata.CategoryDepth = s.Level - 1

			parent = title.ID
			result = append(result, title)
		}

		if s.Text == "" {
			continue
		}

		text := Partition{
			ID:   uuid.NewString(),
			Type: ElementTypeNarrativeText,
			Text: s.Text,

			Metadata: metadata,
		}

		text.Metadata.ParentID = parent

		result = append(result, text)
	}

	if len(document.Sections) == 0 && document.Text != "" {
		result = append(result, Partition{
			ID:   uuid.NewString(),
			Type: ElementTypeNarrativeText,
			Text: document.Text,

			Metadata: metadata,
		})
	}

	writeJson(w, result)
}

func errorStatus(err error) int {
	var serviceErr *mineru.Error

	switch {
	case errors.As(err, &serviceErr):
		return serviceErr.StatusCode

	case errors.Is(err, extractor.ErrUnsupported):
		return http.StatusUnsupportedMediaType
	}

	return http.StatusInternalServerError
}
