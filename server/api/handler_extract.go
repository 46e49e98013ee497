package api

import (
	"log/slog"
	"net/http"

	"github.com/adrianliechti/mineru/pkg/extractor"

	"github.com/google/uuid"
)

func (h *Handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	format, err := valueFormat(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	file, err := readFile(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	options := &extractor.ExtractOptions{
		Format: format,
	}

	document, err := h.extractor.Extract(r.Context(), *file, options)

	if err != nil {
		status := errorStatus(err)

		slog.ErrorContext(r.Context(), "extraction failed", "file", file.Name, "status", status, "error", err)

		writeError(w, status, err)
		return
	}

	id := uuid.NewString()

	if document.IsArchive() {
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="`+id+`.zip"`)

		w.Write(document.Archive)
		return
	}

	result := Document{
		ID: id,

		Name:        document.Name,
		ContentType: document.ContentType,

		Text: document.Text,
	}

	for _, s := range document.Sections {
		result.Sections = append(result.Sections, Section{
			Title: s.Title,
			Level: s.Level,

			Text: s.Text,
		})
	}

	writeJson(w, result)
}
