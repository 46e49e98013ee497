package api

import (
	"encoding/json"
	"net/http"

	"github.com/adrianliechti/mineru/pkg/extractor"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	extractor extractor.Provider
}

func New(e extractor.Provider) (*Handler, error) {
	h := &Handler{
		extractor: e,
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Post("/extract", h.handleExtract)
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)

	text := http.StatusText(code)

	if err != nil {
		text = err.Error()
	}

	w.Write([]byte(text))
}
