package unstructured

import (
	"encoding/json"
	"net/http"

	"github.com/adrianliechti/mineru/pkg/extractor"

	"github.com/go-chi/chi/v5"
)

// Handler serves a subset of the Unstructured partition API, so existing
// Unstructured clients can use MinerU as backend.
type Handler struct {
	extractor extractor.Provider
}

func New(e extractor.Provider) (*Handler, error) {
	return &Handler{
		extractor: e,
	}, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Post("/general/v0/general", h.handlePartition)
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}
