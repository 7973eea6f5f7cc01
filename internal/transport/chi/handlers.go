package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/calder-search/docdex/internal/domain"
	"github.com/calder-search/docdex/internal/logger"
	"github.com/calder-search/docdex/internal/metrics"
	documentuc "github.com/calder-search/docdex/internal/usecase/document"
)

// Handler serves raw flat-document CRUD.
type Handler struct {
	docs *documentuc.Service
}

// NewHandler creates the document handler.
func NewHandler(docs *documentuc.Service) *Handler {
	return &Handler{docs: docs}
}

// Health reports server liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Upsert stores the document from the request body under the path ID.
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload documentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	doc := toDomainDocument(payload)
	created, err := h.docs.Upsert(r.Context(), id, doc)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	metrics.ObserveDocumentStored(created, len(doc.Fields()))

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]any{"id": id, "created": created})
}

// Get returns the document stored under the path ID.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, err := h.docs.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fromDomainDocument(doc))
}

// Delete removes the document stored under the path ID.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.docs.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Count returns the number of stored documents.
func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.docs.Count(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		writeError(w, http.StatusNotFound, "document not found")
	case errors.Is(err, domain.ErrInvalidDocumentID):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.FromContext(r.Context()).Error("document request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
