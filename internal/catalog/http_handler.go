package catalog

import (
	"errors"
	"net/http"

	"librarycatalog/internal/entity"
	"librarycatalog/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Register mounts the catalog routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /books", h.Search)
	mux.HandleFunc("POST /books", h.Add)
	mux.HandleFunc("GET /books/{isbn}", h.GetByISBN)
	mux.HandleFunc("DELETE /books/{isbn}", h.Remove)
	mux.HandleFunc("GET /snapshots", h.ListSnapshots)
	mux.HandleFunc("POST /snapshots", h.CaptureSnapshot)
	mux.HandleFunc("POST /snapshots/{id}/restore", h.RestoreSnapshot)
}

type addBookRequest struct {
	Title  string `json:"title" validate:"required,max=500"`
	Author string `json:"author" validate:"required,max=500"`
	ISBN   string `json:"isbn" validate:"required,max=32"`
}

// Search handles GET /books?q=&by=title|author
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	by := query.Get("by")
	strategy, ok := StrategyFor(by)
	if !ok {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "by must be title or author", []httpx.ErrorDetail{
			{Field: "by", Message: "unknown search field " + by},
		})
		return
	}
	if by == "" {
		by = "title"
	}

	books := h.svc.Search(strategy, query.Get("q"))
	httpx.JSONSuccess(w, r, books, map[string]any{
		"by":    by,
		"total": len(books),
	})
}

// GetByISBN handles GET /books/{isbn}
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	book, ok := h.svc.Get(r.PathValue("isbn"))
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "ISBN not found", nil)
		return
	}
	httpx.JSONSuccess(w, r, book, nil)
}

// Add handles POST /books
func (h *HTTPHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addBookRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "invalid book", details)
		return
	}

	book := entity.Book{Title: req.Title, Author: req.Author, ISBN: req.ISBN}
	h.svc.Add(book)
	httpx.JSONSuccessCreated(w, r, book)
}

// Remove handles DELETE /books/{isbn}. Unknown ISBNs still get 204.
func (h *HTTPHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.svc.Remove(r.PathValue("isbn"))
	httpx.JSONSuccessNoContent(w)
}

// ListSnapshots handles GET /snapshots
func (h *HTTPHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.Snapshots(r.Context())
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, recs, map[string]any{"total": len(recs)})
}

// CaptureSnapshot handles POST /snapshots
func (h *HTTPHandler) CaptureSnapshot(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Capture(r.Context())
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccessCreated(w, r, rec)
}

// RestoreSnapshot handles POST /snapshots/{id}/restore
func (h *HTTPHandler) RestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Restore(r.Context(), r.PathValue("id"))
	switch {
	case err == nil:
		httpx.JSONSuccess(w, r, rec, nil)
	case errors.Is(err, ErrSnapshotNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "snapshot not found", nil)
	case errors.Is(err, ErrSnapshotDecode):
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "SNAPSHOT_INVALID", err.Error(), nil)
	default:
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
