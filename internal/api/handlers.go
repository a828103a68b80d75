package api

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/checksum"
	"github.com/starford/dagaz/internal/journal"
)

// Handler holds API route handlers.
type Handler struct {
	svc *journal.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *journal.Service) *Handler {
	return &Handler{svc: svc}
}

func errStrings(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}

// ListEntries handles GET /api/entries.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, errs := h.svc.Entries(r.Context())

	items := make([]EntryListItem, 0, len(entries))
	for _, e := range entries {
		id, _ := e.ID()
		items = append(items, EntryListItem{
			Path:             e.Path,
			ID:               id,
			Tags:             e.Tags(),
			Size:             e.FileInfo.Size(),
			UpdatedAt:        e.FileInfo.ModTime(),
			HasMetadataError: e.MetadataErr != nil,
		})
	}
	// Walk output is unordered; sort for a stable response.
	sort.Slice(items, func(i, j int) bool { return items[i].Path < items[j].Path })

	writeJSON(w, http.StatusOK, EntryListResponse{
		Entries: items,
		Total:   len(items),
		Errors:  errStrings(errs),
	})
}

// GetEntry handles GET /api/entries/{id}.
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("id is required"))
		return
	}
	e, err := h.svc.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get entry failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}

	detail := EntryDetail{
		Path:      e.Path,
		ID:        id,
		Tags:      e.Tags(),
		Metadata:  e.Metadata,
		Body:      e.Body,
		Size:      e.FileInfo.Size(),
		UpdatedAt: e.FileInfo.ModTime(),
	}
	if e.MetadataErr != nil {
		detail.MetadataError = e.MetadataErr.Error()
	}
	if raw, rawErr := h.svc.ReadRaw(r.Context(), e.Path); rawErr == nil {
		detail.Checksum = checksum.Sum(raw)
	}
	writeJSON(w, http.StatusOK, detail)
}

// GetEntryHTML handles GET /api/entries/{id}/html, rendering the entry
// body as HTML.
func (h *Handler) GetEntryHTML(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("id is required"))
		return
	}
	e, err := h.svc.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get entry html failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if convErr := goldmark.Convert([]byte(e.Body), w); convErr != nil {
		slog.Error("markdown render failed", slog.String("id", id), slog.String("error", convErr.Error()))
	}
}

// ListTags handles GET /api/tags.
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, errs := h.svc.TagCounts(r.Context())
	if tags == nil {
		tags = []journal.TagCount{}
	}
	writeJSON(w, http.StatusOK, TagCountsResponse{
		Tags:   tags,
		Errors: errStrings(errs),
	})
}
