package handler

import (
	"log/slog"
	"net/http"

	"hifadhi/internal/domain/services"
	"hifadhi/internal/httputil"
)

// TrashHandler handles trash lifecycle HTTP requests
type TrashHandler struct {
	trashService services.TrashService
	logger       *slog.Logger
}

// NewTrashHandler creates a new trash handler
func NewTrashHandler(trashService services.TrashService, logger *slog.Logger) *TrashHandler {
	return &TrashHandler{
		trashService: trashService,
		logger:       logger,
	}
}

// ToggleTrashed flips the trash flag; the same call trashes and restores
// POST /api/items/{id}/trash
func (h *TrashHandler) ToggleTrashed(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "item ID is required")
		return
	}

	item, err := h.trashService.ToggleTrashed(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}

// ListTrashed returns the flat trash view across the whole tree
// GET /api/trash
func (h *TrashHandler) ListTrashed(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	items, err := h.trashService.ListTrashed(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}

// DeleteForever permanently removes a trashed item and its subtree
// DELETE /api/items/{id}
func (h *TrashHandler) DeleteForever(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "item ID is required")
		return
	}

	if err := h.trashService.DeleteForever(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
