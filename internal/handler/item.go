package handler

import (
	"log/slog"
	"net/http"

	"hifadhi/internal/domain/services"
	"hifadhi/internal/httputil"
)

// ItemHandler handles item-level HTTP requests
type ItemHandler struct {
	itemService services.ItemService
	logger      *slog.Logger
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService services.ItemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		logger:      logger,
	}
}

// HealthCheck responds with a simple status
// GET /health
func (h *ItemHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListItems lists the children of a parent folder, or root items when no
// parent_id query parameter is given. Trashed items are included; callers
// rendering a browse view filter on is_trash.
// GET /api/items?parent_id={id}
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var parentID *string
	if p := r.URL.Query().Get("parent_id"); p != "" {
		parentID = &p
	}

	items, err := h.itemService.ListChildren(r.Context(), userID, parentID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}

// GetItem retrieves a single item
// GET /api/items/{id}
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "item ID is required")
		return
	}

	item, err := h.itemService.GetItem(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}

// renameRequest is the PATCH body for renames.
type renameRequest struct {
	Name string `json:"name"`
}

// RenameItem renames an item; folder renames rewrite descendant paths
// PATCH /api/items/{id}
func (h *ItemHandler) RenameItem(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "item ID is required")
		return
	}

	var req renameRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.itemService.Rename(r.Context(), id, userID, req.Name)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}

// ToggleStarred flips the star flag on an item
// POST /api/items/{id}/star
func (h *ItemHandler) ToggleStarred(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "item ID is required")
		return
	}

	item, err := h.itemService.ToggleStarred(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}

// ListStarred lists the owner's starred items
// GET /api/starred
func (h *ItemHandler) ListStarred(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	items, err := h.itemService.ListStarred(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}
