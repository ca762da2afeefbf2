package handler

import (
	"log/slog"
	"net/http"

	"hifadhi/internal/domain/models"
	"hifadhi/internal/domain/services"
	"hifadhi/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	itemService  services.ItemService
	treeService  services.TreeService
	trashService services.TrashService
	logger       *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(itemService services.ItemService, treeService services.TreeService, trashService services.TrashService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		itemService:  itemService,
		treeService:  treeService,
		trashService: trashService,
		logger:       logger,
	}
}

// FolderContents is the browse view of a folder: the folder itself plus
// its non-trashed children.
type FolderContents struct {
	Folder *models.Item  `json:"folder"`
	Items  []models.Item `json:"items"`
}

// CreateFolder creates a new folder
// POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req services.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = userID

	folder, err := h.itemService.CreateFolder(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// GetFolder retrieves a folder and its visible children
// GET /api/folders/{id}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder ID is required")
		return
	}

	folder, err := h.itemService.GetItem(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}
	if !folder.IsFolder {
		httputil.RespondError(w, http.StatusBadRequest, "item is not a folder")
		return
	}

	// The trash flag does not cascade on writes; a folder whose own flag
	// is clear can still sit under a trashed ancestor. Browsing treats
	// the whole subtree as gone.
	trashed, err := h.trashService.IsEffectivelyTrashed(r.Context(), folder)
	if err != nil {
		handleError(w, err)
		return
	}
	if trashed {
		httputil.RespondError(w, http.StatusNotFound, "folder not found")
		return
	}

	children, err := h.itemService.ListChildren(r.Context(), userID, &id)
	if err != nil {
		handleError(w, err)
		return
	}

	// The repository hands back the full child set; the browse view hides
	// trashed items, the trash endpoint shows them
	visible := make([]models.Item, 0, len(children))
	for _, child := range children {
		if !child.IsTrash {
			visible = append(visible, child)
		}
	}

	httputil.RespondJSON(w, http.StatusOK, FolderContents{
		Folder: folder,
		Items:  visible,
	})
}

// GetFolderSize returns the recursive byte total of a folder
// GET /api/folders/{id}/size
func (h *FolderHandler) GetFolderSize(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder ID is required")
		return
	}

	size, err := h.treeService.FolderSize(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int64{"size": size})
}

// GetBreadcrumbs returns the ancestor trail from root to the item
// GET /api/folders/{id}/breadcrumbs
func (h *FolderHandler) GetBreadcrumbs(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder ID is required")
		return
	}

	trail, err := h.treeService.BreadcrumbTrail(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, trail)
}
