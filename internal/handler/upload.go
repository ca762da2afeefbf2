package handler

import (
	"io"
	"log/slog"
	"net/http"
	"path"

	"github.com/google/uuid"
	"hifadhi/internal/blobstore"
	"hifadhi/internal/config"
	"hifadhi/internal/domain/services"
	"hifadhi/internal/httputil"
)

// UploadHandler receives file payloads, places them in the blob store and
// records the resulting metadata as a file item. The tree store itself
// never performs uploads; this handler is the seam between the two.
type UploadHandler struct {
	itemService services.ItemService
	blobs       blobstore.BlobStore
	logger      *slog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(itemService services.ItemService, blobs blobstore.BlobStore, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		itemService: itemService,
		blobs:       blobs,
		logger:      logger,
	}
}

// Upload stores a file payload and creates its item
// POST /api/upload (multipart: "file" part, optional "parent_id" field)
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes)
	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "upload too large or malformed")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "missing file part")
		return
	}
	defer file.Close()

	body, err := io.ReadAll(file)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	key := "uploads/" + userID + "/" + uuid.NewString() + path.Ext(header.Filename)

	upload, err := h.blobs.Put(r.Context(), key, contentType, body)
	if err != nil {
		// A failed upload is a blob store error, not a tree error
		h.logger.Error("blob upload failed", "key", key, "error", err)
		httputil.RespondError(w, http.StatusBadGateway, "upload failed")
		return
	}

	var parentID *string
	if p := r.FormValue("parent_id"); p != "" {
		parentID = &p
	}

	item, err := h.itemService.CreateFile(r.Context(), &services.CreateFileRequest{
		UserID:       userID,
		Name:         header.Filename,
		ParentID:     parentID,
		Size:         int64(len(body)),
		Type:         contentType,
		FileURL:      upload.URL,
		ThumbnailURL: upload.ThumbnailURL,
	})
	if err != nil {
		// The metadata insert failed; don't leave the orphaned blob behind
		if rmErr := h.blobs.Remove(r.Context(), upload.URL); rmErr != nil {
			h.logger.Warn("orphaned blob cleanup failed", "url", upload.URL, "error", rmErr)
		}
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, item)
}
