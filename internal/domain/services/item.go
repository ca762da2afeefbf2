package services

import (
	"context"

	"hifadhi/internal/domain/models"
)

// ItemService handles item creation, lookup and renames.
type ItemService interface {
	// CreateFolder creates a folder at the root or under an existing
	// parent folder owned by the same user.
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Item, error)

	// CreateFile records file metadata. The file bytes have already been
	// placed in the blob store; this operation performs no upload.
	CreateFile(ctx context.Context, req *CreateFileRequest) (*models.Item, error)

	// GetItem retrieves a single owned item.
	GetItem(ctx context.Context, id, userID string) (*models.Item, error)

	// ListChildren lists the full child set of a parent (nil for root),
	// trashed items included. Callers that render a browse view filter
	// trashed items out themselves.
	ListChildren(ctx context.Context, userID string, parentID *string) ([]models.Item, error)

	// Rename renames an item. For folders it atomically rewrites the
	// materialized paths of every descendant.
	Rename(ctx context.Context, id, userID, newName string) (*models.Item, error)

	// ToggleStarred flips the star flag and returns the updated item.
	ToggleStarred(ctx context.Context, id, userID string) (*models.Item, error)

	// ListStarred lists the owner's starred items.
	ListStarred(ctx context.Context, userID string) ([]models.Item, error)
}

// CreateFolderRequest represents a folder creation request.
type CreateFolderRequest struct {
	UserID   string  `json:"-"`
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"` // nil or empty = root level
}

// CreateFileRequest represents a file metadata creation request. FileURL
// and ThumbnailURL are whatever the blob store returned.
type CreateFileRequest struct {
	UserID       string  `json:"-"`
	Name         string  `json:"name"`
	ParentID     *string `json:"parent_id,omitempty"`
	Size         int64   `json:"size"`
	Type         string  `json:"type"`
	FileURL      string  `json:"file_url"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
}
