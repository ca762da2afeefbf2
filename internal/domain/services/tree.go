package services

import (
	"context"

	"hifadhi/internal/domain/models"
)

// TreeService answers read-only questions about the tree shape: recursive
// folder sizes and breadcrumb trails.
type TreeService interface {
	// FolderSize returns the byte total of every non-folder descendant of
	// the folder. It re-walks the subtree on every call and treats a child
	// that vanishes mid-walk as contributing 0.
	FolderSize(ctx context.Context, userID, folderID string) (int64, error)

	// BreadcrumbTrail returns the ancestor chain from root to the item
	// inclusive. A dangling parent reference truncates the trail instead
	// of failing it.
	BreadcrumbTrail(ctx context.Context, id, userID string) ([]models.Item, error)
}
