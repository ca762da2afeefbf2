package services

import (
	"context"

	"hifadhi/internal/domain/models"
)

// TrashService owns the soft-delete lifecycle. An item is either Active or
// Trashed; the flag does not cascade to descendants on writes. Items under
// a trashed ancestor stay Active but become unreachable through navigation,
// and IsEffectivelyTrashed answers the cascaded question at read time.
type TrashService interface {
	// ToggleTrashed flips the trash flag and returns the updated item.
	// Applying it twice restores the original state.
	ToggleTrashed(ctx context.Context, id, userID string) (*models.Item, error)

	// ListTrashed returns the flat trash view: every item whose own flag
	// is set, across the whole tree.
	ListTrashed(ctx context.Context, userID string) ([]models.Item, error)

	// IsEffectivelyTrashed reports whether the item or any of its
	// ancestors is trashed.
	IsEffectivelyTrashed(ctx context.Context, item *models.Item) (bool, error)

	// DeleteForever permanently removes a trashed item and, for folders,
	// its whole subtree. File blobs are removed from the blob store on a
	// best-effort basis after the database delete commits.
	DeleteForever(ctx context.Context, id, userID string) error
}
