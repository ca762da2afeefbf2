package repositories

import (
	"context"
	"time"

	"hifadhi/internal/domain/models"
)

// ItemRepository is the single source of truth for items. Every operation
// is scoped to an owner; an id belonging to a different user behaves
// exactly like an id that does not exist.
type ItemRepository interface {
	// Create inserts a new item. The caller has already computed the
	// materialized path and generated the id.
	Create(ctx context.Context, item *models.Item) error

	// GetByID retrieves an item by id, scoped to the owner. Absence is not
	// an error at this level: it returns (nil, nil) and callers decide
	// whether that is a failure.
	GetByID(ctx context.Context, id, userID string) (*models.Item, error)

	// ListChildren lists all items under the given parent (nil for root),
	// trashed ones included, ordered by name ascending. Visibility policy
	// belongs to the caller.
	ListChildren(ctx context.Context, userID string, parentID *string) ([]models.Item, error)

	// ListTrashed lists every trashed item for the owner across the whole
	// tree, regardless of original location.
	ListTrashed(ctx context.Context, userID string) ([]models.Item, error)

	// ListStarred lists every starred, non-trashed item for the owner.
	ListStarred(ctx context.Context, userID string) ([]models.Item, error)

	// ListSubtree lists every item whose path lies inside the subtree
	// identified by fullPath (segment-exact prefix, trailing slash
	// included).
	ListSubtree(ctx context.Context, userID, fullPath string) ([]models.Item, error)

	// UpdateName sets a new name on the item and refreshes updated_at.
	UpdateName(ctx context.Context, id, userID, name string, at time.Time) error

	// RewritePathPrefix atomically replaces oldPrefix with newPrefix at the
	// start of every matching path the owner has. Returns the number of
	// rewritten rows. This is the one statement where store-level atomicity
	// matters: a per-row walk could miss or double-rewrite items created
	// concurrently under the old prefix.
	RewritePathPrefix(ctx context.Context, userID, oldPrefix, newPrefix string, at time.Time) (int64, error)

	// SetTrashed flips the soft-delete flag and refreshes updated_at.
	SetTrashed(ctx context.Context, id, userID string, trashed bool, at time.Time) error

	// SetStarred flips the star flag and refreshes updated_at.
	SetStarred(ctx context.Context, id, userID string, starred bool, at time.Time) error

	// DeleteSubtree hard-deletes the item and, via its subtree prefix,
	// every descendant in one statement. Returns the number of deleted
	// rows.
	DeleteSubtree(ctx context.Context, userID, id, fullPath string) (int64, error)
}
