package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"hifadhi/internal/domain"
	"hifadhi/internal/domain/models"
	"hifadhi/internal/domain/repositories"
)

// itemColumns is the select list shared by every read query, in scanItem order.
const itemColumns = `id, name, path, size, type, file_url, thumbnail_url, user_id, parent_id, is_folder, is_starred, is_trash, created_at, updated_at`

// PostgresItemRepository implements the ItemRepository interface
type PostgresItemRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewItemRepository creates a new item repository
func NewItemRepository(config *RepositoryConfig) repositories.ItemRepository {
	return &PostgresItemRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func scanItem(row pgx.Row, item *models.Item) error {
	return row.Scan(
		&item.ID,
		&item.Name,
		&item.Path,
		&item.Size,
		&item.Type,
		&item.FileURL,
		&item.ThumbnailURL,
		&item.UserID,
		&item.ParentID,
		&item.IsFolder,
		&item.IsStarred,
		&item.IsTrash,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
}

func collectItems(rows pgx.Rows) ([]models.Item, error) {
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		if err := scanItem(rows, &item); err != nil {
			return nil, fmt.Errorf("scan item: %w: %w", domain.ErrStore, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w: %w", domain.ErrStore, err)
	}

	return items, nil
}

// Create inserts a new item
func (r *PostgresItemRepository) Create(ctx context.Context, item *models.Item) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, path, size, type, file_url, thumbnail_url, user_id, parent_id, is_folder, is_starred, is_trash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, r.tables.Items)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		item.ID,
		item.Name,
		item.Path,
		item.Size,
		item.Type,
		item.FileURL,
		item.ThumbnailURL,
		item.UserID,
		item.ParentID,
		item.IsFolder,
		item.IsStarred,
		item.IsTrash,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		// The service validates the parent before inserting, but it can
		// vanish between the check and the insert
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("parent of item %s no longer exists: %w", item.ID, domain.ErrInvalidParent)
		}
		if IsPgDuplicateError(err) {
			return fmt.Errorf("item %s already exists: %w", item.ID, domain.ErrValidation)
		}
		return fmt.Errorf("create item: %w: %w", domain.ErrStore, err)
	}

	return nil
}

// GetByID retrieves an item by id, scoped to the owner. Returns (nil, nil)
// when the item is absent or belongs to someone else.
func (r *PostgresItemRepository) GetByID(ctx context.Context, id, userID string) (*models.Item, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, itemColumns, r.tables.Items)

	var item models.Item
	err := scanItem(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, userID), &item)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w: %w", domain.ErrStore, err)
	}

	return &item, nil
}

// ListChildren lists all items under a parent (nil for root), trashed ones
// included, ordered by name ascending.
func (r *PostgresItemRepository) ListChildren(ctx context.Context, userID string, parentID *string) ([]models.Item, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE user_id = $1 AND parent_id IS NULL
			ORDER BY name ASC
		`, itemColumns, r.tables.Items)
		args = append(args, userID)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE user_id = $1 AND parent_id = $2
			ORDER BY name ASC
		`, itemColumns, r.tables.Items)
		args = append(args, userID, *parentID)
	}

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list children: %w: %w", domain.ErrStore, err)
	}

	return collectItems(rows)
}

// ListTrashed lists every trashed item for the owner across the whole tree
func (r *PostgresItemRepository) ListTrashed(ctx context.Context, userID string) ([]models.Item, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND is_trash = TRUE
		ORDER BY name ASC
	`, itemColumns, r.tables.Items)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list trashed: %w: %w", domain.ErrStore, err)
	}

	return collectItems(rows)
}

// ListStarred lists every starred, non-trashed item for the owner
func (r *PostgresItemRepository) ListStarred(ctx context.Context, userID string) ([]models.Item, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND is_starred = TRUE AND is_trash = FALSE
		ORDER BY name ASC
	`, itemColumns, r.tables.Items)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list starred: %w: %w", domain.ErrStore, err)
	}

	return collectItems(rows)
}

// ListSubtree lists every item inside the subtree identified by fullPath.
// left() comparison instead of LIKE keeps names containing % or _ from
// widening the match.
func (r *PostgresItemRepository) ListSubtree(ctx context.Context, userID, fullPath string) ([]models.Item, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND left(path, char_length($2)) = $2
		ORDER BY path ASC, name ASC
	`, itemColumns, r.tables.Items)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, userID, fullPath)
	if err != nil {
		return nil, fmt.Errorf("list subtree: %w: %w", domain.ErrStore, err)
	}

	return collectItems(rows)
}

// UpdateName sets a new name on the item and refreshes updated_at
func (r *PostgresItemRepository) UpdateName(ctx context.Context, id, userID, name string, at time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`, r.tables.Items)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, name, at, id, userID)
	if err != nil {
		return fmt.Errorf("update item name: %w: %w", domain.ErrStore, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// RewritePathPrefix rewrites every owned path starting with oldPrefix in a
// single statement. Both prefixes carry a trailing slash, which keeps the
// match segment-exact: renaming "Foo" never touches items under "Foobar".
func (r *PostgresItemRepository) RewritePathPrefix(ctx context.Context, userID, oldPrefix, newPrefix string, at time.Time) (int64, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET path = $1 || substr(path, char_length($2) + 1), updated_at = $3
		WHERE user_id = $4 AND left(path, char_length($2)) = $2
	`, r.tables.Items)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, newPrefix, oldPrefix, at, userID)
	if err != nil {
		return 0, fmt.Errorf("rewrite path prefix: %w: %w", domain.ErrStore, err)
	}

	return result.RowsAffected(), nil
}

// SetTrashed flips the soft-delete flag
func (r *PostgresItemRepository) SetTrashed(ctx context.Context, id, userID string, trashed bool, at time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET is_trash = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`, r.tables.Items)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, trashed, at, id, userID)
	if err != nil {
		return fmt.Errorf("set trashed: %w: %w", domain.ErrStore, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// SetStarred flips the star flag
func (r *PostgresItemRepository) SetStarred(ctx context.Context, id, userID string, starred bool, at time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET is_starred = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`, r.tables.Items)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, starred, at, id, userID)
	if err != nil {
		return fmt.Errorf("set starred: %w: %w", domain.ErrStore, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteSubtree hard-deletes the item and every descendant in one statement
func (r *PostgresItemRepository) DeleteSubtree(ctx context.Context, userID, id, fullPath string) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE user_id = $1 AND (id = $2 OR left(path, char_length($3)) = $3)
	`, r.tables.Items)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, userID, id, fullPath)
	if err != nil {
		return 0, fmt.Errorf("delete subtree: %w: %w", domain.ErrStore, err)
	}

	return result.RowsAffected(), nil
}
