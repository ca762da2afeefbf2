package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"hifadhi/internal/blobstore"
	"hifadhi/internal/domain"
	"hifadhi/internal/domain/models"
	"hifadhi/internal/domain/repositories"
	"hifadhi/internal/domain/services"
)

// trashService implements the TrashService interface. The trash flag is
// non-cascading: trashing a folder leaves descendants Active but
// unreachable through navigation, and the cascaded answer is computed at
// read time via the ancestor chain. This keeps trash/restore of a large
// subtree a single-row write.
type trashService struct {
	repo      repositories.ItemRepository
	txManager repositories.TransactionManager
	blobs     blobstore.BlobStore
	logger    *slog.Logger
}

// NewTrashService creates a new trash service
func NewTrashService(
	repo repositories.ItemRepository,
	txManager repositories.TransactionManager,
	blobs blobstore.BlobStore,
	logger *slog.Logger,
) services.TrashService {
	return &trashService{
		repo:      repo,
		txManager: txManager,
		blobs:     blobs,
		logger:    logger,
	}
}

// ToggleTrashed flips the trash flag. Applying it twice restores the
// original state; only updated_at differs.
func (s *trashService) ToggleTrashed(ctx context.Context, id, userID string) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}

	now := time.Now()
	if err := s.repo.SetTrashed(ctx, id, userID, !item.IsTrash, now); err != nil {
		return nil, err
	}

	item.IsTrash = !item.IsTrash
	item.UpdatedAt = now

	s.logger.Info("trash toggled",
		"id", item.ID,
		"name", item.Name,
		"is_trash", item.IsTrash,
		"user_id", userID,
	)

	return item, nil
}

// ListTrashed returns the flat trash view: items whose own flag is set
func (s *trashService) ListTrashed(ctx context.Context, userID string) ([]models.Item, error) {
	return s.repo.ListTrashed(ctx, userID)
}

// IsEffectivelyTrashed walks the parent chain looking for a trashed
// ancestor. A dangling parent reference truncates the walk.
func (s *trashService) IsEffectivelyTrashed(ctx context.Context, item *models.Item) (bool, error) {
	if item.IsTrash {
		return true, nil
	}

	current := item
	for current.ParentID != nil {
		parent, err := s.repo.GetByID(ctx, *current.ParentID, item.UserID)
		if err != nil {
			return false, err
		}
		if parent == nil {
			return false, nil
		}
		if parent.IsTrash {
			return true, nil
		}
		current = parent
	}

	return false, nil
}

// DeleteForever permanently removes a trashed item and its subtree. The
// database delete is one transaction; blob removal happens afterwards on a
// best-effort basis, since the database is the source of truth.
func (s *trashService) DeleteForever(ctx context.Context, id, userID string) error {
	item, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	if !item.IsTrash {
		return fmt.Errorf("%w: only trashed items can be permanently deleted", domain.ErrValidation)
	}

	fullPath := item.FullPath()
	var fileURLs []string

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if item.IsFolder {
			subtree, err := s.repo.ListSubtree(txCtx, userID, fullPath)
			if err != nil {
				return err
			}
			for _, descendant := range subtree {
				if !descendant.IsFolder && descendant.FileURL != "" {
					fileURLs = append(fileURLs, descendant.FileURL)
				}
			}
		} else if item.FileURL != "" {
			fileURLs = append(fileURLs, item.FileURL)
		}

		deleted, err := s.repo.DeleteSubtree(txCtx, userID, id, fullPath)
		if err != nil {
			return err
		}

		s.logger.Info("subtree permanently deleted",
			"id", id,
			"name", item.Name,
			"rows", deleted,
			"user_id", userID,
		)
		return nil
	})
	if err != nil {
		return err
	}

	for _, url := range fileURLs {
		if err := s.blobs.Remove(ctx, url); err != nil {
			s.logger.Warn("blob cleanup failed", "url", url, "error", err)
		}
	}

	return nil
}
