package service

import (
	"context"
	"fmt"
	"log/slog"

	"hifadhi/internal/domain"
	"hifadhi/internal/domain/models"
	"hifadhi/internal/domain/repositories"
	"hifadhi/internal/domain/services"
)

// treeService implements the TreeService interface
type treeService struct {
	repo   repositories.ItemRepository
	logger *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(repo repositories.ItemRepository, logger *slog.Logger) services.TreeService {
	return &treeService{
		repo:   repo,
		logger: logger,
	}
}

// FolderSize recursively sums the sizes of all non-folder descendants.
// Every call re-walks the subtree; there is no cache to invalidate. The
// walk tolerates concurrent mutation: a child that vanishes mid-walk
// contributes 0 instead of failing the aggregation.
func (s *treeService) FolderSize(ctx context.Context, userID, folderID string) (int64, error) {
	folder, err := s.repo.GetByID(ctx, folderID, userID)
	if err != nil {
		return 0, err
	}
	if folder == nil {
		return 0, fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}
	if !folder.IsFolder {
		return 0, fmt.Errorf("%w: item %s is not a folder", domain.ErrValidation, folderID)
	}

	return s.subtreeSize(ctx, userID, folderID)
}

func (s *treeService) subtreeSize(ctx context.Context, userID, folderID string) (int64, error) {
	children, err := s.repo.ListChildren(ctx, userID, &folderID)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, child := range children {
		if child.IsFolder {
			size, err := s.subtreeSize(ctx, userID, child.ID)
			if err != nil {
				// Vanished mid-walk counts as empty
				s.logger.Debug("skipping unreadable subtree", "folder_id", child.ID, "error", err)
				continue
			}
			total += size
		} else {
			total += child.Size
		}
	}

	return total, nil
}

// BreadcrumbTrail walks the parent chain from the item up to the root and
// returns the trail root-first, the item itself last. A dangling parent
// reference truncates the trail rather than failing it: the store does not
// enforce referential integrity on parent_id.
func (s *treeService) BreadcrumbTrail(ctx context.Context, id, userID string) ([]models.Item, error) {
	item, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}

	trail := []models.Item{*item}
	current := item

	for current.ParentID != nil {
		parent, err := s.repo.GetByID(ctx, *current.ParentID, userID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			break
		}
		trail = append([]models.Item{*parent}, trail...)
		current = parent
	}

	return trail, nil
}
