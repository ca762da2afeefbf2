package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"hifadhi/internal/config"
	"hifadhi/internal/domain"
	"hifadhi/internal/domain/models"
	"hifadhi/internal/domain/repositories"
	"hifadhi/internal/domain/services"
	"hifadhi/internal/pathutil"
)

// itemService implements the ItemService interface
type itemService struct {
	repo      repositories.ItemRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewItemService creates a new item service
func NewItemService(
	repo repositories.ItemRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.ItemService {
	return &itemService{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// CreateFolder creates a new folder at the root or under an existing parent
func (s *itemService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Item, error) {
	name := strings.TrimSpace(req.Name)
	if err := validateName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	parentID, path, err := s.resolveParent(ctx, req.UserID, req.ParentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item := &models.Item{
		ID:        uuid.NewString(),
		Name:      name,
		Path:      path,
		Size:      0,
		Type:      models.FolderType,
		FileURL:   "",
		UserID:    req.UserID,
		ParentID:  parentID,
		IsFolder:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", item.ID,
		"name", item.Name,
		"path", item.Path,
		"user_id", item.UserID,
	)

	return item, nil
}

// CreateFile records metadata for a file the blob store already holds
func (s *itemService) CreateFile(ctx context.Context, req *services.CreateFileRequest) (*models.Item, error) {
	name := strings.TrimSpace(req.Name)
	if err := validateName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := validation.Validate(req.Type, validation.Required); err != nil {
		return nil, fmt.Errorf("%w: content type is required", domain.ErrValidation)
	}
	if req.Size < 0 {
		return nil, fmt.Errorf("%w: size cannot be negative", domain.ErrValidation)
	}

	parentID, path, err := s.resolveParent(ctx, req.UserID, req.ParentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item := &models.Item{
		ID:           uuid.NewString(),
		Name:         name,
		Path:         path,
		Size:         req.Size,
		Type:         req.Type,
		FileURL:      req.FileURL,
		ThumbnailURL: req.ThumbnailURL,
		UserID:       req.UserID,
		ParentID:     parentID,
		IsFolder:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("file created",
		"id", item.ID,
		"name", item.Name,
		"path", item.Path,
		"size", item.Size,
		"type", item.Type,
		"user_id", item.UserID,
	)

	return item, nil
}

// GetItem retrieves a single owned item
func (s *itemService) GetItem(ctx context.Context, id, userID string) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	return item, nil
}

// ListChildren lists the full child set of a parent, trashed items included
func (s *itemService) ListChildren(ctx context.Context, userID string, parentID *string) ([]models.Item, error) {
	if parentID != nil && *parentID == "" {
		parentID = nil
	}
	return s.repo.ListChildren(ctx, userID, parentID)
}

// Rename renames an item. For folders, every descendant path is rewritten
// in the same transaction as the name update, as a single prefix-rewrite
// statement. The folder's own path is untouched: it encodes the parent
// chain, not the folder itself.
func (s *itemService) Rename(ctx context.Context, id, userID, newName string) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}

	name := strings.TrimSpace(newName)
	if err := validateName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if name == item.Name {
		return nil, fmt.Errorf("%w: name is unchanged", domain.ErrValidation)
	}

	now := time.Now()

	if item.IsFolder {
		oldPrefix := item.FullPath()
		newPrefix := pathutil.ChildPath(item.Path, name)

		err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
			rewritten, err := s.repo.RewritePathPrefix(txCtx, userID, oldPrefix, newPrefix, now)
			if err != nil {
				return err
			}
			s.logger.Debug("descendant paths rewritten",
				"folder_id", id,
				"old_prefix", oldPrefix,
				"new_prefix", newPrefix,
				"count", rewritten,
			)
			return s.repo.UpdateName(txCtx, id, userID, name, now)
		})
	} else {
		err = s.repo.UpdateName(ctx, id, userID, name, now)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("item renamed",
		"id", item.ID,
		"old_name", item.Name,
		"new_name", name,
		"user_id", userID,
	)

	item.Name = name
	item.UpdatedAt = now
	return item, nil
}

// ToggleStarred flips the star flag and returns the updated item
func (s *itemService) ToggleStarred(ctx context.Context, id, userID string) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}

	now := time.Now()
	if err := s.repo.SetStarred(ctx, id, userID, !item.IsStarred, now); err != nil {
		return nil, err
	}

	item.IsStarred = !item.IsStarred
	item.UpdatedAt = now
	return item, nil
}

// ListStarred lists the owner's starred items
func (s *itemService) ListStarred(ctx context.Context, userID string) ([]models.Item, error) {
	return s.repo.ListStarred(ctx, userID)
}

// resolveParent maps a requested parent id to (parentID, path). A nil or
// empty parent means root. The parent must exist, belong to the same user
// and be a folder; this runs before the insert so a bad parent never leaves
// a partial write.
func (s *itemService) resolveParent(ctx context.Context, userID string, parentID *string) (*string, string, error) {
	if parentID != nil && *parentID == "" {
		parentID = nil
	}
	if parentID == nil {
		return nil, pathutil.RootPath, nil
	}

	parent, err := s.repo.GetByID(ctx, *parentID, userID)
	if err != nil {
		return nil, "", err
	}
	if parent == nil {
		return nil, "", fmt.Errorf("parent folder %s does not exist: %w", *parentID, domain.ErrInvalidParent)
	}
	if !parent.IsFolder {
		return nil, "", fmt.Errorf("parent %s is not a folder: %w", *parentID, domain.ErrInvalidParent)
	}

	path := parent.FullPath()
	if len(path) > config.MaxPathLength {
		return nil, "", fmt.Errorf("%w: path exceeds maximum length of %d characters", domain.ErrValidation, config.MaxPathLength)
	}

	return parentID, path, nil
}

func validateName(trimmed string) error {
	return validation.Validate(trimmed,
		validation.Required.Error("name is required"),
		validation.Length(1, config.MaxItemNameLength),
		validation.By(nameHasNoSeparator),
	)
}

// nameHasNoSeparator rejects names containing the path separator. A name
// with "/" in it would forge segment boundaries in descendant paths, and a
// later rename of a genuinely nested folder with the same materialized
// prefix would rewrite the forged subtree along with its own.
func nameHasNoSeparator(value interface{}) error {
	name, _ := value.(string)
	if strings.ContainsRune(name, '/') {
		return errors.New("name cannot contain '/'")
	}
	return nil
}
