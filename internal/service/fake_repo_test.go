package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"hifadhi/internal/domain/models"
	"hifadhi/internal/domain/repositories"
)

// fakeItemRepo is an in-memory ItemRepository with the same semantics as
// the postgres implementation, including segment-exact prefix matching on
// path rewrites and owner scoping on every operation.
type fakeItemRepo struct {
	mu    sync.Mutex
	items map[string]models.Item

	// failChildrenOf simulates a subtree vanishing mid-walk
	failChildrenOf map[string]error
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{
		items:          make(map[string]models.Item),
		failChildrenOf: make(map[string]error),
	}
}

func (r *fakeItemRepo) Create(ctx context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) GetByID(ctx context.Context, id, userID string) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return nil, nil
	}
	copied := item
	return &copied, nil
}

func (r *fakeItemRepo) ListChildren(ctx context.Context, userID string, parentID *string) ([]models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if parentID != nil {
		if err, ok := r.failChildrenOf[*parentID]; ok {
			return nil, err
		}
	}

	var out []models.Item
	for _, item := range r.items {
		if item.UserID != userID {
			continue
		}
		switch {
		case parentID == nil && item.ParentID == nil:
			out = append(out, item)
		case parentID != nil && item.ParentID != nil && *item.ParentID == *parentID:
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeItemRepo) ListTrashed(ctx context.Context, userID string) ([]models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Item
	for _, item := range r.items {
		if item.UserID == userID && item.IsTrash {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeItemRepo) ListStarred(ctx context.Context, userID string) ([]models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Item
	for _, item := range r.items {
		if item.UserID == userID && item.IsStarred && !item.IsTrash {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeItemRepo) ListSubtree(ctx context.Context, userID, fullPath string) ([]models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Item
	for _, item := range r.items {
		if item.UserID == userID && strings.HasPrefix(item.Path, fullPath) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (r *fakeItemRepo) UpdateName(ctx context.Context, id, userID, name string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return errors.New("item not found")
	}
	item.Name = name
	item.UpdatedAt = at
	r.items[id] = item
	return nil
}

func (r *fakeItemRepo) RewritePathPrefix(ctx context.Context, userID, oldPrefix, newPrefix string, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for id, item := range r.items {
		if item.UserID != userID || !strings.HasPrefix(item.Path, oldPrefix) {
			continue
		}
		item.Path = newPrefix + item.Path[len(oldPrefix):]
		item.UpdatedAt = at
		r.items[id] = item
		count++
	}
	return count, nil
}

func (r *fakeItemRepo) SetTrashed(ctx context.Context, id, userID string, trashed bool, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return errors.New("item not found")
	}
	item.IsTrash = trashed
	item.UpdatedAt = at
	r.items[id] = item
	return nil
}

func (r *fakeItemRepo) SetStarred(ctx context.Context, id, userID string, starred bool, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return errors.New("item not found")
	}
	item.IsStarred = starred
	item.UpdatedAt = at
	r.items[id] = item
	return nil
}

func (r *fakeItemRepo) DeleteSubtree(ctx context.Context, userID, id, fullPath string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for itemID, item := range r.items {
		if item.UserID != userID {
			continue
		}
		if itemID == id || strings.HasPrefix(item.Path, fullPath) {
			delete(r.items, itemID)
			count++
		}
	}
	return count, nil
}

// pathOf returns the stored path for an id, for assertions.
func (r *fakeItemRepo) pathOf(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id].Path
}

// has reports whether an id is still stored.
func (r *fakeItemRepo) has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[id]
	return ok
}

var _ repositories.ItemRepository = (*fakeItemRepo)(nil)

// fakeTxManager runs the function directly; the fake repo has no
// transactional state to roll back.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}
