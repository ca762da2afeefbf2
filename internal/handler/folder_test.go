package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"hifadhi/internal/domain/models"
	"hifadhi/internal/domain/services"
	"hifadhi/internal/httputil"
)

// Stubs embed the interface so only the methods a test exercises need an
// implementation; anything else panics and fails the test loudly.

type stubItemService struct {
	services.ItemService
	getItem      func(ctx context.Context, id, userID string) (*models.Item, error)
	listChildren func(ctx context.Context, userID string, parentID *string) ([]models.Item, error)
}

func (s *stubItemService) GetItem(ctx context.Context, id, userID string) (*models.Item, error) {
	return s.getItem(ctx, id, userID)
}

func (s *stubItemService) ListChildren(ctx context.Context, userID string, parentID *string) ([]models.Item, error) {
	return s.listChildren(ctx, userID, parentID)
}

type stubTrashService struct {
	services.TrashService
	isEffectivelyTrashed func(ctx context.Context, item *models.Item) (bool, error)
}

func (s *stubTrashService) IsEffectivelyTrashed(ctx context.Context, item *models.Item) (bool, error) {
	return s.isEffectivelyTrashed(ctx, item)
}

func handlerTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func getFolderRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/folders/"+id, nil)
	req.SetPathValue("id", id)
	return httputil.WithUserID(req, "u1")
}

func TestGetFolderUnderTrashedAncestorIsNotFound(t *testing.T) {
	folder := &models.Item{ID: "f1", Name: "Inner", Path: "/Outer/", UserID: "u1", IsFolder: true}

	items := &stubItemService{
		getItem: func(ctx context.Context, id, userID string) (*models.Item, error) {
			return folder, nil
		},
	}
	trash := &stubTrashService{
		// Own flag clear, but an ancestor is trashed
		isEffectivelyTrashed: func(ctx context.Context, item *models.Item) (bool, error) {
			return true, nil
		},
	}
	h := NewFolderHandler(items, nil, trash, handlerTestLogger())

	rec := httptest.NewRecorder()
	h.GetFolder(rec, getFolderRequest("f1"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestGetFolderFiltersTrashedChildren(t *testing.T) {
	folder := &models.Item{ID: "f1", Name: "Docs", Path: "/", UserID: "u1", IsFolder: true}

	items := &stubItemService{
		getItem: func(ctx context.Context, id, userID string) (*models.Item, error) {
			return folder, nil
		},
		listChildren: func(ctx context.Context, userID string, parentID *string) ([]models.Item, error) {
			return []models.Item{
				{ID: "c1", Name: "keep.txt", UserID: "u1"},
				{ID: "c2", Name: "trashed.txt", UserID: "u1", IsTrash: true},
			}, nil
		},
	}
	trash := &stubTrashService{
		isEffectivelyTrashed: func(ctx context.Context, item *models.Item) (bool, error) {
			return false, nil
		},
	}
	h := NewFolderHandler(items, nil, trash, handlerTestLogger())

	rec := httptest.NewRecorder()
	h.GetFolder(rec, getFolderRequest("f1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var contents FolderContents
	if err := json.NewDecoder(rec.Body).Decode(&contents); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(contents.Items) != 1 || contents.Items[0].ID != "c1" {
		t.Errorf("visible children = %+v, want only the non-trashed one", contents.Items)
	}
}

func TestGetFolderRejectsFile(t *testing.T) {
	file := &models.Item{ID: "x1", Name: "x.txt", Path: "/", UserID: "u1", IsFolder: false}

	items := &stubItemService{
		getItem: func(ctx context.Context, id, userID string) (*models.Item, error) {
			return file, nil
		},
	}
	h := NewFolderHandler(items, nil, &stubTrashService{}, handlerTestLogger())

	rec := httptest.NewRecorder()
	h.GetFolder(rec, getFolderRequest("x1"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
