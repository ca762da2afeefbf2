package service

import (
	"context"
	"errors"
	"testing"

	"hifadhi/internal/blobstore"
	"hifadhi/internal/domain"
	"hifadhi/internal/domain/services"
)

func newTrashFixture(t *testing.T) (services.ItemService, services.TrashService, *fakeItemRepo, *blobstore.InMemoryBlobStore) {
	t.Helper()
	repo := newFakeItemRepo()
	reg, err := blobstore.NewMediaRegistry()
	if err != nil {
		t.Fatalf("load media registry: %v", err)
	}
	blobs := blobstore.NewInMemoryBlobStore(reg)
	items := NewItemService(repo, fakeTxManager{}, testLogger())
	trash := NewTrashService(repo, fakeTxManager{}, blobs, testLogger())
	return items, trash, repo, blobs
}

func TestToggleTrashedIsItsOwnInverse(t *testing.T) {
	items, trash, _, _ := newTrashFixture(t)
	ctx := context.Background()

	file := mustCreateFile(t, items, "u1", "x.txt", nil, 10)

	trashed, err := trash.ToggleTrashed(ctx, file.ID, "u1")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !trashed.IsTrash {
		t.Fatal("expected is_trash after first toggle")
	}

	restored, err := trash.ToggleTrashed(ctx, file.ID, "u1")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if restored.IsTrash {
		t.Fatal("expected is_trash cleared after second toggle")
	}

	// Everything but updated_at survives the round trip
	if restored.Name != file.Name || restored.Path != file.Path ||
		restored.Size != file.Size || restored.FileURL != file.FileURL ||
		restored.IsStarred != file.IsStarred {
		t.Errorf("round-trip mutated fields: %+v vs %+v", restored, file)
	}
}

func TestToggleTrashedOwnershipIsolation(t *testing.T) {
	items, trash, _, _ := newTrashFixture(t)

	file := mustCreateFile(t, items, "u1", "x.txt", nil, 10)

	_, err := trash.ToggleTrashed(context.Background(), file.ID, "u2")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestListTrashedIsFlatAcrossTree(t *testing.T) {
	items, trash, _, _ := newTrashFixture(t)
	ctx := context.Background()

	docs := mustCreateFolder(t, items, "u1", "Docs", nil)
	sub := mustCreateFolder(t, items, "u1", "Sub", &docs.ID)
	rootFile := mustCreateFile(t, items, "u1", "root.txt", nil, 1)
	deepFile := mustCreateFile(t, items, "u1", "deep.txt", &sub.ID, 2)
	mustCreateFile(t, items, "u1", "kept.txt", &docs.ID, 3)

	for _, id := range []string{rootFile.ID, deepFile.ID} {
		if _, err := trash.ToggleTrashed(ctx, id, "u1"); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}

	listed, err := trash.ListTrashed(ctx, "u1")
	if err != nil {
		t.Fatalf("list trashed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("got %d trashed items, want 2", len(listed))
	}
	// Flat view: original location does not matter
	names := map[string]bool{listed[0].Name: true, listed[1].Name: true}
	if !names["root.txt"] || !names["deep.txt"] {
		t.Errorf("trash view = %v, want root.txt and deep.txt", names)
	}
}

func TestIsEffectivelyTrashedConsultsAncestors(t *testing.T) {
	items, trash, _, _ := newTrashFixture(t)
	ctx := context.Background()

	docs := mustCreateFolder(t, items, "u1", "Docs", nil)
	sub := mustCreateFolder(t, items, "u1", "Sub", &docs.ID)
	file := mustCreateFile(t, items, "u1", "x.txt", &sub.ID, 1)

	got, err := trash.IsEffectivelyTrashed(ctx, file)
	if err != nil {
		t.Fatalf("effective check: %v", err)
	}
	if got {
		t.Error("active chain reported as trashed")
	}

	// Trash the top folder: the file's own flag stays false but the
	// effective answer flips
	if _, err := trash.ToggleTrashed(ctx, docs.ID, "u1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	fetched, err := items.GetItem(ctx, file.ID, "u1")
	if err != nil {
		t.Fatalf("get file: %v", err)
	}
	if fetched.IsTrash {
		t.Error("trash flag cascaded on write; it must stay per-item")
	}

	got, err = trash.IsEffectivelyTrashed(ctx, fetched)
	if err != nil {
		t.Fatalf("effective check: %v", err)
	}
	if !got {
		t.Error("file under trashed ancestor not reported as effectively trashed")
	}
}

func TestDeleteForeverRequiresTrashedState(t *testing.T) {
	items, trash, _, _ := newTrashFixture(t)

	file := mustCreateFile(t, items, "u1", "x.txt", nil, 1)

	err := trash.DeleteForever(context.Background(), file.ID, "u1")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("got %v, want ErrValidation for active item", err)
	}
}

func TestDeleteForeverRemovesSubtreeAndBlobs(t *testing.T) {
	items, trash, repo, blobs := newTrashFixture(t)
	ctx := context.Background()

	docs := mustCreateFolder(t, items, "u1", "Docs", nil)
	sub := mustCreateFolder(t, items, "u1", "Sub", &docs.ID)

	up1, err := blobs.Put(ctx, "uploads/u1/a", "text/plain", []byte("a"))
	if err != nil {
		t.Fatalf("seed blob: %v", err)
	}
	up2, err := blobs.Put(ctx, "uploads/u1/b", "text/plain", []byte("b"))
	if err != nil {
		t.Fatalf("seed blob: %v", err)
	}

	fileA, err := items.CreateFile(ctx, &services.CreateFileRequest{
		UserID: "u1", Name: "a.txt", ParentID: &docs.ID, Size: 1, Type: "text/plain", FileURL: up1.URL,
	})
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	fileB, err := items.CreateFile(ctx, &services.CreateFileRequest{
		UserID: "u1", Name: "b.txt", ParentID: &sub.ID, Size: 1, Type: "text/plain", FileURL: up2.URL,
	})
	if err != nil {
		t.Fatalf("create file: %v", err)
	}

	keeper := mustCreateFile(t, items, "u1", "keep.txt", nil, 1)

	if _, err := trash.ToggleTrashed(ctx, docs.ID, "u1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := trash.DeleteForever(ctx, docs.ID, "u1"); err != nil {
		t.Fatalf("delete forever: %v", err)
	}

	for _, id := range []string{docs.ID, sub.ID, fileA.ID, fileB.ID} {
		if repo.has(id) {
			t.Errorf("item %s survived permanent delete", id)
		}
	}
	if !repo.has(keeper.ID) {
		t.Error("item outside the subtree was deleted")
	}
	if blobs.Len() != 0 {
		t.Errorf("%d blobs left after permanent delete, want 0", blobs.Len())
	}
}

func TestDeleteForeverSingleFile(t *testing.T) {
	items, trash, repo, blobs := newTrashFixture(t)
	ctx := context.Background()

	up, err := blobs.Put(ctx, "uploads/u1/solo", "application/pdf", []byte("%PDF"))
	if err != nil {
		t.Fatalf("seed blob: %v", err)
	}
	file, err := items.CreateFile(ctx, &services.CreateFileRequest{
		UserID: "u1", Name: "solo.pdf", Size: 4, Type: "application/pdf", FileURL: up.URL,
	})
	if err != nil {
		t.Fatalf("create file: %v", err)
	}

	if _, err := trash.ToggleTrashed(ctx, file.ID, "u1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := trash.DeleteForever(ctx, file.ID, "u1"); err != nil {
		t.Fatalf("delete forever: %v", err)
	}

	if repo.has(file.ID) {
		t.Error("file survived permanent delete")
	}
	if _, ok := blobs.Get(up.URL); ok {
		t.Error("blob survived permanent delete")
	}
}
