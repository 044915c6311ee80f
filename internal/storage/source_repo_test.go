package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/legal"
)

func TestSourceRepo_Upsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewSourceRepo(db)
	ctx := context.Background()

	src := &SourceRecord{RelPath: "constitution/संविधान.txt", DocType: legal.DocTypeConstitution, Hash: "h1"}
	if err := repo.Upsert(ctx, src); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if src.ID == "" {
		t.Fatal("Upsert() should assign an ID")
	}
	firstID := src.ID

	updated := &SourceRecord{RelPath: src.RelPath, DocType: legal.DocTypeConstitution, Hash: "h2"}
	if err := repo.Upsert(ctx, updated); err != nil {
		t.Fatalf("Upsert() update error = %v", err)
	}
	if updated.ID != firstID {
		t.Errorf("Upsert() changed ID: %s != %s", updated.ID, firstID)
	}

	got, err := repo.GetByPath(ctx, src.RelPath)
	if err != nil {
		t.Fatalf("GetByPath() error = %v", err)
	}
	if got.Hash != "h2" {
		t.Errorf("GetByPath() hash = %q, want h2", got.Hash)
	}
	if got.DocType != legal.DocTypeConstitution {
		t.Errorf("GetByPath() doc type = %s", got.DocType)
	}
	if got.IndexedAt.IsZero() {
		t.Error("GetByPath() IndexedAt not set")
	}
}

func TestSourceRepo_GetByPath_NotFound(t *testing.T) {
	repo := NewSourceRepo(newTestDB(t))

	_, err := repo.GetByPath(context.Background(), "missing.txt")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByPath() error = %v, want ErrNotFound", err)
	}
}

func TestSourceRepo_ListAndDeleteAll(t *testing.T) {
	db := newTestDB(t)
	sources := NewSourceRepo(db)
	passages := NewPassageRepo(db)
	ctx := context.Background()

	for _, p := range []string{"b_act.txt", "a_rules.txt"} {
		if err := sources.Upsert(ctx, &SourceRecord{RelPath: p, DocType: legal.DetectDocType(p), Hash: "h"}); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	list, err := sources.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || list[0].RelPath != "a_rules.txt" {
		t.Fatalf("List() = %+v", list)
	}

	insertPassage(t, passages, list[0].ID, "p1", legal.DocTypeRule, "rule text")

	if err := sources.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll() error = %v", err)
	}

	list, err = sources.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("List() after DeleteAll = %d sources", len(list))
	}
	if _, err := passages.GetByID(ctx, "p1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("passage survived DeleteAll: %v", err)
	}
}
