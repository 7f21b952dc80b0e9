package database

import (
	"errors"
	"testing"

	"github.com/example/engstudy/pkg/models"
)

func openTestDB(t *testing.T) {
	t.Helper()
	if err := ConnectTo("sqlite3", ":memory:"); err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		Close()
		DB = nil
	})
}

func TestSeedDefaultFolderIdempotent(t *testing.T) {
	openTestDB(t)

	// run the seed a few more times on top of the one in ConnectTo
	for i := 0; i < 3; i++ {
		if err := seedDefaultFolder(); err != nil {
			t.Fatalf("seed run %d failed: %v", i, err)
		}
	}

	var count int
	if err := DB.Get(&count, "SELECT COUNT(*) FROM folders WHERE name = ?", DefaultFolder); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one default folder, got %d", count)
	}
}

func TestFolderUniqueness(t *testing.T) {
	openTestDB(t)
	repo := NewFolderRepository()

	created, err := repo.Create("Travel")
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if !created {
		t.Fatal("expected first create to succeed")
	}

	created, err = repo.Create("Travel")
	if err != nil {
		t.Fatalf("duplicate create errored: %v", err)
	}
	if created {
		t.Error("expected duplicate create to be rejected")
	}

	names, err := repo.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	seen := 0
	for _, n := range names {
		if n == "Travel" {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("expected one Travel folder, got %d", seen)
	}
}

func TestFolderCreateRejectsEmptyName(t *testing.T) {
	openTestDB(t)
	repo := NewFolderRepository()

	if _, err := repo.Create("   "); err == nil {
		t.Error("expected error for blank folder name")
	}
}

func TestFoldersSorted(t *testing.T) {
	openTestDB(t)
	repo := NewFolderRepository()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := repo.Create(name); err != nil {
			t.Fatalf("create %q failed: %v", name, err)
		}
	}

	names, err := repo.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("folders not sorted: %v", names)
		}
	}
}

func TestPhraseOrderingAcrossFolders(t *testing.T) {
	openTestDB(t)
	phrases := NewPhraseRepository()

	// interleave inserts across two folders
	inserts := []struct{ folder, src string }{
		{"A", "a1"}, {"B", "b1"}, {"A", "a2"}, {"B", "b2"}, {"A", "a3"},
	}
	for _, in := range inserts {
		p := &models.Phrase{Folder: in.folder, SourceText: in.src, TargetText: "x"}
		if err := phrases.Create(p); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	got, err := phrases.GetByFolder("A")
	if err != nil {
		t.Fatalf("GetByFolder failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 phrases in A, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].CreatedAt.After(got[i].CreatedAt) {
			t.Errorf("creation time order violated at %d", i)
		}
		if got[i-1].ID >= got[i].ID {
			t.Errorf("id order violated at %d", i)
		}
	}
	want := []string{"a1", "a2", "a3"}
	for i, p := range got {
		if p.SourceText != want[i] {
			t.Errorf("position %d: got %q, want %q", i, p.SourceText, want[i])
		}
	}
}

func TestGetByFolderUnknownFolderIsEmpty(t *testing.T) {
	openTestDB(t)
	phrases := NewPhraseRepository()

	got, err := phrases.GetByFolder("no-such-folder")
	if err != nil {
		t.Fatalf("expected no error for unknown folder, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d rows", len(got))
	}
}

func TestPhraseUpdateRoundTrip(t *testing.T) {
	openTestDB(t)
	phrases := NewPhraseRepository()

	p := &models.Phrase{Folder: "A", SourceText: "before-src", TargetText: "before-tgt"}
	if err := phrases.Create(p); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := phrases.Update(p.ID, "after-src", "after-tgt"); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := phrases.GetByFolder("A")
	if err != nil {
		t.Fatalf("GetByFolder failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 phrase, got %d", len(got))
	}
	if got[0].ID != p.ID || got[0].Folder != "A" {
		t.Errorf("id/folder changed on update: %+v", got[0])
	}
	if got[0].SourceText != "after-src" || got[0].TargetText != "after-tgt" {
		t.Errorf("texts not updated: %+v", got[0])
	}
}

func TestPhraseUpdateMissingIDIsNotFound(t *testing.T) {
	openTestDB(t)
	phrases := NewPhraseRepository()

	err := phrases.Update(9999, "a", "b")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPhraseDeleteMissingIDIsNotFound(t *testing.T) {
	openTestDB(t)
	phrases := NewPhraseRepository()

	err := phrases.Delete(9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPhraseDelete(t *testing.T) {
	openTestDB(t)
	phrases := NewPhraseRepository()

	p := &models.Phrase{Folder: "A", SourceText: "s", TargetText: "t"}
	if err := phrases.Create(p); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := phrases.Delete(p.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	got, err := phrases.GetByFolder("A")
	if err != nil {
		t.Fatalf("GetByFolder failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected folder to be empty after delete, got %d rows", len(got))
	}
}

func TestExportAll(t *testing.T) {
	openTestDB(t)
	phrases := NewPhraseRepository()

	for _, in := range []struct{ folder, src, tgt string }{
		{"B", "b-src", "b-tgt"},
		{"A", "a-src", "a-tgt"},
	} {
		p := &models.Phrase{Folder: in.folder, SourceText: in.src, TargetText: in.tgt}
		if err := phrases.Create(p); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	records, err := phrases.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// ordered by folder first
	if records[0].Folder != "A" || records[1].Folder != "B" {
		t.Errorf("unexpected folder order: %+v", records)
	}
	if records[0].SourceText != "a-src" || records[0].TargetText != "a-tgt" {
		t.Errorf("unexpected record content: %+v", records[0])
	}
}
