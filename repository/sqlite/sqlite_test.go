package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lucasbecker/upload-ai/errors"
	"github.com/lucasbecker/upload-ai/models"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("InitDB() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInitDBIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := InitDB(path)
	if err != nil {
		t.Fatal(err)
	}
	db.Close()

	// Reopening an existing database must not fail or duplicate seeds.
	db, err = InitDB(path)
	if err != nil {
		t.Fatalf("second InitDB() error: %v", err)
	}
	defer db.Close()

	prompts, err := NewPromptRepository(db).List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(prompts) != 2 {
		t.Errorf("got %d seeded prompts", len(prompts))
	}
}

func TestVideoRepositorySaveAndFind(t *testing.T) {
	repo := NewVideoRepository(testDB(t))
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	video := &models.Video{
		ID:        "0b9f3f44-5a60-4e4f-9b3c-1c51adbef2ca",
		Path:      "/data/uploads/audio/abc.mp3",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.Save(ctx, video); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	found, err := repo.Find(ctx, video.ID)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if found.Path != video.Path {
		t.Errorf("path = %q", found.Path)
	}
	if found.Transcription != "" {
		t.Errorf("expected empty transcription, got %q", found.Transcription)
	}
}

func TestVideoRepositoryUpsertOverwritesTranscription(t *testing.T) {
	repo := NewVideoRepository(testDB(t))
	ctx := context.Background()

	now := time.Now().UTC()
	video := &models.Video{
		ID:        "0b9f3f44-5a60-4e4f-9b3c-1c51adbef2ca",
		Path:      "/data/uploads/audio/abc.mp3",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Save(ctx, video); err != nil {
		t.Fatal(err)
	}

	video.Transcription = "first pass"
	if err := repo.Save(ctx, video); err != nil {
		t.Fatal(err)
	}
	video.Transcription = "second pass"
	if err := repo.Save(ctx, video); err != nil {
		t.Fatal(err)
	}

	found, err := repo.Find(ctx, video.ID)
	if err != nil {
		t.Fatal(err)
	}
	if found.Transcription != "second pass" {
		t.Errorf("transcription = %q", found.Transcription)
	}
}

func TestVideoRepositoryFindUnknown(t *testing.T) {
	repo := NewVideoRepository(testDB(t))

	_, err := repo.Find(context.Background(), "00000000-0000-0000-0000-000000000000")
	if !errors.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestPromptRepositorySeededCatalog(t *testing.T) {
	repo := NewPromptRepository(testDB(t))

	prompts, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(prompts) != 2 {
		t.Fatalf("got %d prompts", len(prompts))
	}

	// Listing is ordered by title.
	if prompts[0].Title != "YouTube description" || prompts[1].Title != "YouTube title" {
		t.Errorf("order = %q, %q", prompts[0].Title, prompts[1].Title)
	}

	// Templates carry the literal placeholder for the client to substitute.
	for _, p := range prompts {
		if !strings.Contains(p.Template, "{transcription}") {
			t.Errorf("template %q missing placeholder", p.Title)
		}
	}
}

func TestPromptRepositoryFind(t *testing.T) {
	repo := NewPromptRepository(testDB(t))
	ctx := context.Background()

	p, err := repo.Find(ctx, seedPrompts[0].id)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if p.Title != seedPrompts[0].title {
		t.Errorf("title = %q", p.Title)
	}

	_, err = repo.Find(ctx, "00000000-0000-0000-0000-000000000000")
	if !errors.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
