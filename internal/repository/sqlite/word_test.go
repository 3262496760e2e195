package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/word-of-the-day/internal/apperror"
	"github.com/sakif/word-of-the-day/internal/model"
)

// TESTING WITH IN-MEMORY SQLITE:
// Using ":memory:" creates a fresh database that exists only during the test.
// Benefits:
// - Fast: no disk I/O
// - Isolated: each test gets its own database
// - Clean: automatically destroyed when the connection closes
//
// newTestDB is a "test helper" — a function used only in tests to reduce boilerplate.
// The `t.Helper()` call tells Go's test framework to report errors at the CALLER's
// line number, not inside this function. This makes test failure output much clearer.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	// t.Cleanup registers a function to run when the test finishes.
	// This is like defer, but scoped to the test — even works in subtests.
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestWord is another helper — creates a word and fails the test if it errors.
func createTestWord(t *testing.T, w *WordDB, title, date string) *model.Word {
	t.Helper()
	word := &model.Word{
		Title:         title,
		Description:   "a description of " + title,
		Example:       "An example using " + title + ".",
		PublishedDate: date,
	}
	if err := w.Create(context.Background(), word); err != nil {
		t.Fatalf("failed to create test word: %v", err)
	}
	return word
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestWordCreate(t *testing.T) {
	w := newTestDB(t).Words()

	word := &model.Word{
		Title:         "Ephemeral",
		Description:   "Lasting a short time",
		Example:       "Fame is ephemeral.",
		PublishedDate: "2024-06-01",
	}

	if err := w.Create(context.Background(), word); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Verify the word was modified in-place (pointer receiver!)
	if word.ID == 0 {
		t.Error("Create() did not set word.ID")
	}
}

func TestWordCreate_DuplicatePublishedDate(t *testing.T) {
	w := newTestDB(t).Words()
	createTestWord(t, w, "Ephemeral", "2024-06-01")

	dup := &model.Word{Title: "Evanescent", PublishedDate: "2024-06-01"}
	err := w.Create(context.Background(), dup)
	if err == nil {
		t.Fatal("Create() should fail for a duplicate published_date")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Create() error = %v, want ErrConflict", err)
	}
}

// =========================================================================
// LIST TESTS
// =========================================================================

func TestWordList_Empty(t *testing.T) {
	w := newTestDB(t).Words()

	words, err := w.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if words == nil {
		t.Error("List() returned nil, want empty slice")
	}
	if len(words) != 0 {
		t.Errorf("List() returned %d words, want 0", len(words))
	}
}

func TestWordList(t *testing.T) {
	w := newTestDB(t).Words()
	createTestWord(t, w, "Ephemeral", "2024-06-01")
	createTestWord(t, w, "Sonder", "2024-06-02")

	words, err := w.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("List() returned %d words, want 2", len(words))
	}
	if words[0].Title != "Ephemeral" || words[1].Title != "Sonder" {
		t.Errorf("List() order = [%s, %s], want [Ephemeral, Sonder]",
			words[0].Title, words[1].Title)
	}
}

// =========================================================================
// BULK CREATE TESTS
// =========================================================================

func TestWordBulkCreate(t *testing.T) {
	w := newTestDB(t).Words()

	batch := []model.Word{
		{Title: "Ephemeral", PublishedDate: "2024-06-01"},
		{Title: "Sonder", PublishedDate: "2024-06-02"},
		{Title: "Petrichor", PublishedDate: "2024-06-03"},
	}
	if err := w.BulkCreate(context.Background(), batch); err != nil {
		t.Fatalf("BulkCreate() error = %v", err)
	}

	words, err := w.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(words) != 3 {
		t.Errorf("List() returned %d words after bulk insert, want 3", len(words))
	}
}

func TestWordBulkCreate_RollsBackOnConflict(t *testing.T) {
	w := newTestDB(t).Words()
	createTestWord(t, w, "Ephemeral", "2024-06-01")

	// The second item collides with the existing word. The first item is
	// valid on its own, but the whole batch must be rolled back — zero net
	// insertions.
	batch := []model.Word{
		{Title: "Sonder", PublishedDate: "2024-06-02"},
		{Title: "Evanescent", PublishedDate: "2024-06-01"},
	}
	err := w.BulkCreate(context.Background(), batch)
	if err == nil {
		t.Fatal("BulkCreate() should fail when any item conflicts")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("BulkCreate() error = %v, want ErrConflict", err)
	}

	// Re-list to verify nothing from the batch was committed.
	words, err := w.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(words) != 1 {
		t.Errorf("List() returned %d words after failed bulk insert, want 1", len(words))
	}
	if words[0].Title != "Ephemeral" {
		t.Errorf("surviving word = %q, want %q", words[0].Title, "Ephemeral")
	}
}

func TestWordBulkCreate_DuplicateWithinBatch(t *testing.T) {
	w := newTestDB(t).Words()

	// Two items in the SAME batch share a date — still all-or-nothing.
	batch := []model.Word{
		{Title: "Ephemeral", PublishedDate: "2024-06-01"},
		{Title: "Evanescent", PublishedDate: "2024-06-01"},
	}
	if err := w.BulkCreate(context.Background(), batch); err == nil {
		t.Fatal("BulkCreate() should fail when the batch conflicts with itself")
	}

	words, err := w.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(words) != 0 {
		t.Errorf("List() returned %d words, want 0 after rollback", len(words))
	}
}

// =========================================================================
// GET BY PUBLISHED DATE TESTS
// =========================================================================

func TestWordGetByPublishedDate(t *testing.T) {
	w := newTestDB(t).Words()
	created := createTestWord(t, w, "Ephemeral", "2024-06-01")

	found, err := w.GetByPublishedDate(context.Background(), "2024-06-01")
	if err != nil {
		t.Fatalf("GetByPublishedDate() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}
	if found.Title != "Ephemeral" {
		t.Errorf("Title = %q, want %q", found.Title, "Ephemeral")
	}
}

func TestWordGetByPublishedDate_NotFound(t *testing.T) {
	w := newTestDB(t).Words()
	createTestWord(t, w, "Ephemeral", "2024-06-01")

	// The lookup is an exact string match — a neighbouring date must miss.
	_, err := w.GetByPublishedDate(context.Background(), "2024-06-02")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByPublishedDate() error = %v, want ErrNotFound", err)
	}
}
