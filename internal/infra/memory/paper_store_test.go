package memory

import (
	"context"
	"errors"
	"testing"

	"exam-paper-service/internal/domain"
)

func TestPaperStoreLifecycle(t *testing.T) {
	store := NewPaperStore()
	ctx := context.Background()

	if err := store.Save(ctx, domain.GeneratedPaper{ID: "paper-1", Name: "Midterm"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	paper, err := store.Get(ctx, "paper-1")
	if err != nil || paper.Name != "Midterm" {
		t.Fatalf("expected stored paper, got %+v (%v)", paper, err)
	}
	papers, _ := store.List(ctx)
	if len(papers) != 1 {
		t.Fatalf("expected 1 paper, got %d", len(papers))
	}

	if err := store.Delete(ctx, "paper-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "paper-1"); !errors.Is(err, domain.ErrPaperNotFound) {
		t.Fatalf("expected paper removed, got %v", err)
	}
	if err := store.Delete(ctx, "paper-1"); !errors.Is(err, domain.ErrPaperNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
