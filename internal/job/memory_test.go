package job

import (
	"context"
	"errors"
	"testing"

	"github.com/pixevo/videogen-api/internal/videogen"
)

func TestMemoryRepository_Save(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	record := newProcessingRecord()

	err := repo.Save(ctx, record)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Verify it was saved
	saved, err := repo.FindByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID != record.ID {
		t.Errorf("expected ID %s, got %s", record.ID, saved.ID)
	}
	if saved.ProviderJobID != record.ProviderJobID {
		t.Errorf("expected provider job ID %s, got %s", record.ProviderJobID, saved.ProviderJobID)
	}
}

func TestMemoryRepository_Save_ClonesRecord(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	record := newProcessingRecord()

	_ = repo.Save(ctx, record)
	record.Status = videogen.StatusFailed

	saved, _ := repo.FindByID(ctx, record.ID)
	if saved.Status != videogen.StatusProcessing {
		t.Errorf("expected stored record to be isolated from caller mutations, got status %s", saved.Status)
	}
}

func TestMemoryRepository_FindByID_NotFound(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "nonexistent")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestMemoryRepository_FindByProviderJobID(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	record := newProcessingRecord()
	_ = repo.Save(ctx, record)

	found, err := repo.FindByProviderJobID(ctx, "pred-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != record.ID {
		t.Errorf("expected record %s, got %s", record.ID, found.ID)
	}

	_, err = repo.FindByProviderJobID(ctx, "pred-999")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestMemoryRepository_List(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty list, got %d records", len(records))
	}

	_ = repo.Save(ctx, newProcessingRecord())
	_ = repo.Save(ctx, newProcessingRecord())

	records, _ = repo.List(ctx)
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}
}

func TestMemoryRepository_Update(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	record := newProcessingRecord()
	_ = repo.Save(ctx, record)

	updated, err := repo.Update(ctx, record.ID, func(r *Record) {
		r.Apply(videogen.GenerationResult{
			Success:  true,
			Status:   videogen.StatusCompleted,
			VideoURL: "https://cdn.example.com/out.mp4",
		})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != videogen.StatusCompleted {
		t.Errorf("expected status completed, got %s", updated.Status)
	}

	// The update must be visible to later reads.
	saved, _ := repo.FindByID(ctx, record.ID)
	if saved.Status != videogen.StatusCompleted {
		t.Errorf("expected persisted status completed, got %s", saved.Status)
	}
}

func TestMemoryRepository_Update_NotFound(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Update(ctx, "nonexistent", func(r *Record) {})
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}
