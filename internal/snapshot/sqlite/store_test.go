package sqlite

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "queue_state.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoadMissingSnapshot(t *testing.T) {
	store := newTestStore(t)

	_, found, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Fatalf("found snapshot in fresh store")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	createdAt := time.Date(2026, 2, 3, 9, 30, 0, 0, time.UTC)
	calledAt := createdAt.Add(5 * time.Minute)
	state := models.QueueState{
		Tickets: []models.Ticket{
			{ID: "t1", Number: 1, DisplayID: "V-001", DepartmentID: "vehicles", Status: models.StatusCompleted, CreatedAt: createdAt, CalledAt: &calledAt, CompletedAt: &calledAt},
			{ID: "t2", Number: 2, DisplayID: "V-002", DepartmentID: "vehicles", Status: models.StatusWaiting, CreatedAt: createdAt},
			{ID: "t3", Number: 1, DisplayID: "F-001", DepartmentID: "finance", Status: models.StatusCalled, CreatedAt: createdAt, CalledAt: &calledAt},
		},
		LastNumbers: map[string]int{"vehicles": 2, "finance": 1},
	}

	if err := store.Save(context.Background(), state); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, found, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatalf("snapshot not found after save")
	}
	if !reflect.DeepEqual(state, loaded) {
		t.Fatalf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", state, loaded)
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := newTestStore(t)

	first := models.QueueState{LastNumbers: map[string]int{"vehicles": 1}}
	second := models.QueueState{LastNumbers: map[string]int{"vehicles": 2}}

	if err := store.Save(context.Background(), first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := store.Save(context.Background(), second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	loaded, found, err := store.Load(context.Background())
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if loaded.LastNumbers["vehicles"] != 2 {
		t.Fatalf("overwrite lost: %+v", loaded)
	}
}
