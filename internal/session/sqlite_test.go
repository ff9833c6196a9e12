package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ShamilRahmanPK/job-seeker/internal/domain/user"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreRoundtrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if loaded, err := store.Load(ctx); err != nil || loaded != nil {
		t.Fatalf("fresh store should be empty, got %+v, %v", loaded, err)
	}

	sess := Session{
		Token: "token-xyz",
		User:  user.User{ID: "u1", Name: "Asha", Email: "asha@example.com", Phone: "9999999999", Role: user.RoleJobSeeker},
	}
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil || *loaded != sess {
		t.Fatalf("roundtrip mismatch: %+v", loaded)
	}
}

func TestSQLiteStoreSaveOverwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := Session{Token: "t1", User: user.User{ID: "u1", Role: user.RoleJobSeeker}}
	second := Session{Token: "t2", User: user.User{ID: "u2", Role: user.RoleEmployer}}
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Token != "t2" || loaded.User.ID != "u2" {
		t.Fatalf("expected the second session, got %+v", loaded)
	}
}

func TestSQLiteStoreClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, Session{Token: "t", User: user.User{ID: "u1"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if loaded, err := store.Load(ctx); err != nil || loaded != nil {
		t.Fatalf("expected empty store after clear, got %+v, %v", loaded, err)
	}
}

func TestManagerRestoreAndReset(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	sess := Session{Token: "token-xyz", User: user.User{ID: "u1", Role: user.RoleEmployer}}
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	manager := NewManager(store)
	if err := manager.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}
	current := manager.Current()
	if current == nil || current.Token != "token-xyz" {
		t.Fatalf("restore did not pick up the stored session: %+v", current)
	}

	if err := manager.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if manager.Current() != nil {
		t.Fatalf("session still present after reset")
	}
	if loaded, _ := store.Load(ctx); loaded != nil {
		t.Fatalf("stored session still present after reset")
	}
}

func TestManagerCurrentReturnsCopy(t *testing.T) {
	manager := NewManager(NewMemoryStore())
	if err := manager.Establish(context.Background(), Session{Token: "t", User: user.User{ID: "u1"}}); err != nil {
		t.Fatalf("establish: %v", err)
	}
	first := manager.Current()
	first.Token = "mutated"
	if manager.Current().Token != "t" {
		t.Fatalf("mutating the returned session leaked into the manager")
	}
}
