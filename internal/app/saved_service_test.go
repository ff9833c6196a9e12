package app

import (
	"context"
	"testing"

	"github.com/ShamilRahmanPK/job-seeker/internal/common"
)

func TestSaveAddsJobForSessionUser(t *testing.T) {
	fake := newFakeAPI()
	saved := NewSavedJobs(fake, seekerSession(t), nil)

	if err := saved.Save(context.Background(), "job-1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !saved.IsSaved("job-1") {
		t.Fatalf("job-1 should be saved")
	}
	if len(fake.savedPairs) != 1 || fake.savedPairs[0] != [2]string{"seeker-1", "job-1"} {
		t.Fatalf("save request not scoped to session user: %+v", fake.savedPairs)
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	saved := NewSavedJobs(newFakeAPI(), seekerSession(t), nil)

	if err := saved.Save(context.Background(), "job-1"); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := saved.Save(context.Background(), "job-1"); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if got := saved.List(); len(got) != 1 || got[0] != "job-1" {
		t.Fatalf("expected job-1 exactly once, got %v", got)
	}
}

func TestSaveFailureLeavesSetUnchanged(t *testing.T) {
	fake := newFakeAPI()
	fake.saveErr = common.NewError(common.CodeUnavailable, "server error", nil)
	saved := NewSavedJobs(fake, seekerSession(t), nil)

	if err := saved.Save(context.Background(), "job-1"); !common.Is(err, common.CodeUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	if saved.IsSaved("job-1") {
		t.Fatalf("failed save must not mark the job saved")
	}
	if len(saved.List()) != 0 {
		t.Fatalf("set must be unchanged after failure")
	}
}

func TestSaveRequiresLogin(t *testing.T) {
	manager := sessionManagerLoggedOut(t)
	saved := NewSavedJobs(newFakeAPI(), manager, nil)
	if err := saved.Save(context.Background(), "job-1"); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}
