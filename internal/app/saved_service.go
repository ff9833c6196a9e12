package app

import (
	"context"
	"log/slog"
	"sort"

	"github.com/ShamilRahmanPK/job-seeker/internal/common"
	"github.com/ShamilRahmanPK/job-seeker/internal/session"
)

// JobSaver is the slice of the API client the saved-jobs tracker needs.
type JobSaver interface {
	SaveJob(ctx context.Context, token, userID, jobID string) error
}

// SavedJobs tracks which jobs the current session has saved. The set lives
// in memory only and is updated after the save request succeeds, so a
// failed save leaves it unchanged.
type SavedJobs struct {
	api      JobSaver
	sessions *session.Manager
	logger   *slog.Logger
	saved    map[string]struct{}
}

func NewSavedJobs(api JobSaver, sessions *session.Manager, logger *slog.Logger) *SavedJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &SavedJobs{api: api, sessions: sessions, logger: logger, saved: make(map[string]struct{})}
}

// Save marks a job saved for the logged-in user. Saving an already-saved
// job still issues the request but cannot duplicate the entry.
func (s *SavedJobs) Save(ctx context.Context, jobID string) error {
	if jobID == "" {
		return common.NewError(common.CodeValidation, "job id is required", nil)
	}
	sess := s.sessions.Current()
	if sess == nil {
		return common.NewError(common.CodeUnauthorized, "not logged in", nil)
	}
	if err := s.api.SaveJob(ctx, sess.Token, sess.User.ID, jobID); err != nil {
		s.logger.Error("save job failed", slog.String("job_id", jobID), slog.String("error", err.Error()))
		return err
	}
	s.saved[jobID] = struct{}{}
	s.logger.Info("job saved", slog.String("job_id", jobID))
	return nil
}

func (s *SavedJobs) IsSaved(jobID string) bool {
	_, ok := s.saved[jobID]
	return ok
}

// List returns the saved job ids in a stable order.
func (s *SavedJobs) List() []string {
	ids := make([]string, 0, len(s.saved))
	for id := range s.saved {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
