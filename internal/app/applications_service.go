package app

import (
	"context"
	"log/slog"

	"github.com/ShamilRahmanPK/job-seeker/internal/common"
	"github.com/ShamilRahmanPK/job-seeker/internal/domain/application"
	"github.com/ShamilRahmanPK/job-seeker/internal/session"
)

// ApplicationLister is the slice of the API client the status view needs.
type ApplicationLister interface {
	MyApplications(ctx context.Context, token string) ([]application.Application, error)
}

// ApplicationsService backs the my-applications view: the caller's
// submitted applications, each joined with its job by the backend.
type ApplicationsService struct {
	api      ApplicationLister
	sessions *session.Manager
	logger   *slog.Logger
}

func NewApplicationsService(api ApplicationLister, sessions *session.Manager, logger *slog.Logger) *ApplicationsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ApplicationsService{api: api, sessions: sessions, logger: logger}
}

func (s *ApplicationsService) List(ctx context.Context) ([]application.Application, error) {
	sess := s.sessions.Current()
	if sess == nil {
		return nil, common.NewError(common.CodeUnauthorized, "not logged in", nil)
	}
	apps, err := s.api.MyApplications(ctx, sess.Token)
	if err != nil {
		s.logger.Error("my-applications load failed", slog.String("error", err.Error()))
		return nil, err
	}
	return apps, nil
}
