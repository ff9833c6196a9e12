package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ShamilRahmanPK/job-seeker/internal/api"
	"github.com/ShamilRahmanPK/job-seeker/internal/common"
	"github.com/ShamilRahmanPK/job-seeker/internal/domain/job"
	"github.com/ShamilRahmanPK/job-seeker/internal/domain/user"
	"github.com/ShamilRahmanPK/job-seeker/internal/session"
)

// JobManager is the slice of the API client the employer flows need.
type JobManager interface {
	ListJobs(ctx context.Context) ([]job.Job, error)
	CreateJob(ctx context.Context, token string, req api.JobRequest) (*job.Job, error)
	UpdateJob(ctx context.Context, token, id string, req api.JobRequest) (*job.Job, error)
	DeleteJob(ctx context.Context, token, id string) error
}

// EditDraft is a transient copy of a job's editable fields, held while an
// edit is open and discarded on cancel. It is never partially applied: the
// whole draft goes out in a single update.
type EditDraft struct {
	JobID        string
	Title        string
	Company      string
	Location     string
	Salary       string
	Description  string
	Requirements string
}

// EmployerService manages the employer's own job subset: load, inline
// edit, delete, posting, and pagination over the owned jobs. Mutations are
// followed by a full re-fetch rather than a local patch; the brief
// staleness window is accepted for simplicity.
type EmployerService struct {
	api      JobManager
	sessions *session.Manager
	logger   *slog.Logger

	jobs  []job.Job
	draft *EditDraft
}

func NewEmployerService(api JobManager, sessions *session.Manager, logger *slog.Logger) *EmployerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmployerService{api: api, sessions: sessions, logger: logger}
}

func (s *EmployerService) authorize() (*session.Session, error) {
	sess := s.sessions.Current()
	if sess == nil {
		return nil, common.NewError(common.CodeUnauthorized, "not logged in", nil)
	}
	if sess.User.Role != user.RoleEmployer {
		return nil, common.NewError(common.CodeForbidden, "employer role required", nil)
	}
	return sess, nil
}

// LoadOwn fetches the full collection and narrows it to jobs owned by the
// logged-in employer. A job with a missing or foreign owner reference is
// simply excluded, never an error.
func (s *EmployerService) LoadOwn(ctx context.Context) error {
	sess, err := s.authorize()
	if err != nil {
		return err
	}
	all, err := s.api.ListJobs(ctx)
	if err != nil {
		s.logger.Error("employer job load failed", slog.String("error", err.Error()))
		return err
	}
	own := make([]job.Job, 0, len(all))
	for _, j := range all {
		if j.EmployerID() != "" && j.EmployerID() == sess.User.ID {
			own = append(own, j)
		}
	}
	s.jobs = own
	s.logger.Info("employer jobs loaded", slog.Int("count", len(own)))
	return nil
}

// Jobs returns a copy of the owned subset as of the last LoadOwn.
func (s *EmployerService) Jobs() []job.Job {
	out := make([]job.Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

func (s *EmployerService) Page(pageSize, pageIndex int) []job.Job {
	return paginate(s.jobs, pageSize, pageIndex)
}

func (s *EmployerService) PageCount(pageSize int) int {
	return pageCount(len(s.jobs), pageSize)
}

// PostJob creates a new posting owned by the logged-in employer. Title,
// description, company, and location are required; salary and requirements
// are optional.
func (s *EmployerService) PostJob(ctx context.Context, req api.JobRequest) (*job.Job, error) {
	sess, err := s.authorize()
	if err != nil {
		return nil, err
	}
	fields := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(req.Description) == "" {
		fields["description"] = "description is required"
	}
	if strings.TrimSpace(req.Company) == "" {
		fields["company"] = "company is required"
	}
	if strings.TrimSpace(req.Location) == "" {
		fields["location"] = "location is required"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("missing required job fields", fields)
	}
	req.Employer = sess.User.ID
	created, err := s.api.CreateJob(ctx, sess.Token, req)
	if err != nil {
		s.logger.Error("job post failed", slog.String("error", err.Error()))
		return nil, err
	}
	s.logger.Info("job posted", slog.String("job_id", created.ID))
	return created, nil
}

// BeginEdit snapshots the job's editable fields into a draft. Only one
// edit is open at a time; starting another discards the previous draft
// without submitting it.
func (s *EmployerService) BeginEdit(jobID string) error {
	for _, j := range s.jobs {
		if j.ID == jobID {
			s.draft = &EditDraft{
				JobID:        j.ID,
				Title:        j.Title,
				Company:      j.Company,
				Location:     j.Location,
				Salary:       j.Salary,
				Description:  j.Description,
				Requirements: j.Requirements,
			}
			return nil
		}
	}
	return common.NewError(common.CodeNotFound, "job not found in your postings", nil)
}

// Draft returns a copy of the open draft, or nil when no edit is open.
func (s *EmployerService) Draft() *EditDraft {
	if s.draft == nil {
		return nil
	}
	copied := *s.draft
	return &copied
}

// UpdateField mutates the open draft in place. No validation happens here;
// the backend validates on commit.
func (s *EmployerService) UpdateField(name, value string) error {
	if s.draft == nil {
		return common.NewError(common.CodeValidation, "no edit in progress", nil)
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "title":
		s.draft.Title = value
	case "company":
		s.draft.Company = value
	case "location":
		s.draft.Location = value
	case "salary":
		s.draft.Salary = value
	case "description":
		s.draft.Description = value
	case "requirements":
		s.draft.Requirements = value
	default:
		return common.NewValidationError("unknown job field", map[string]string{"field": name})
	}
	return nil
}

// CommitEdit submits the draft as an update. On success the edit closes
// and the owned subset is re-fetched; on failure the draft stays open so
// the user can retry.
func (s *EmployerService) CommitEdit(ctx context.Context) error {
	sess, err := s.authorize()
	if err != nil {
		return err
	}
	if s.draft == nil {
		return common.NewError(common.CodeValidation, "no edit in progress", nil)
	}
	req := api.JobRequest{
		Title:        s.draft.Title,
		Company:      s.draft.Company,
		Location:     s.draft.Location,
		Salary:       s.draft.Salary,
		Description:  s.draft.Description,
		Requirements: s.draft.Requirements,
	}
	if _, err := s.api.UpdateJob(ctx, sess.Token, s.draft.JobID, req); err != nil {
		s.logger.Error("job update failed", slog.String("job_id", s.draft.JobID), slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("job updated", slog.String("job_id", s.draft.JobID))
	s.draft = nil
	return s.LoadOwn(ctx)
}

// CancelEdit discards the draft without any network call.
func (s *EmployerService) CancelEdit() {
	s.draft = nil
}

// Delete removes a posting. On success the owned subset is re-fetched; on
// failure the collection stays as it was.
func (s *EmployerService) Delete(ctx context.Context, jobID string) error {
	sess, err := s.authorize()
	if err != nil {
		return err
	}
	if err := s.api.DeleteJob(ctx, sess.Token, jobID); err != nil {
		s.logger.Error("job delete failed", slog.String("job_id", jobID), slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("job deleted", slog.String("job_id", jobID))
	return s.LoadOwn(ctx)
}
