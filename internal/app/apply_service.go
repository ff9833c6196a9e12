package app

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/ShamilRahmanPK/job-seeker/internal/api"
	"github.com/ShamilRahmanPK/job-seeker/internal/common"
	"github.com/ShamilRahmanPK/job-seeker/internal/domain/job"
	"github.com/ShamilRahmanPK/job-seeker/internal/session"
)

// ApplicationSubmitter is the slice of the API client the submission flow
// needs.
type ApplicationSubmitter interface {
	SubmitApplication(ctx context.Context, token string, form api.ApplicationForm) error
}

type FlowState string

const (
	FlowClosed     FlowState = "closed"
	FlowOpen       FlowState = "open"
	FlowSubmitting FlowState = "submitting"
)

// ResumeFile is a resume selection held by the flow. The content is kept
// in memory so a failed submission can be retried without re-selecting
// the file.
type ResumeFile struct {
	Filename string
	Content  []byte
}

// ApplicationFlow is the modal-scoped state machine for applying to a job:
// Closed -> Open(target) -> Submitting -> Closed, with cancel taking
// Open back to Closed. At most one submission is in flight; Submit while
// Submitting is a no-op.
type ApplicationFlow struct {
	api      ApplicationSubmitter
	sessions *session.Manager
	logger   *slog.Logger

	state  FlowState
	target *job.Job

	Name        string
	Location    string
	Phone       string
	LinkedIn    string
	CoverLetter string
	Resume      *ResumeFile
}

func NewApplicationFlow(api ApplicationSubmitter, sessions *session.Manager, logger *slog.Logger) *ApplicationFlow {
	if logger == nil {
		logger = slog.Default()
	}
	return &ApplicationFlow{api: api, sessions: sessions, logger: logger, state: FlowClosed}
}

func (f *ApplicationFlow) State() FlowState {
	return f.state
}

// Target returns the job the open flow is aimed at, or nil when closed.
func (f *ApplicationFlow) Target() *job.Job {
	if f.target == nil {
		return nil
	}
	copied := *f.target
	return &copied
}

// Open starts an application for the given job. Opening while already
// open retargets the flow; a submission in flight cannot be retargeted.
func (f *ApplicationFlow) Open(target *job.Job) error {
	if target == nil {
		return common.NewError(common.CodeValidation, "a target job is required", nil)
	}
	if f.state == FlowSubmitting {
		return common.NewError(common.CodeConflict, "a submission is in progress", nil)
	}
	copied := *target
	f.target = &copied
	f.state = FlowOpen
	return nil
}

// Cancel closes the flow without contacting the backend. Entered fields
// are kept for the next time the modal opens.
func (f *ApplicationFlow) Cancel() {
	if f.state == FlowSubmitting {
		return
	}
	f.state = FlowClosed
	f.target = nil
}

// validate reports which required fields are missing. Cover letter and
// the profile link are optional.
func (f *ApplicationFlow) validate() map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(f.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(f.Location) == "" {
		fields["location"] = "location is required"
	}
	if strings.TrimSpace(f.Phone) == "" {
		fields["phone"] = "phone is required"
	}
	if f.Resume == nil || len(f.Resume.Content) == 0 {
		fields["resume"] = "resume file is required"
	}
	return fields
}

// Submit validates the form and, if complete, sends the multipart request
// bound to the target job and the session token. On success the cover
// letter and resume are cleared and the flow closes; on failure it stays
// open with every field preserved for retry. A second Submit while one is
// in flight returns nil without issuing anything.
func (f *ApplicationFlow) Submit(ctx context.Context) error {
	switch f.state {
	case FlowSubmitting:
		return nil
	case FlowClosed:
		return common.NewError(common.CodeValidation, "no application is open", nil)
	}
	sess := f.sessions.Current()
	if sess == nil {
		return common.NewError(common.CodeUnauthorized, "not logged in", nil)
	}
	if fields := f.validate(); len(fields) > 0 {
		return common.NewValidationError("please fill all required fields", fields)
	}

	f.state = FlowSubmitting
	form := api.ApplicationForm{
		JobID:       f.target.ID,
		Name:        f.Name,
		CoverLetter: f.CoverLetter,
		Location:    f.Location,
		Phone:       f.Phone,
		LinkedIn:    f.LinkedIn,
		Resume: api.Resume{
			Filename: f.Resume.Filename,
			Content:  bytes.NewReader(f.Resume.Content),
		},
	}
	if err := f.api.SubmitApplication(ctx, sess.Token, form); err != nil {
		f.logger.Error("application submission failed", slog.String("job_id", f.target.ID), slog.String("error", err.Error()))
		f.state = FlowOpen
		return err
	}
	f.logger.Info("application submitted", slog.String("job_id", f.target.ID))
	f.CoverLetter = ""
	f.Resume = nil
	f.state = FlowClosed
	f.target = nil
	return nil
}
