package app

import (
	"context"
	"io"
	"testing"

	"github.com/ShamilRahmanPK/job-seeker/internal/api"
	"github.com/ShamilRahmanPK/job-seeker/internal/common"
	"github.com/ShamilRahmanPK/job-seeker/internal/domain/application"
	"github.com/ShamilRahmanPK/job-seeker/internal/domain/job"
	"github.com/ShamilRahmanPK/job-seeker/internal/domain/user"
	"github.com/ShamilRahmanPK/job-seeker/internal/session"
)

// submittedForm is what the fake records for a multipart submission, with
// the resume content drained so tests can assert on it.
type submittedForm struct {
	form   api.ApplicationForm
	resume []byte
	token  string
}

type fakeAPI struct {
	jobs     []job.Job
	listErr  error
	listCall int

	created    []api.JobRequest
	createErr  error
	updated    map[string]api.JobRequest
	updateErr  error
	updateCall int
	deleted    []string
	deleteErr  error

	submissions []submittedForm
	submitErr   error
	onSubmit    func(ctx context.Context)

	savedPairs [][2]string
	saveErr    error

	myApps    []application.Application
	myAppsErr error

	loginResult *api.LoginResult
	loginErr    error
	loginCall   int
	registered  []api.RegisterRequest
	registerErr error
}

func newFakeAPI(jobs ...job.Job) *fakeAPI {
	return &fakeAPI{jobs: jobs, updated: make(map[string]api.JobRequest)}
}

func (f *fakeAPI) ListJobs(ctx context.Context) ([]job.Job, error) {
	f.listCall++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]job.Job, len(f.jobs))
	copy(out, f.jobs)
	return out, nil
}

func (f *fakeAPI) GetJob(ctx context.Context, id string) (*job.Job, error) {
	for _, j := range f.jobs {
		if j.ID == id {
			copied := j
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "job not found", nil)
}

func (f *fakeAPI) CreateJob(ctx context.Context, token string, req api.JobRequest) (*job.Job, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, req)
	return &job.Job{ID: "created-1", Title: req.Title, Employer: job.EmployerRef{ID: req.Employer}}, nil
}

func (f *fakeAPI) UpdateJob(ctx context.Context, token, id string, req api.JobRequest) (*job.Job, error) {
	f.updateCall++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated[id] = req
	for i := range f.jobs {
		if f.jobs[i].ID == id {
			f.jobs[i].Title = req.Title
			f.jobs[i].Company = req.Company
			f.jobs[i].Location = req.Location
			f.jobs[i].Salary = req.Salary
			f.jobs[i].Description = req.Description
			f.jobs[i].Requirements = req.Requirements
		}
	}
	return &job.Job{ID: id, Title: req.Title, Company: req.Company, Location: req.Location}, nil
}

func (f *fakeAPI) DeleteJob(ctx context.Context, token, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	kept := f.jobs[:0]
	for _, j := range f.jobs {
		if j.ID != id {
			kept = append(kept, j)
		}
	}
	f.jobs = kept
	return nil
}

func (f *fakeAPI) SubmitApplication(ctx context.Context, token string, form api.ApplicationForm) error {
	if f.onSubmit != nil {
		hook := f.onSubmit
		f.onSubmit = nil
		hook(ctx)
	}
	if f.submitErr != nil {
		return f.submitErr
	}
	content, err := io.ReadAll(form.Resume.Content)
	if err != nil {
		return err
	}
	f.submissions = append(f.submissions, submittedForm{form: form, resume: content, token: token})
	return nil
}

func (f *fakeAPI) SaveJob(ctx context.Context, token, userID, jobID string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedPairs = append(f.savedPairs, [2]string{userID, jobID})
	return nil
}

func (f *fakeAPI) MyApplications(ctx context.Context, token string) ([]application.Application, error) {
	if f.myAppsErr != nil {
		return nil, f.myAppsErr
	}
	return f.myApps, nil
}

func (f *fakeAPI) Register(ctx context.Context, req api.RegisterRequest) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.registered = append(f.registered, req)
	return nil
}

func (f *fakeAPI) Login(ctx context.Context, creds api.Credentials) (*api.LoginResult, error) {
	f.loginCall++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResult, nil
}

func seekerSession(t *testing.T) *session.Manager {
	t.Helper()
	return loggedInSession(t, user.User{ID: "seeker-1", Name: "Asha", Role: user.RoleJobSeeker})
}

func employerSession(t *testing.T) *session.Manager {
	t.Helper()
	return loggedInSession(t, user.User{ID: "emp-1", Name: "Ravi", Role: user.RoleEmployer})
}

func loggedInSession(t *testing.T, u user.User) *session.Manager {
	t.Helper()
	manager := session.NewManager(session.NewMemoryStore())
	if err := manager.Establish(context.Background(), session.Session{User: u, Token: "token-1"}); err != nil {
		t.Fatalf("establish session: %v", err)
	}
	return manager
}
