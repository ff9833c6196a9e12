package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ShamilRahmanPK/job-seeker/internal/api"
	"github.com/ShamilRahmanPK/job-seeker/internal/app"
	"github.com/ShamilRahmanPK/job-seeker/internal/common"
	"github.com/ShamilRahmanPK/job-seeker/internal/config"
	"github.com/ShamilRahmanPK/job-seeker/internal/domain/job"
	"github.com/ShamilRahmanPK/job-seeker/internal/session"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: jobseeker <command> [flags]

Commands:
  register         create an account
  login            authenticate and store the session
  logout           clear the stored session
  jobs             browse job listings (filter, sort, paginate)
  apply            apply to a job with a resume file
  save             save a job for later
  saved            list jobs saved this session
  my-applications  list your submitted applications
  post-job         post a new job (employer)
  my-jobs          list your own postings (employer)
  edit-job         edit one of your postings (employer)
  delete-job       delete one of your postings (employer)`)
	os.Exit(2)
}

type cli struct {
	auth         *app.AuthService
	listing      *app.ListingService
	employer     *app.EmployerService
	applications *app.ApplicationsService
	saved        *app.SavedJobs
	flow         *app.ApplicationFlow
	sessions     *session.Manager
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.StatePath), 0o700); err != nil {
		fmt.Fprintln(os.Stderr, "state dir:", err)
		os.Exit(1)
	}
	store, err := session.OpenSQLiteStore(cfg.StatePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer store.Close()

	sessions := session.NewManager(store)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()
	if err := sessions.Restore(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.RequestTimeout}, logger)
	c := &cli{
		auth:         app.NewAuthService(client, sessions, logger),
		listing:      app.NewListingService(client, logger),
		employer:     app.NewEmployerService(client, sessions, logger),
		applications: app.NewApplicationsService(client, sessions, logger),
		saved:        app.NewSavedJobs(client, sessions, logger),
		flow:         app.NewApplicationFlow(client, sessions, logger),
		sessions:     sessions,
	}

	if err := c.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func reportError(err error) {
	var appErr *common.Error
	if errors.As(err, &appErr) && len(appErr.Fields) > 0 {
		fmt.Fprintln(os.Stderr, appErr.Message)
		for field, reason := range appErr.Fields {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", field, reason)
		}
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

func (c *cli) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.register(ctx, args)
	case "login":
		return c.login(ctx, args)
	case "logout":
		return c.auth.Logout(ctx)
	case "jobs":
		return c.jobs(ctx, args)
	case "apply":
		return c.apply(ctx, args)
	case "save":
		return c.save(ctx, args)
	case "saved":
		return c.showSaved()
	case "my-applications":
		return c.myApplications(ctx)
	case "post-job":
		return c.postJob(ctx, args)
	case "my-jobs":
		return c.myJobs(ctx, args)
	case "edit-job":
		return c.editJob(ctx, args)
	case "delete-job":
		return c.deleteJob(ctx, args)
	default:
		usage()
		return nil
	}
}

func (c *cli) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	role := fs.String("role", "job_seeker", "job_seeker or employer")
	phone := fs.String("phone", "", "phone number")
	fs.Parse(args)
	if err := c.auth.Register(ctx, *name, *email, *password, *role, *phone); err != nil {
		return err
	}
	fmt.Println("Registration successful. You can now login.")
	return nil
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)
	sess, err := c.auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome, %s (%s)\n", sess.User.Name, sess.User.Role)
	return nil
}

func (c *cli) jobs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("jobs", flag.ExitOnError)
	title := fs.String("title", "", "filter by job title")
	location := fs.String("location", "", "filter by location")
	page := fs.Int("page", 1, "page number")
	pageSize := fs.Int("page-size", 5, "jobs per page")
	fs.Parse(args)

	if err := c.listing.Load(ctx); err != nil {
		return err
	}
	c.listing.SetFilter(*title, *location)
	jobs := c.listing.Page(*pageSize, *page)
	if len(jobs) == 0 {
		fmt.Println("No jobs found.")
		return nil
	}
	for _, j := range jobs {
		printJob(j)
	}
	fmt.Printf("Page %d of %d\n", *page, c.listing.PageCount(*pageSize))
	return nil
}

func printJob(j job.Job) {
	fmt.Printf("%s  %s @ %s\n", j.ID, j.Title, j.Company)
	fmt.Printf("    Location: %s", j.Location)
	if j.Salary != "" {
		fmt.Printf("  Salary: %s", j.Salary)
	}
	fmt.Println()
}

func (c *cli) apply(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	jobID := fs.String("job", "", "job id to apply to")
	name := fs.String("name", "", "applicant name")
	location := fs.String("location", "", "applicant location")
	phone := fs.String("phone", "", "phone number")
	resumePath := fs.String("resume", "", "path to resume file")
	coverLetter := fs.String("cover-letter", "", "cover letter text")
	linkedin := fs.String("linkedin", "", "profile link")
	fs.Parse(args)

	// Resolve the target from the loaded listing first, the way the
	// dashboard applies from a listed job; fall back to a direct fetch
	// for ids not on the current listing.
	if err := c.listing.Load(ctx); err != nil {
		return err
	}
	target := c.listing.Find(*jobID)
	if target == nil {
		var err error
		target, err = c.listing.Fetch(ctx, *jobID)
		if err != nil {
			return err
		}
	}
	if err := c.flow.Open(target); err != nil {
		return err
	}
	c.flow.Name = *name
	c.flow.Location = *location
	c.flow.Phone = *phone
	c.flow.CoverLetter = *coverLetter
	c.flow.LinkedIn = *linkedin
	if *resumePath != "" {
		content, err := os.ReadFile(*resumePath)
		if err != nil {
			return fmt.Errorf("read resume: %w", err)
		}
		c.flow.Resume = &app.ResumeFile{Filename: filepath.Base(*resumePath), Content: content}
	}
	if err := c.flow.Submit(ctx); err != nil {
		return err
	}
	fmt.Println("Application submitted successfully!")
	return nil
}

func (c *cli) save(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	jobID := fs.String("job", "", "job id to save")
	fs.Parse(args)
	if err := c.saved.Save(ctx, *jobID); err != nil {
		return err
	}
	fmt.Println("Job saved!")
	return nil
}

func (c *cli) showSaved() error {
	ids := c.saved.List()
	if len(ids) == 0 {
		fmt.Println("No saved jobs this session.")
		return nil
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

func (c *cli) myApplications(ctx context.Context) error {
	apps, err := c.applications.List(ctx)
	if err != nil {
		return err
	}
	if len(apps) == 0 {
		fmt.Println("You haven't applied to any jobs yet.")
		return nil
	}
	for _, a := range apps {
		title := "(job no longer listed)"
		company := ""
		if a.Job != nil {
			title = a.Job.Title
			company = a.Job.Company
		}
		fmt.Printf("%s  %s  [%s]\n", title, company, a.Status)
	}
	return nil
}

func (c *cli) postJob(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("post-job", flag.ExitOnError)
	req := api.JobRequest{}
	fs.StringVar(&req.Title, "title", "", "job title")
	fs.StringVar(&req.Description, "description", "", "job description")
	fs.StringVar(&req.Company, "company", "", "company name")
	fs.StringVar(&req.Location, "location", "", "job location")
	fs.StringVar(&req.Salary, "salary", "", "salary (optional)")
	fs.StringVar(&req.Requirements, "requirements", "", "requirements (optional)")
	fs.Parse(args)
	created, err := c.employer.PostJob(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Job posted: %s\n", created.ID)
	return nil
}

func (c *cli) myJobs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("my-jobs", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	pageSize := fs.Int("page-size", 5, "jobs per page")
	fs.Parse(args)
	if err := c.employer.LoadOwn(ctx); err != nil {
		return err
	}
	jobs := c.employer.Page(*pageSize, *page)
	if len(jobs) == 0 {
		fmt.Println("No job posts yet.")
		return nil
	}
	for _, j := range jobs {
		fmt.Printf("%s  %s  %s  applications: %d\n", j.ID, j.Title, j.Location, j.ApplicationCount())
	}
	fmt.Printf("Page %d of %d\n", *page, c.employer.PageCount(*pageSize))
	return nil
}

// fieldUpdates collects repeated --set field=value flags.
type fieldUpdates map[string]string

func (f fieldUpdates) String() string { return "" }

func (f fieldUpdates) Set(value string) error {
	name, val, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("expected field=value, got %q", value)
	}
	f[name] = val
	return nil
}

func (c *cli) editJob(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit-job", flag.ExitOnError)
	jobID := fs.String("job", "", "job id to edit")
	updates := fieldUpdates{}
	fs.Var(updates, "set", "field=value (repeatable: title, company, location, salary, description, requirements)")
	fs.Parse(args)

	if err := c.employer.LoadOwn(ctx); err != nil {
		return err
	}
	if err := c.employer.BeginEdit(*jobID); err != nil {
		return err
	}
	for name, value := range updates {
		if err := c.employer.UpdateField(name, value); err != nil {
			c.employer.CancelEdit()
			return err
		}
	}
	if err := c.employer.CommitEdit(ctx); err != nil {
		return err
	}
	fmt.Println("Job updated!")
	return nil
}

func (c *cli) deleteJob(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete-job", flag.ExitOnError)
	jobID := fs.String("job", "", "job id to delete")
	fs.Parse(args)
	if err := c.employer.LoadOwn(ctx); err != nil {
		return err
	}
	if err := c.employer.Delete(ctx, *jobID); err != nil {
		return err
	}
	fmt.Println("Job deleted.")
	return nil
}
