package app

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/ShamilRahmanPK/job-seeker/internal/domain/job"
)

// JobLister is the slice of the API client the listing engine needs.
type JobLister interface {
	ListJobs(ctx context.Context) ([]job.Job, error)
	GetJob(ctx context.Context, id string) (*job.Job, error)
}

// ListingService drives the job-seeker dashboard: it holds the fetched job
// collection and applies the title/location filter, recency sort, and
// pagination. Changing the filter does not reset the page index; callers
// reset it themselves when the filtered set shrinks.
type ListingService struct {
	api    JobLister
	logger *slog.Logger

	jobs           []job.Job
	titleFilter    string
	locationFilter string
}

func NewListingService(api JobLister, logger *slog.Logger) *ListingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListingService{api: api, logger: logger}
}

// Load fetches the full job collection, replacing the prior one entirely.
func (s *ListingService) Load(ctx context.Context) error {
	jobs, err := s.api.ListJobs(ctx)
	if err != nil {
		s.logger.Error("job listing load failed", slog.String("error", err.Error()))
		return err
	}
	s.jobs = jobs
	s.logger.Info("job listing loaded", slog.Int("count", len(jobs)))
	return nil
}

// SetFilter sets the case-insensitive substring filters. An empty query
// matches every job; both queries must match.
func (s *ListingService) SetFilter(titleQuery, locationQuery string) {
	s.titleFilter = strings.ToLower(strings.TrimSpace(titleQuery))
	s.locationFilter = strings.ToLower(strings.TrimSpace(locationQuery))
}

// Visible returns the filtered collection sorted by creation time, most
// recent first.
func (s *ListingService) Visible() []job.Job {
	filtered := make([]job.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		if s.matches(j) {
			filtered = append(filtered, j)
		}
	}
	sort.Slice(filtered, func(i, k int) bool {
		return filtered[i].CreatedAt.After(filtered[k].CreatedAt)
	})
	return filtered
}

func (s *ListingService) matches(j job.Job) bool {
	if s.titleFilter != "" && !strings.Contains(strings.ToLower(j.Title), s.titleFilter) {
		return false
	}
	if s.locationFilter != "" && !strings.Contains(strings.ToLower(j.Location), s.locationFilter) {
		return false
	}
	return true
}

// Page returns the 1-based page of the filtered and sorted collection.
func (s *ListingService) Page(pageSize, pageIndex int) []job.Job {
	return paginate(s.Visible(), pageSize, pageIndex)
}

// PageCount returns how many pages the current filtered collection spans.
func (s *ListingService) PageCount(pageSize int) int {
	return pageCount(len(s.Visible()), pageSize)
}

// Find returns the job with the given id from the loaded collection, or
// nil when it is not present.
func (s *ListingService) Find(id string) *job.Job {
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			j := s.jobs[i]
			return &j
		}
	}
	return nil
}

// Fetch retrieves a single job from the backend, bypassing the loaded
// collection.
func (s *ListingService) Fetch(ctx context.Context, id string) (*job.Job, error) {
	return s.api.GetJob(ctx, id)
}
