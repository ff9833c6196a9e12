package app

import "github.com/ShamilRahmanPK/job-seeker/internal/domain/job"

// paginate slices jobs into the 1-based page of the given size. An
// out-of-range page yields an empty slice, never an error.
func paginate(jobs []job.Job, pageSize, pageIndex int) []job.Job {
	if pageSize <= 0 || pageIndex <= 0 {
		return nil
	}
	start := (pageIndex - 1) * pageSize
	if start >= len(jobs) {
		return nil
	}
	end := start + pageSize
	if end > len(jobs) {
		end = len(jobs)
	}
	return jobs[start:end]
}

// pageCount is ceil(len(jobs) / pageSize).
func pageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
