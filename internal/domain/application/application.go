package application

import (
	"time"

	"github.com/ShamilRahmanPK/job-seeker/internal/domain/job"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Application is immutable from the client's point of view once created;
// only Status changes, and only the backend changes it.
type Application struct {
	ID          string    `json:"_id"`
	JobID       string    `json:"jobId,omitempty"`
	Job         *job.Job  `json:"job,omitempty"`
	Name        string    `json:"name"`
	CoverLetter string    `json:"coverLetter,omitempty"`
	Resume      string    `json:"resume,omitempty"`
	Location    string    `json:"location"`
	Phone       string    `json:"phone"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
