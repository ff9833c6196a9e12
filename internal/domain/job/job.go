package job

import "time"

// EmployerRef is the owner reference the backend embeds in every job.
type EmployerRef struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

type Job struct {
	ID           string      `json:"_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Company      string      `json:"company"`
	Location     string      `json:"location"`
	Salary       string      `json:"salary,omitempty"`
	Requirements string      `json:"requirements,omitempty"`
	Employer     EmployerRef `json:"employer"`
	Applications []string    `json:"applications,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// EmployerID returns the identifier of the owning employer, or "" when
// the backend sent no owner reference.
func (j Job) EmployerID() string {
	return j.Employer.ID
}

func (j Job) ApplicationCount() int {
	return len(j.Applications)
}
