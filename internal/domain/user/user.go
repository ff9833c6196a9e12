package user

import (
	"encoding/json"
	"strings"
)

type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleEmployer  Role = "employer"
)

// NormalizeRole maps the spellings the backend has been seen emitting
// ("job-seeker", "job_seeker") onto the canonical enumeration.
func NormalizeRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "job_seeker", "job-seeker", "job seeker":
		return RoleJobSeeker, true
	case "employer":
		return RoleEmployer, true
	default:
		return "", false
	}
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  Role   `json:"role"`
}

// UnmarshalJSON accepts both "id" and "_id" for the identifier and
// normalizes the role spelling.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID      string `json:"id"`
		MongoID string `json:"_id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Role    string `json:"role"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	u.ID = raw.ID
	if u.ID == "" {
		u.ID = raw.MongoID
	}
	u.Name = raw.Name
	u.Email = raw.Email
	u.Phone = raw.Phone
	if role, ok := NormalizeRole(raw.Role); ok {
		u.Role = role
	} else {
		u.Role = Role(raw.Role)
	}
	return nil
}
