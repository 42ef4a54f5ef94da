package applications

import (
	"time"

	"github.com/jobdeskhq/jobdesk/modules/jobs"
	"github.com/jobdeskhq/jobdesk/modules/profiles"
)

// Status is the recruiter-driven lifecycle of an application.
type Status string

const (
	StatusPending     Status = "pending"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
	StatusAccepted    Status = "accepted"
)

// Valid reports whether the status is a known lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusShortlisted, StatusRejected, StatusAccepted:
		return true
	}
	return false
}

// Application ties a seeker to a posting. The recruiter id is denormalized
// at apply time so recruiter-side queries need no join.
type Application struct {
	ID          string    `bson:"application_id" json:"application_id"`
	JobID       string    `bson:"job_id" json:"job_id"`
	SeekerID    string    `bson:"job_seeker_id" json:"job_seeker_id"`
	RecruiterID string    `bson:"recruiter_id" json:"recruiter_id"`
	Status      Status    `bson:"status" json:"status"`
	CoverLetter string    `bson:"cover_letter,omitempty" json:"cover_letter,omitempty"`
	AppliedAt   time.Time `bson:"applied_at" json:"applied_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// SeekerView is an application enriched with its posting for the seeker's
// own listing.
type SeekerView struct {
	Application
	Job *jobs.Job `json:"job,omitempty"`
}

// RecruiterView is an application enriched with the candidate's profile
// for the recruiter's per-job listing.
type RecruiterView struct {
	Application
	Profile *profiles.SeekerProfile `json:"profile,omitempty"`
}
