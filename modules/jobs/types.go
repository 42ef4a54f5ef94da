package jobs

import "time"

// JobStatus is the moderation lifecycle of a posting. New postings start
// pending and become visible to seekers only once approved.
type JobStatus string

const (
	StatusPending  JobStatus = "pending"
	StatusApproved JobStatus = "approved"
	StatusRejected JobStatus = "rejected"
	StatusClosed   JobStatus = "closed"
)

// JobType is the employment arrangement.
type JobType string

const (
	TypeFullTime JobType = "full_time"
	TypePartTime JobType = "part_time"
	TypeContract JobType = "contract"
	TypeRemote   JobType = "remote"
)

// Valid reports whether the job type is one of the known arrangements.
func (t JobType) Valid() bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeContract, TypeRemote:
		return true
	}
	return false
}

// Job is a posting as stored and served.
type Job struct {
	ID                 string     `bson:"job_id" json:"job_id"`
	RecruiterID        string     `bson:"recruiter_id" json:"recruiter_id"`
	Title              string     `bson:"title" json:"title"`
	Description        string     `bson:"description" json:"description"`
	CompanyName        string     `bson:"company_name" json:"company_name"`
	Location           string     `bson:"location" json:"location"`
	SalaryMin          *int64     `bson:"salary_min,omitempty" json:"salary_min,omitempty"`
	SalaryMax          *int64     `bson:"salary_max,omitempty" json:"salary_max,omitempty"`
	Type               JobType    `bson:"job_type" json:"job_type"`
	RequiredSkills     []string   `bson:"required_skills" json:"required_skills"`
	ExperienceRequired int        `bson:"experience_required" json:"experience_required"`
	Status             JobStatus  `bson:"status" json:"status"`
	PostedAt           time.Time  `bson:"posted_at" json:"posted_at"`
	ApprovedAt         *time.Time `bson:"approved_at,omitempty" json:"approved_at,omitempty"`
}

// Draft is the caller-supplied part of a posting.
type Draft struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	CompanyName        string   `json:"company_name"`
	Location           string   `json:"location"`
	SalaryMin          *int64   `json:"salary_min,omitempty"`
	SalaryMax          *int64   `json:"salary_max,omitempty"`
	Type               JobType  `json:"job_type"`
	RequiredSkills     []string `json:"required_skills"`
	ExperienceRequired int      `json:"experience_required"`
}

// Filter narrows a job listing query. Zero values mean "any".
type Filter struct {
	Status    JobStatus
	Location  string
	Type      JobType
	Skills    []string
	SalaryMin int64
}
