package applications

import "errors"

var (
	ErrApplicationNotFound = errors.New("applications: application not found")
	ErrAlreadyApplied      = errors.New("applications: already applied to this job")
	ErrInvalidStatus       = errors.New("applications: invalid application status")

	// ErrNotRecruiter means the application or posting belongs to another
	// recruiter.
	ErrNotRecruiter = errors.New("applications: not the recruiter for this application")
)
