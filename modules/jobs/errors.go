package jobs

import "errors"

var (
	ErrJobNotFound = errors.New("jobs: job not found")

	// ErrNotOwner means the posting exists but belongs to another recruiter.
	ErrNotOwner = errors.New("jobs: job belongs to another recruiter")

	ErrInvalidJobType = errors.New("jobs: invalid job type")
	ErrMissingFields  = errors.New("jobs: title, description, company name and location are required")
)
