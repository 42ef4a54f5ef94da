package profiles

// SeekerProfile is a job seeker's public profile.
type SeekerProfile struct {
	AccountID         string   `bson:"user_id" json:"user_id"`
	Skills            []string `bson:"skills" json:"skills"`
	ExperienceYears   int      `bson:"experience_years" json:"experience_years"`
	Location          string   `bson:"location" json:"location"`
	ResumeURL         string   `bson:"resume_url,omitempty" json:"resume_url,omitempty"`
	PreferredJobTypes []string `bson:"preferred_job_types" json:"preferred_job_types"`
	PreferredSalary   *int64   `bson:"preferred_salary_min,omitempty" json:"preferred_salary_min,omitempty"`
	Bio               string   `bson:"bio,omitempty" json:"bio,omitempty"`
}

// RecruiterProfile is a recruiter's company profile. Subscription state is
// tracked elsewhere; this record carries only what the recruiter presents.
type RecruiterProfile struct {
	AccountID          string `bson:"user_id" json:"user_id"`
	CompanyName        string `bson:"company_name" json:"company_name"`
	CompanyWebsite     string `bson:"company_website,omitempty" json:"company_website,omitempty"`
	CompanyDescription string `bson:"company_description,omitempty" json:"company_description,omitempty"`
}
