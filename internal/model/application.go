package model

import "time"

// ApplicationStatus is the HR decision on an application.
//
// Status transitions are deliberately unrestricted: HR can flip between
// Approved and Rejected as often as they like (the product exposes it as
// a dropdown with no terminal state). Valid() only guards against values
// outside the enum, not against reversing a decision.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusApproved ApplicationStatus = "Approved"
	StatusRejected ApplicationStatus = "Rejected"
)

// Valid reports whether the value is one of the three allowed statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Ranking bounds for HR's manual applicant rating.
const (
	MinRanking = 0
	MaxRanking = 5
)

// Application is the record of a user applying to a job. It is embedded in
// the job's Applicants slice — at most one per (job, user) pair, enforced
// by a pre-check scan in the service layer.
//
// MatchScore is computed once at apply time (TF-IDF similarity between the
// user's profile and the job description, as a percentage). Ranking is
// HR's manual 0–5 rating and starts at 0.
type Application struct {
	UserID     string            `json:"userId"`
	AppliedAt  time.Time         `json:"applicationDate"`
	Status     ApplicationStatus `json:"status"`
	Ranking    int               `json:"ranking"`
	MatchScore float64           `json:"matchScore"`
}

// EnrichedApplicant is a job's embedded application merged with the
// applicant's user profile, for the HR applicants view. When the userId
// doesn't resolve to a user record, the profile fields stay blank — a
// dangling reference renders as empty, it never fails the listing.
type EnrichedApplicant struct {
	Application
	Name     string `json:"name"`
	Email    string `json:"email"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
}

// EnrichedApplication is an application merged with its job's fields, for
// the job seeker's "my applications" view.
type EnrichedApplication struct {
	Application
	JobID         string        `json:"jobId"`
	Title         string        `json:"title"`
	Company       string        `json:"company"`
	Location      string        `json:"location"`
	WorkplaceType WorkplaceType `json:"workplaceType"`
	JobType       JobType       `json:"jobType"`
}
