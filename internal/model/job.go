// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// WorkplaceType is where the work physically happens.
//
// WHY A NAMED STRING TYPE INSTEAD OF PLAIN string?
// The original stored these as free text, which meant a typo like "remot"
// silently became its own category. A named type with a Valid() check gives
// us one place that knows the allowed values, and the compiler stops us from
// accidentally passing a JobType where a WorkplaceType belongs.
type WorkplaceType string

const (
	WorkplaceOnSite WorkplaceType = "On-site"
	WorkplaceRemote WorkplaceType = "Remote"
	WorkplaceHybrid WorkplaceType = "Hybrid"
)

// Valid reports whether the value is one of the allowed workplace types.
func (w WorkplaceType) Valid() bool {
	switch w {
	case WorkplaceOnSite, WorkplaceRemote, WorkplaceHybrid:
		return true
	}
	return false
}

// JobType is the employment arrangement being advertised.
type JobType string

const (
	JobFullTime   JobType = "Full-time"
	JobPartTime   JobType = "Part-time"
	JobContract   JobType = "Contract"
	JobInternship JobType = "Internship"
)

// Valid reports whether the value is one of the allowed job types.
func (j JobType) Valid() bool {
	switch j {
	case JobFullTime, JobPartTime, JobContract, JobInternship:
		return true
	}
	return false
}

// Job represents a single advertised role, owned by exactly one HR account
// (HRID). Applications live embedded in the Applicants slice rather than in
// their own collection — deleting a job discards its applications with it,
// so there is no orphan cleanup to do.
//
// The `json:"..."` tags tell Go's encoding/json package how to serialize
// this struct. The same shapes are what the store persists, so the JSON
// field names are part of the storage layout, not just the API.
type Job struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Company       string        `json:"company"`
	WorkplaceType WorkplaceType `json:"workplaceType"`
	Location      string        `json:"location"`
	JobType       JobType       `json:"jobType"`
	Description   string        `json:"description"`
	Salary        string        `json:"salary"`
	Department    string        `json:"department"`
	Deadline      string        `json:"deadline"`
	EasyApply     bool          `json:"easyApply"`
	HRID          string        `json:"hrId"`
	PostedAt      time.Time     `json:"postedAt"`
	Applicants    []Application `json:"applicants"`
}

// PostedTime renders the job's age as the label the product shows
// ("Just now", "5 hours ago", "3 days ago"). We store the real timestamp
// and derive the label so it doesn't go stale in storage.
func (j Job) PostedTime() string {
	return RelativeTime(j.PostedAt, time.Now())
}

// MarshalJSON adds the derived postedTime label next to the raw
// timestamp. The label is recomputed on every encode; readers ignore it
// when decoding, so nothing stale ever comes back out of storage.
func (j Job) MarshalJSON() ([]byte, error) {
	type alias Job // alias drops the methods, avoiding marshal recursion
	return json.Marshal(struct {
		alias
		PostedTime string `json:"postedTime"`
	}{alias(j), j.PostedTime()})
}

// RelativeTime formats the distance between posted and now as a coarse
// human-readable label. Anything under a minute is "Just now".
func RelativeTime(posted, now time.Time) string {
	d := now.Sub(posted)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		n := int(d.Minutes())
		return fmt.Sprintf("%d minute%s ago", n, plural(n))
	case d < 24*time.Hour:
		n := int(d.Hours())
		return fmt.Sprintf("%d hour%s ago", n, plural(n))
	default:
		n := int(d.Hours() / 24)
		return fmt.Sprintf("%d day%s ago", n, plural(n))
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
