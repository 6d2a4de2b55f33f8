package domain

import "time"

// JobStatus enumerates generation job lifecycle states.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "QUEUED"
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusSucceeded JobStatus = "SUCCEEDED"
	JobStatusFailed    JobStatus = "FAILED"
)

// Job encapsulates one asynchronous generation request: a capability, a
// prompt, and the provider chosen to serve it.
type Job struct {
	ID           string
	UserID       string
	AdID         string
	Capability   string
	Provider     string
	Status       JobStatus
	PromptJSON   []byte
	ResultJSON   []byte
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
