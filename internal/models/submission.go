package models

import "time"

// Submission statuses recorded in the audit log.
const (
	SubmissionSuccess  = "success"
	SubmissionInvalid  = "invalid"
	SubmissionRejected = "rejected"
	SubmissionError    = "error"
)

// SubmissionRecord is one create-workout attempt, successful or not.
type SubmissionRecord struct {
	Owner           string
	CreatedAt       time.Time
	Status          string
	ExerciseInfoID  string
	Division        string
	Repetitions     int
	Series          int
	Weight          int
	WeightTruncated bool
	HTTPStatus      *int
	Message         string
	DurationMs      int
}
