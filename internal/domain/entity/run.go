package entity

import "time"

// RunStatus outcome of a processing run
type RunStatus string

const (
	RunOK     RunStatus = "ok"
	RunEmpty  RunStatus = "empty"
	RunFailed RunStatus = "failed"
)

// Run history entry of one processing run
type Run struct {
	ID          string
	Source      string
	GradeSource string
	Month       string
	Brand       string
	Records     int
	Skipped     int
	Status      RunStatus
	Error       string
	CreatedAt   time.Time
}
