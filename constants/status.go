package constants

// JobStatus is the canonical status for rows in extract_jobs.
type JobStatus string

// Stable values (store these exact strings in the journal).
const (
	JobStatusRunning   JobStatus = "RUNNING"   // in progress
	JobStatusSucceeded JobStatus = "SUCCEEDED" // stage completed
	JobStatusFailed    JobStatus = "FAILED"    // terminal failure for this document
)

// Pipeline stages recorded in the journal.
const (
	StageText = "TEXT" // file -> transcript
	StageJSON = "JSON" // transcript -> structured JSON
)
