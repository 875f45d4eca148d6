package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/remitworks/remit-extract/constants"
)

type Job struct {
	ID         uuid.UUID
	SourcePath string
	Stage      string
	Status     constants.JobStatus
	Error      string
	OutputPath string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// Start records a RUNNING job row and returns its id.
// All journal methods are no-ops on a nil receiver.
func (j *Journal) Start(ctx context.Context, sourcePath, stage string) (uuid.UUID, error) {
	if j == nil {
		return uuid.Nil, nil
	}
	id := uuid.New()
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO extract_jobs (id, source_path, stage, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		id.String(), sourcePath, stage, string(constants.JobStatusRunning), now(),
	)
	if err != nil {
		j.log.Warn("journal.start_failed", "source", sourcePath, "stage", stage, "error", err)
		return uuid.Nil, err
	}
	return id, nil
}

// FinishSuccess marks a job SUCCEEDED and records where its output went.
func (j *Journal) FinishSuccess(ctx context.Context, id uuid.UUID, outputPath string) error {
	if j == nil || id == uuid.Nil {
		return nil
	}
	_, err := j.db.ExecContext(ctx,
		`UPDATE extract_jobs SET status = ?, output_path = ?, finished_at = ? WHERE id = ?`,
		string(constants.JobStatusSucceeded), outputPath, now(), id.String(),
	)
	return err
}

// FinishFailure marks a job FAILED with its error message.
func (j *Journal) FinishFailure(ctx context.Context, id uuid.UUID, msg string) error {
	if j == nil || id == uuid.Nil {
		return nil
	}
	_, err := j.db.ExecContext(ctx,
		`UPDATE extract_jobs SET status = ?, error = ?, finished_at = ? WHERE id = ?`,
		string(constants.JobStatusFailed), msg, now(), id.String(),
	)
	return err
}

// Get loads one job row.
func (j *Journal) Get(ctx context.Context, id uuid.UUID) (*Job, error) {
	if j == nil {
		return nil, sql.ErrNoRows
	}
	row := j.db.QueryRowContext(ctx,
		`SELECT id, source_path, stage, status, COALESCE(error, ''), COALESCE(output_path, ''), started_at, COALESCE(finished_at, '')
		 FROM extract_jobs WHERE id = ?`, id.String(),
	)
	var (
		jb       Job
		idStr    string
		status   string
		started  string
		finished string
	)
	if err := row.Scan(&idStr, &jb.SourcePath, &jb.Stage, &status, &jb.Error, &jb.OutputPath, &started, &finished); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	jb.ID = parsed
	jb.Status = constants.JobStatus(status)
	if t, err := time.Parse(time.RFC3339Nano, started); err == nil {
		jb.StartedAt = t
	}
	if finished != "" {
		if t, err := time.Parse(time.RFC3339Nano, finished); err == nil {
			jb.FinishedAt = &t
		}
	}
	return &jb, nil
}

// Timestamps go in as RFC3339 text so rows stay portable across drivers.
func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
