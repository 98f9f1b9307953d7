package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/treino/internal/models"
	"github.com/google/uuid"
)

// Submission is a stored create-workout attempt.
type Submission struct {
	ID              uuid.UUID `json:"id"`
	Owner           string    `json:"owner"`
	CreatedAt       time.Time `json:"created_at"`
	Status          string    `json:"status"`
	ExerciseInfoID  string    `json:"exercise_info_id"`
	Division        string    `json:"division"`
	Repetitions     int       `json:"repetitions"`
	Series          int       `json:"series"`
	Weight          int       `json:"weight"`
	WeightTruncated bool      `json:"weight_truncated"`
	HTTPStatus      *int      `json:"http_status"`
	Message         string    `json:"message"`
	DurationMs      int       `json:"duration_ms"`
}

// RecordSubmission inserts one attempt. It satisfies workout.AuditLog.
func (db *DB) RecordSubmission(ctx context.Context, rec models.SubmissionRecord) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO workout_submissions (id, owner, created_at, status, exercise_info_id, division,
		 repetitions, series, weight, weight_truncated, http_status, message, duration_ms)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		uuid.New(), rec.Owner, rec.CreatedAt, rec.Status, rec.ExerciseInfoID, rec.Division,
		rec.Repetitions, rec.Series, rec.Weight, rec.WeightTruncated, rec.HTTPStatus,
		rec.Message, rec.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("inserting submission: %w", err)
	}
	return nil
}

// QuerySubmissions returns the most recent attempts of owner.
func (db *DB) QuerySubmissions(ctx context.Context, owner string, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, owner, created_at, status, exercise_info_id, division,
		 repetitions, series, weight, weight_truncated, http_status, message, duration_ms
		 FROM workout_submissions
		 WHERE owner = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		owner, limit)
	if err != nil {
		return nil, fmt.Errorf("querying submissions: %w", err)
	}
	defer rows.Close()

	var result []Submission
	for rows.Next() {
		var s Submission
		if err := rows.Scan(&s.ID, &s.Owner, &s.CreatedAt, &s.Status, &s.ExerciseInfoID, &s.Division,
			&s.Repetitions, &s.Series, &s.Weight, &s.WeightTruncated, &s.HTTPStatus,
			&s.Message, &s.DurationMs); err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
