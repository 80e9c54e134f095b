package repository

import (
	"context"
	"time"

	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type NotificationRepository struct {
	db DBTX
}

func NewNotificationRepository(db DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, job shared.NotificationJob) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notification_jobs (id, kind, topic, payload, run_at, attempts, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		job.ID, job.Kind, job.Topic, job.Payload, job.RunAt, job.Attempts, job.Status, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return wrap("failed to create notification job", err)
	}
	return nil
}

// Rows stay locked until the relay's transaction ends; a second relay skips them.
func (r *NotificationRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]shared.NotificationJob, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, kind, topic, payload, run_at, attempts, status, last_error, created_at, updated_at
		FROM notification_jobs
		WHERE status = 'queued' AND run_at <= $1
		ORDER BY run_at, id
		LIMIT $2
		FOR UPDATE SKIP LOCKED`, now, limit)
	if err != nil {
		return nil, wrap("failed to claim notification jobs", err)
	}
	jobs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (shared.NotificationJob, error) {
		var j shared.NotificationJob
		err := row.Scan(&j.ID, &j.Kind, &j.Topic, &j.Payload, &j.RunAt, &j.Attempts, &j.Status, &j.LastError, &j.CreatedAt, &j.UpdatedAt)
		return j, err
	})
	if err != nil {
		return nil, wrap("failed to scan notification jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) Lease(ctx context.Context, ids []uuid.UUID, until time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}
	_, err := r.db.Exec(ctx, `
		UPDATE notification_jobs
		SET run_at = $2, updated_at = now()
		WHERE id = ANY($1::uuid[]) AND status = 'queued'`, keys, until)
	if err != nil {
		return wrap("failed to lease notification jobs", err)
	}
	return nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, id uuid.UUID, now time.Time) error {
	return execAffectingOne(ctx, r.db, "failed to mark notification job sent", `
		UPDATE notification_jobs
		SET status = 'sent', attempts = attempts + 1, last_error = NULL, updated_at = $2
		WHERE id = $1`, id, now)
}

func (r *NotificationRepository) MarkRetry(ctx context.Context, id uuid.UUID, lastError string, nextRunAt time.Time) error {
	return execAffectingOne(ctx, r.db, "failed to reschedule notification job", `
		UPDATE notification_jobs
		SET attempts = attempts + 1, last_error = $2, run_at = $3, updated_at = now()
		WHERE id = $1`, id, lastError, nextRunAt)
}

func (r *NotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, lastError string, now time.Time) error {
	return execAffectingOne(ctx, r.db, "failed to mark notification job failed", `
		UPDATE notification_jobs
		SET status = 'failed', attempts = attempts + 1, last_error = $2, updated_at = $3
		WHERE id = $1`, id, lastError, now)
}
