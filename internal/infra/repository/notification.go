package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationJob is a queued outbound message. The payload snapshots
// everything the sender needs, so a later catalog edit never changes
// what the email says.
type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int
	RunAt    time.Time
}

type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO notification_jobs (id, kind, topic, payload, status, run_at)
		VALUES ($1, $2, $3, $4, 'queued', $5)`,
		uuid.New(), kind, topic, payload, runAt,
	)
	if err != nil {
		return wrapPgErr("failed to create notification job", err)
	}
	return nil
}

// ClaimDue picks up to limit due jobs and moves them to processing.
// SKIP LOCKED keeps concurrent dispatchers from double-sending.
func (r *NotificationRepository) ClaimDue(ctx context.Context, limit int) ([]NotificationJob, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE notification_jobs
		SET status = 'processing', attempts = attempts + 1
		WHERE id IN (
			SELECT id FROM notification_jobs
			WHERE status = 'queued' AND run_at <= now()
			ORDER BY run_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, kind, topic, payload, attempts, run_at`, limit)
	if err != nil {
		return nil, wrapPgErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var jobs []NotificationJob
	for rows.Next() {
		var j NotificationJob
		if scanErr := rows.Scan(&j.ID, &j.Kind, &j.Topic, &j.Payload, &j.Attempts, &j.RunAt); scanErr != nil {
			return nil, wrapPgErr("failed to scan notification job", scanErr)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate notification jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, jobID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notification_jobs
		SET status = 'sent', sent_at = now(), last_error = NULL
		WHERE id = $1`, jobID)
	if err != nil {
		return wrapPgErr("failed to mark notification job sent", err)
	}
	return nil
}

// MarkFailed requeues the job for another attempt, or parks it as
// failed once maxAttempts is exhausted.
func (r *NotificationRepository) MarkFailed(ctx context.Context, jobID uuid.UUID, cause string, maxAttempts int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notification_jobs
		SET status = CASE WHEN attempts >= $3 THEN 'failed' ELSE 'queued' END,
		    last_error = $2
		WHERE id = $1`, jobID, cause, maxAttempts)
	if err != nil {
		return wrapPgErr("failed to mark notification job failed", err)
	}
	return nil
}
