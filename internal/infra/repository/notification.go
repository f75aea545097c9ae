package repository

import (
	"context"

	"shiftlink/internal/infra"
	"shiftlink/internal/infra/db"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(db db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const enqueueNotificationSQL = `
INSERT INTO notification_jobs (kind, topic, payload, status, created_at)
VALUES ($1, $2, $3, 'queued', now())
`

// Enqueue writes the job inside the caller's transaction so the event is
// durable iff the state change it announces committed.
func (r *NotificationRepository) Enqueue(ctx context.Context, kind, topic string, payload []byte) error {
	_, err := r.db.Exec(ctx, enqueueNotificationSQL, kind, topic, payload)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification", err)
	}
	return nil
}
