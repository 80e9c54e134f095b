package commands

import (
	"context"
	"time"

	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/usecase/shared"
)

var (
	ErrInvalidCredentials = errs.New("invalid email or password")
	ErrTokenGeneration    = errs.New("token generation failed")
	ErrSelfDeletion       = errs.New("administrators cannot delete their own account")
)

// enqueue writes an outbox row through the same tx as the change it announces.
func enqueue(ctx context.Context, tx shared.Tx, kind, topic string, payload any, now time.Time) error {
	job, err := shared.NewNotificationJob(kind, topic, payload, now)
	if err != nil {
		return err
	}
	if err := tx.Notifications().CreateJob(ctx, job); err != nil {
		return errs.Wrap(err, "failed to enqueue notification")
	}
	return nil
}
