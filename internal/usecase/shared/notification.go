package shared

import (
	"encoding/json"
	"time"

	"hostel-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	JobStatusQueued = "queued"
	JobStatusSent   = "sent"
	JobStatusFailed = "failed"
)

const (
	TopicReservations = "reservations"
	TopicStock        = "stock"
)

const (
	JobKindReservationCreated       = "reservation.created"
	JobKindReservationUpdated       = "reservation.updated"
	JobKindReservationStatusChanged = "reservation.status_changed"
	JobKindStockMovementRecorded    = "stock.movement_recorded"
)

// NotificationJob is an outbox row written in the same transaction as the change it announces.
type NotificationJob struct {
	ID        uuid.UUID
	Kind      string
	Topic     string
	Payload   []byte
	RunAt     time.Time
	Attempts  int
	Status    string
	LastError *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewNotificationJob(kind, topic string, payload any, now time.Time) (NotificationJob, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return NotificationJob{}, errs.Wrap(err, "failed to encode notification payload")
	}
	return NotificationJob{
		ID:        uuid.New(),
		Kind:      kind,
		Topic:     topic,
		Payload:   body,
		RunAt:     now,
		Status:    JobStatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
