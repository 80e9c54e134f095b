package stock

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrZeroQuantity = errors.New("movement quantity must be non-zero")
	ErrEmptyReason  = errors.New("movement reason is required")
)

// Movement is immutable once built: there is no setter and repositories only insert and read.
type Movement struct {
	id             uuid.UUID
	resourceID     uuid.UUID
	quantity       int64
	reason         string
	recordedAt     time.Time
	quantityBefore int64
	quantityAfter  int64
}

func NewMovement(resourceID uuid.UUID, quantity int64, reason string, quantityBefore int64, recordedAt time.Time) (*Movement, error) {
	if quantity == 0 {
		return nil, ErrZeroQuantity
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrEmptyReason
	}
	return &Movement{
		id:             uuid.New(),
		resourceID:     resourceID,
		quantity:       quantity,
		reason:         reason,
		recordedAt:     recordedAt,
		quantityBefore: quantityBefore,
		quantityAfter:  quantityBefore + quantity,
	}, nil
}

func ReconstructMovement(id, resourceID uuid.UUID, quantity int64, reason string, recordedAt time.Time, before, after int64) *Movement {
	return &Movement{
		id:             id,
		resourceID:     resourceID,
		quantity:       quantity,
		reason:         reason,
		recordedAt:     recordedAt,
		quantityBefore: before,
		quantityAfter:  after,
	}
}

func (m *Movement) ID() uuid.UUID         { return m.id }
func (m *Movement) ResourceID() uuid.UUID { return m.resourceID }
func (m *Movement) Quantity() int64       { return m.quantity }
func (m *Movement) Reason() string        { return m.reason }
func (m *Movement) RecordedAt() time.Time { return m.recordedAt }
func (m *Movement) QuantityBefore() int64 { return m.quantityBefore }
func (m *Movement) QuantityAfter() int64  { return m.quantityAfter }
func (m *Movement) IsInbound() bool       { return m.quantity > 0 }
