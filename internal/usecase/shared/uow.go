package shared

import (
	"context"
	"time"

	"hostel-backoffice/internal/domain/contact"
	"hostel-backoffice/internal/domain/reservation"
	"hostel-backoffice/internal/domain/resource"
	"hostel-backoffice/internal/domain/room"
	"hostel-backoffice/internal/domain/stock"
	"hostel-backoffice/internal/domain/user"
	"hostel-backoffice/internal/domain/weather"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx hands out repositories bound to one transaction. Repositories obtained from a Tx must not
// be used after the enclosing Within/WithinReadOnly returns.
type Tx interface {
	Users() UserRepository
	Rooms() RoomRepository
	Reservations() ReservationRepository
	Resources() ResourceRepository
	StockMovements() StockMovementRepository
	Weather() WeatherRepository
	Contacts() ContactRepository
	Notifications() NotificationRepository
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type Page struct {
	Limit  int
	Offset int
}

func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultListLimit
	}
	if p.Limit > MaxListLimit {
		p.Limit = MaxListLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// MovementCursor pages movement history newest first; a zero cursor starts at the newest.
type MovementCursor struct {
	RecordedAt time.Time
	ID         uuid.UUID
	Limit      int
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	List(ctx context.Context, page Page) ([]*user.User, error)
}

type RoomFilter struct {
	Status *room.Status
	Type   *room.Type
	Page   Page
}

type RoomRepository interface {
	Create(ctx context.Context, r *room.Room) error
	Update(ctx context.Context, r *room.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	// FindByIDForUpdate locks the room row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*room.Room, error)
	List(ctx context.Context, filter RoomFilter) ([]*room.Room, error)
	Count(ctx context.Context) (int64, error)
}

type ReservationFilter struct {
	UserID *uuid.UUID
	RoomID *uuid.UUID
	Status *reservation.Status
	Page   Page
}

type ReservationRepository interface {
	Create(ctx context.Context, r *reservation.Reservation) error
	Update(ctx context.Context, r *reservation.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	ListActiveByRoom(ctx context.Context, roomID uuid.UUID) ([]*reservation.Reservation, error)
	List(ctx context.Context, filter ReservationFilter) ([]*reservation.Reservation, error)
	Count(ctx context.Context, filter ReservationFilter) (int64, error)
}

type ResourceRepository interface {
	Create(ctx context.Context, r *resource.Resource) error
	// UpdateDetails writes name, kind and unit only.
	UpdateDetails(ctx context.Context, r *resource.Resource) error
	// UpdateTotal is only called by the stock movement command, after the ledger applied the delta.
	UpdateTotal(ctx context.Context, r *resource.Resource) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	// FindByIDForUpdate locks the resource row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	List(ctx context.Context, page Page) ([]*resource.Resource, error)
	Count(ctx context.Context) (int64, error)
}

type MovementTotals struct {
	Sum   int64
	Count int64
}

type StockMovementRepository interface {
	// Create inserts once; a second Create with the same movement ID fails with a duplicate key error.
	Create(ctx context.Context, m *stock.Movement) error
	ListByResource(ctx context.Context, resourceID uuid.UUID, cursor MovementCursor) ([]*stock.Movement, error)
	TotalsByResource(ctx context.Context, resourceID uuid.UUID) (MovementTotals, error)
}

type WeatherFilter struct {
	From *time.Time
	To   *time.Time
	Page Page
}

type WeatherRepository interface {
	Create(ctx context.Context, r *weather.Record) error
	Update(ctx context.Context, r *weather.Record) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*weather.Record, error)
	List(ctx context.Context, filter WeatherFilter) ([]*weather.Record, error)
}

type ContactRepository interface {
	Create(ctx context.Context, m *contact.Message) error
	List(ctx context.Context, page Page) ([]*contact.Message, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, job NotificationJob) error
	// ClaimDue returns queued jobs with run_at <= now; Postgres skips rows locked by another relay.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]NotificationJob, error)
	// Lease pushes run_at of queued jobs to until so no other claimer picks them up meanwhile.
	Lease(ctx context.Context, ids []uuid.UUID, until time.Time) error
	MarkSent(ctx context.Context, id uuid.UUID, now time.Time) error
	MarkRetry(ctx context.Context, id uuid.UUID, lastError string, nextRunAt time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, lastError string, now time.Time) error
}
