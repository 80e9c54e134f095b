package memstore

import (
	"context"
	"maps"
	"sync"

	"hostel-backoffice/internal/domain/contact"
	"hostel-backoffice/internal/domain/reservation"
	"hostel-backoffice/internal/domain/resource"
	"hostel-backoffice/internal/domain/room"
	"hostel-backoffice/internal/domain/stock"
	"hostel-backoffice/internal/domain/user"
	"hostel-backoffice/internal/domain/weather"
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrReadOnly = errs.New("write attempted in read-only transaction")

// state holds entity values, never pointers, so a shallow map copy is a full snapshot.
type state struct {
	users         map[uuid.UUID]user.User
	rooms         map[uuid.UUID]room.Room
	reservations  map[uuid.UUID]reservation.Reservation
	resources     map[uuid.UUID]resource.Resource
	movements     map[uuid.UUID]stock.Movement
	weather       map[uuid.UUID]weather.Record
	contacts      map[uuid.UUID]contact.Message
	notifications map[uuid.UUID]shared.NotificationJob
}

func newState() *state {
	return &state{
		users:         map[uuid.UUID]user.User{},
		rooms:         map[uuid.UUID]room.Room{},
		reservations:  map[uuid.UUID]reservation.Reservation{},
		resources:     map[uuid.UUID]resource.Resource{},
		movements:     map[uuid.UUID]stock.Movement{},
		weather:       map[uuid.UUID]weather.Record{},
		contacts:      map[uuid.UUID]contact.Message{},
		notifications: map[uuid.UUID]shared.NotificationJob{},
	}
}

func (s *state) clone() *state {
	return &state{
		users:         maps.Clone(s.users),
		rooms:         maps.Clone(s.rooms),
		reservations:  maps.Clone(s.reservations),
		resources:     maps.Clone(s.resources),
		movements:     maps.Clone(s.movements),
		weather:       maps.Clone(s.weather),
		contacts:      maps.Clone(s.contacts),
		notifications: maps.Clone(s.notifications),
	}
}

// Store is an in-process UnitOfWork. Write transactions run one at a time on a copy of the state
// that replaces the live state only when fn succeeds, which gives the same all-or-nothing outcome
// and the same serialization the row locks give on Postgres.
type Store struct {
	mu    sync.RWMutex
	state *state
}

func New() *Store {
	return &Store{state: newState()}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.state.clone()
	if err := fn(ctx, &memTx{st: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, &memTx{st: s.state, readOnly: true})
}

type memTx struct {
	st       *state
	readOnly bool
}

func (t *memTx) writable() error {
	if t.readOnly {
		return ErrReadOnly
	}
	return nil
}

func (t *memTx) Users() shared.UserRepository                   { return &userRepo{tx: t} }
func (t *memTx) Rooms() shared.RoomRepository                   { return &roomRepo{tx: t} }
func (t *memTx) Reservations() shared.ReservationRepository     { return &reservationRepo{tx: t} }
func (t *memTx) Resources() shared.ResourceRepository           { return &resourceRepo{tx: t} }
func (t *memTx) StockMovements() shared.StockMovementRepository { return &movementRepo{tx: t} }
func (t *memTx) Weather() shared.WeatherRepository              { return &weatherRepo{tx: t} }
func (t *memTx) Contacts() shared.ContactRepository             { return &contactRepo{tx: t} }
func (t *memTx) Notifications() shared.NotificationRepository   { return &notificationRepo{tx: t} }
