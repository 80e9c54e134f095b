package memstore

import (
	"context"
	"slices"
	"strings"
	"time"

	"hostel-backoffice/internal/domain/contact"
	"hostel-backoffice/internal/domain/reservation"
	"hostel-backoffice/internal/domain/resource"
	"hostel-backoffice/internal/domain/room"
	"hostel-backoffice/internal/domain/stock"
	"hostel-backoffice/internal/domain/user"
	"hostel-backoffice/internal/domain/weather"
	"hostel-backoffice/internal/infra"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// users
// -----------------------------------------------------------------------------

type userRepo struct{ tx *memTx }

func (r *userRepo) Create(_ context.Context, u *user.User) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	st := r.tx.st
	if _, ok := st.users[u.ID()]; ok {
		return duplicate("failed to create user")
	}
	for _, existing := range st.users {
		if existing.Email() == u.Email() || existing.Username() == u.Username() {
			return duplicate("failed to create user")
		}
	}
	st.users[u.ID()] = *u
	return nil
}

func (r *userRepo) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	st := r.tx.st
	if _, ok := st.users[id]; !ok {
		return notFound("failed to delete user")
	}
	delete(st.users, id)
	for rid, res := range st.reservations {
		if res.UserID() == id {
			delete(st.reservations, rid)
		}
	}
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.tx.st.users[id]
	if !ok {
		return nil, notFound("failed to find user by id")
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.tx.st.users {
		if u.Email().Value() == email {
			return &u, nil
		}
	}
	return nil, notFound("failed to find user by email")
}

func (r *userRepo) List(_ context.Context, page shared.Page) ([]*user.User, error) {
	out := make([]*user.User, 0, len(r.tx.st.users))
	for _, u := range r.tx.st.users {
		out = append(out, &u)
	}
	slices.SortFunc(out, func(a, b *user.User) int {
		return newerFirst(a.CreatedAt(), b.CreatedAt(), a.ID(), b.ID())
	})
	return paginate(out, page), nil
}

// -----------------------------------------------------------------------------
// rooms
// -----------------------------------------------------------------------------

type roomRepo struct{ tx *memTx }

func (r *roomRepo) numberTaken(rm *room.Room) bool {
	for id, existing := range r.tx.st.rooms {
		if id != rm.ID() && existing.Number() == rm.Number() {
			return true
		}
	}
	return false
}

func (r *roomRepo) Create(_ context.Context, rm *room.Room) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.rooms[rm.ID()]; ok || r.numberTaken(rm) {
		return duplicate("failed to create room")
	}
	r.tx.st.rooms[rm.ID()] = *rm
	return nil
}

func (r *roomRepo) Update(_ context.Context, rm *room.Room) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.rooms[rm.ID()]; !ok {
		return notFound("failed to update room")
	}
	if r.numberTaken(rm) {
		return duplicate("failed to update room")
	}
	r.tx.st.rooms[rm.ID()] = *rm
	return nil
}

func (r *roomRepo) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	st := r.tx.st
	if _, ok := st.rooms[id]; !ok {
		return notFound("failed to delete room")
	}
	delete(st.rooms, id)
	for rid, res := range st.reservations {
		if res.RoomID() == id {
			delete(st.reservations, rid)
		}
	}
	return nil
}

func (r *roomRepo) FindByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	rm, ok := r.tx.st.rooms[id]
	if !ok {
		return nil, notFound("failed to find room by id")
	}
	return &rm, nil
}

// FindByIDForUpdate needs no row lock here: write transactions already run one at a time.
func (r *roomRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	return r.FindByID(ctx, id)
}

func (r *roomRepo) List(_ context.Context, filter shared.RoomFilter) ([]*room.Room, error) {
	out := make([]*room.Room, 0, len(r.tx.st.rooms))
	for _, rm := range r.tx.st.rooms {
		if filter.Status != nil && rm.Status() != *filter.Status {
			continue
		}
		if filter.Type != nil && rm.Type() != *filter.Type {
			continue
		}
		out = append(out, &rm)
	}
	slices.SortFunc(out, func(a, b *room.Room) int {
		return strings.Compare(a.Number(), b.Number())
	})
	return paginate(out, filter.Page), nil
}

func (r *roomRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.tx.st.rooms)), nil
}

// -----------------------------------------------------------------------------
// reservations
// -----------------------------------------------------------------------------

type reservationRepo struct{ tx *memTx }

// check mirrors the foreign keys and the exclusion constraint of the reservations table.
func (r *reservationRepo) check(res *reservation.Reservation, msg string) error {
	st := r.tx.st
	if _, ok := st.users[res.UserID()]; !ok {
		return missingParent(msg)
	}
	if _, ok := st.rooms[res.RoomID()]; !ok {
		return missingParent(msg)
	}
	if !res.IsActive() {
		return nil
	}
	for id, other := range st.reservations {
		if id == res.ID() || other.RoomID() != res.RoomID() || !other.IsActive() {
			continue
		}
		if other.Dates().Overlaps(res.Dates()) {
			return infra.WrapRepoErr(msg, nil, infra.KindExclusionViolated)
		}
	}
	return nil
}

func (r *reservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.reservations[res.ID()]; ok {
		return duplicate("failed to create reservation")
	}
	if err := r.check(res, "failed to create reservation"); err != nil {
		return err
	}
	r.tx.st.reservations[res.ID()] = *res
	return nil
}

func (r *reservationRepo) Update(_ context.Context, res *reservation.Reservation) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.reservations[res.ID()]; !ok {
		return notFound("failed to update reservation")
	}
	if err := r.check(res, "failed to update reservation"); err != nil {
		return err
	}
	r.tx.st.reservations[res.ID()] = *res
	return nil
}

func (r *reservationRepo) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.reservations[id]; !ok {
		return notFound("failed to delete reservation")
	}
	delete(r.tx.st.reservations, id)
	return nil
}

func (r *reservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := r.tx.st.reservations[id]
	if !ok {
		return nil, notFound("failed to find reservation by id")
	}
	return &res, nil
}

func (r *reservationRepo) ListActiveByRoom(_ context.Context, roomID uuid.UUID) ([]*reservation.Reservation, error) {
	out := []*reservation.Reservation{}
	for _, res := range r.tx.st.reservations {
		if res.RoomID() == roomID && res.IsActive() {
			out = append(out, &res)
		}
	}
	slices.SortFunc(out, func(a, b *reservation.Reservation) int {
		return a.Dates().Start().Compare(b.Dates().Start())
	})
	return out, nil
}

func (r *reservationRepo) filtered(filter shared.ReservationFilter) []*reservation.Reservation {
	out := []*reservation.Reservation{}
	for _, res := range r.tx.st.reservations {
		if filter.UserID != nil && res.UserID() != *filter.UserID {
			continue
		}
		if filter.RoomID != nil && res.RoomID() != *filter.RoomID {
			continue
		}
		if filter.Status != nil && res.Status() != *filter.Status {
			continue
		}
		out = append(out, &res)
	}
	return out
}

func (r *reservationRepo) List(_ context.Context, filter shared.ReservationFilter) ([]*reservation.Reservation, error) {
	out := r.filtered(filter)
	slices.SortFunc(out, func(a, b *reservation.Reservation) int {
		return newerFirst(a.Dates().Start(), b.Dates().Start(), a.ID(), b.ID())
	})
	return paginate(out, filter.Page), nil
}

func (r *reservationRepo) Count(_ context.Context, filter shared.ReservationFilter) (int64, error) {
	return int64(len(r.filtered(filter))), nil
}

// -----------------------------------------------------------------------------
// resources
// -----------------------------------------------------------------------------

type resourceRepo struct{ tx *memTx }

func (r *resourceRepo) Create(_ context.Context, res *resource.Resource) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.resources[res.ID()]; ok {
		return duplicate("failed to create resource")
	}
	r.tx.st.resources[res.ID()] = *res
	return nil
}

func (r *resourceRepo) UpdateDetails(_ context.Context, res *resource.Resource) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	stored, ok := r.tx.st.resources[res.ID()]
	if !ok {
		return notFound("failed to update resource")
	}
	r.tx.st.resources[res.ID()] = *resource.ReconstructResource(
		res.ID(), res.Details(), stored.TotalQuantity(), stored.CreatedAt(), res.UpdatedAt(),
	)
	return nil
}

func (r *resourceRepo) UpdateTotal(_ context.Context, res *resource.Resource) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	stored, ok := r.tx.st.resources[res.ID()]
	if !ok {
		return notFound("failed to update resource total")
	}
	r.tx.st.resources[res.ID()] = *resource.ReconstructResource(
		res.ID(), stored.Details(), res.TotalQuantity(), stored.CreatedAt(), res.UpdatedAt(),
	)
	return nil
}

func (r *resourceRepo) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	st := r.tx.st
	if _, ok := st.resources[id]; !ok {
		return notFound("failed to delete resource")
	}
	delete(st.resources, id)
	for mid, m := range st.movements {
		if m.ResourceID() == id {
			delete(st.movements, mid)
		}
	}
	return nil
}

func (r *resourceRepo) FindByID(_ context.Context, id uuid.UUID) (*resource.Resource, error) {
	res, ok := r.tx.st.resources[id]
	if !ok {
		return nil, notFound("failed to find resource by id")
	}
	return &res, nil
}

func (r *resourceRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return r.FindByID(ctx, id)
}

func (r *resourceRepo) List(_ context.Context, page shared.Page) ([]*resource.Resource, error) {
	out := make([]*resource.Resource, 0, len(r.tx.st.resources))
	for _, res := range r.tx.st.resources {
		out = append(out, &res)
	}
	slices.SortFunc(out, func(a, b *resource.Resource) int {
		if c := strings.Compare(a.Name(), b.Name()); c != 0 {
			return c
		}
		if lessID(a.ID(), b.ID()) {
			return -1
		}
		return 1
	})
	return paginate(out, page), nil
}

func (r *resourceRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.tx.st.resources)), nil
}

// -----------------------------------------------------------------------------
// stock movements
// -----------------------------------------------------------------------------

// movementRepo is append-only: there is no update path, matching the trigger on stock_movements.
type movementRepo struct{ tx *memTx }

func (r *movementRepo) Create(_ context.Context, m *stock.Movement) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	st := r.tx.st
	if _, ok := st.movements[m.ID()]; ok {
		return duplicate("failed to record stock movement")
	}
	if _, ok := st.resources[m.ResourceID()]; !ok {
		return missingParent("failed to record stock movement")
	}
	st.movements[m.ID()] = *m
	return nil
}

func (r *movementRepo) ListByResource(_ context.Context, resourceID uuid.UUID, cursor shared.MovementCursor) ([]*stock.Movement, error) {
	out := []*stock.Movement{}
	for _, m := range r.tx.st.movements {
		if m.ResourceID() != resourceID {
			continue
		}
		if !cursor.RecordedAt.IsZero() && !olderThan(&m, cursor) {
			continue
		}
		out = append(out, &m)
	}
	slices.SortFunc(out, func(a, b *stock.Movement) int {
		if c := b.RecordedAt().Compare(a.RecordedAt()); c != 0 {
			return c
		}
		if lessID(b.ID(), a.ID()) {
			return -1
		}
		return 1
	})
	limit := cursor.Limit
	if limit <= 0 {
		limit = shared.DefaultListLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// olderThan compares (recorded_at, id) tuples the way the keyset query does.
func olderThan(m *stock.Movement, cursor shared.MovementCursor) bool {
	if !m.RecordedAt().Equal(cursor.RecordedAt) {
		return m.RecordedAt().Before(cursor.RecordedAt)
	}
	return lessID(m.ID(), cursor.ID)
}

func (r *movementRepo) TotalsByResource(_ context.Context, resourceID uuid.UUID) (shared.MovementTotals, error) {
	var totals shared.MovementTotals
	for _, m := range r.tx.st.movements {
		if m.ResourceID() == resourceID {
			totals.Sum += m.Quantity()
			totals.Count++
		}
	}
	return totals, nil
}

// -----------------------------------------------------------------------------
// weather
// -----------------------------------------------------------------------------

type weatherRepo struct{ tx *memTx }

func (r *weatherRepo) dateTaken(w *weather.Record) bool {
	for id, existing := range r.tx.st.weather {
		if id != w.ID() && existing.Date().Equal(w.Date()) {
			return true
		}
	}
	return false
}

func (r *weatherRepo) Create(_ context.Context, w *weather.Record) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.weather[w.ID()]; ok || r.dateTaken(w) {
		return duplicate("failed to create weather record")
	}
	r.tx.st.weather[w.ID()] = *w
	return nil
}

func (r *weatherRepo) Update(_ context.Context, w *weather.Record) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.weather[w.ID()]; !ok {
		return notFound("failed to update weather record")
	}
	if r.dateTaken(w) {
		return duplicate("failed to update weather record")
	}
	r.tx.st.weather[w.ID()] = *w
	return nil
}

func (r *weatherRepo) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.weather[id]; !ok {
		return notFound("failed to delete weather record")
	}
	delete(r.tx.st.weather, id)
	return nil
}

func (r *weatherRepo) FindByID(_ context.Context, id uuid.UUID) (*weather.Record, error) {
	w, ok := r.tx.st.weather[id]
	if !ok {
		return nil, notFound("failed to find weather record by id")
	}
	return &w, nil
}

func (r *weatherRepo) List(_ context.Context, filter shared.WeatherFilter) ([]*weather.Record, error) {
	out := []*weather.Record{}
	for _, w := range r.tx.st.weather {
		if filter.From != nil && w.Date().Before(*filter.From) {
			continue
		}
		if filter.To != nil && w.Date().After(*filter.To) {
			continue
		}
		out = append(out, &w)
	}
	slices.SortFunc(out, func(a, b *weather.Record) int {
		return b.Date().Compare(a.Date())
	})
	return paginate(out, filter.Page), nil
}

// -----------------------------------------------------------------------------
// contact messages
// -----------------------------------------------------------------------------

type contactRepo struct{ tx *memTx }

func (r *contactRepo) Create(_ context.Context, m *contact.Message) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.contacts[m.ID()]; ok {
		return duplicate("failed to create contact message")
	}
	r.tx.st.contacts[m.ID()] = *m
	return nil
}

func (r *contactRepo) List(_ context.Context, page shared.Page) ([]*contact.Message, error) {
	out := make([]*contact.Message, 0, len(r.tx.st.contacts))
	for _, m := range r.tx.st.contacts {
		out = append(out, &m)
	}
	slices.SortFunc(out, func(a, b *contact.Message) int {
		return newerFirst(a.SubmittedAt(), b.SubmittedAt(), a.ID(), b.ID())
	})
	return paginate(out, page), nil
}

// -----------------------------------------------------------------------------
// notification outbox
// -----------------------------------------------------------------------------

type notificationRepo struct{ tx *memTx }

func (r *notificationRepo) CreateJob(_ context.Context, job shared.NotificationJob) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.notifications[job.ID]; ok {
		return duplicate("failed to enqueue notification")
	}
	job.Payload = slices.Clone(job.Payload)
	r.tx.st.notifications[job.ID] = job
	return nil
}

func (r *notificationRepo) ClaimDue(_ context.Context, now time.Time, limit int) ([]shared.NotificationJob, error) {
	if err := r.tx.writable(); err != nil {
		return nil, err
	}
	out := []shared.NotificationJob{}
	for _, job := range r.tx.st.notifications {
		if job.Status == shared.JobStatusQueued && !job.RunAt.After(now) {
			out = append(out, job)
		}
	}
	slices.SortFunc(out, func(a, b shared.NotificationJob) int {
		if c := a.RunAt.Compare(b.RunAt); c != 0 {
			return c
		}
		if lessID(a.ID, b.ID) {
			return -1
		}
		return 1
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *notificationRepo) Lease(_ context.Context, ids []uuid.UUID, until time.Time) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	for _, id := range ids {
		if job, ok := r.tx.st.notifications[id]; ok && job.Status == shared.JobStatusQueued {
			job.RunAt = until
			r.tx.st.notifications[id] = job
		}
	}
	return nil
}

func (r *notificationRepo) update(id uuid.UUID, msg string, mutate func(job *shared.NotificationJob)) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	job, ok := r.tx.st.notifications[id]
	if !ok {
		return notFound(msg)
	}
	mutate(&job)
	r.tx.st.notifications[id] = job
	return nil
}

func (r *notificationRepo) MarkSent(_ context.Context, id uuid.UUID, now time.Time) error {
	return r.update(id, "failed to mark notification sent", func(job *shared.NotificationJob) {
		job.Status = shared.JobStatusSent
		job.Attempts++
		job.LastError = nil
		job.UpdatedAt = now
	})
}

func (r *notificationRepo) MarkRetry(_ context.Context, id uuid.UUID, lastError string, nextRunAt time.Time) error {
	return r.update(id, "failed to reschedule notification", func(job *shared.NotificationJob) {
		job.Attempts++
		job.LastError = &lastError
		job.RunAt = nextRunAt
		job.UpdatedAt = nextRunAt
	})
}

func (r *notificationRepo) MarkFailed(_ context.Context, id uuid.UUID, lastError string, now time.Time) error {
	return r.update(id, "failed to mark notification failed", func(job *shared.NotificationJob) {
		job.Status = shared.JobStatusFailed
		job.Attempts++
		job.LastError = &lastError
		job.UpdatedAt = now
	})
}
