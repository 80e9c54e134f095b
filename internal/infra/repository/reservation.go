package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"hostel-backoffice/internal/domain/reservation"
	"hostel-backoffice/internal/pkg/pgconv"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationColumns = `id, user_id, room_id, start_date, end_date, status, created_at, updated_at`

type ReservationRepository struct {
	db DBTX
}

func NewReservationRepository(db DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reservations (`+reservationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		res.ID(), res.UserID(), res.RoomID(), pgconv.DateToPgtype(res.Dates().Start()), pgconv.DateToPgtype(res.Dates().End()), string(res.Status()), res.CreatedAt(), res.UpdatedAt(),
	)
	if err != nil {
		return wrap("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	return execAffectingOne(ctx, r.db, "failed to update reservation", `
		UPDATE reservations
		SET room_id = $2, start_date = $3, end_date = $4, status = $5, updated_at = $6
		WHERE id = $1`,
		res.ID(), res.RoomID(), pgconv.DateToPgtype(res.Dates().Start()), pgconv.DateToPgtype(res.Dates().End()), string(res.Status()), res.UpdatedAt(),
	)
}

func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return execAffectingOne(ctx, r.db, "failed to delete reservation", `DELETE FROM reservations WHERE id = $1`, id)
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := scanReservation(r.db.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id))
	if err != nil {
		return nil, wrap("failed to find reservation by ID", err)
	}
	return res, nil
}

func (r *ReservationRepository) ListActiveByRoom(ctx context.Context, roomID uuid.UUID) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+reservationColumns+` FROM reservations
		WHERE room_id = $1 AND status IN ('pending', 'confirmed')
		ORDER BY start_date`, roomID)
	if err != nil {
		return nil, wrap("failed to list active reservations by room", err)
	}
	return collectReservations(rows)
}

func (r *ReservationRepository) List(ctx context.Context, filter shared.ReservationFilter) ([]*reservation.Reservation, error) {
	page := filter.Page.Normalize()
	where, args := reservationWhere(filter)
	args = append(args, page.Limit, page.Offset)

	query := `SELECT ` + reservationColumns + ` FROM reservations` + where +
		` ORDER BY start_date DESC, id LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("failed to list reservations", err)
	}
	return collectReservations(rows)
}

func (r *ReservationRepository) Count(ctx context.Context, filter shared.ReservationFilter) (int64, error) {
	where, args := reservationWhere(filter)
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM reservations`+where, args...).Scan(&n); err != nil {
		return 0, wrap("failed to count reservations", err)
	}
	return n, nil
}

func reservationWhere(filter shared.ReservationFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conds = append(conds, "user_id = $"+strconv.Itoa(len(args)))
	}
	if filter.RoomID != nil {
		args = append(args, *filter.RoomID)
		conds = append(conds, "room_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conds = append(conds, "status = $"+strconv.Itoa(len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func collectReservations(rows pgx.Rows) ([]*reservation.Reservation, error) {
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*reservation.Reservation, error) {
		return scanReservation(row)
	})
	if err != nil {
		return nil, wrap("failed to scan reservations", err)
	}
	return list, nil
}

func scanReservation(row rowScanner) (*reservation.Reservation, error) {
	var (
		id, userID, roomID   uuid.UUID
		start, end           pgtype.Date
		status               string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &userID, &roomID, &start, &end, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	dates, err := reservation.NewDateRange(pgconv.DateFromPgtype(start), pgconv.DateFromPgtype(end))
	if err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(id, userID, roomID, dates, reservation.Status(status), createdAt, updatedAt), nil
}
