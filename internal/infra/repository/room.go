package repository

import (
	"context"
	"strconv"
	"strings"

	"hostel-backoffice/internal/domain/room"
	"hostel-backoffice/internal/pkg/pgconv"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const roomColumns = `id, number, type, capacity, price, status`

type RoomRepository struct {
	db DBTX
}

func NewRoomRepository(db DBTX) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO rooms (id, number, type, capacity, price, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rm.ID(), rm.Number(), string(rm.Type()), rm.Capacity(), pgconv.DecimalToNumeric(rm.Price().Round(room.PriceScale)), string(rm.Status()),
	)
	if err != nil {
		return wrap("failed to create room", err)
	}
	return nil
}

func (r *RoomRepository) Update(ctx context.Context, rm *room.Room) error {
	return execAffectingOne(ctx, r.db, "failed to update room", `
		UPDATE rooms
		SET number = $2, type = $3, capacity = $4, price = $5, status = $6
		WHERE id = $1`,
		rm.ID(), rm.Number(), string(rm.Type()), rm.Capacity(), pgconv.DecimalToNumeric(rm.Price().Round(room.PriceScale)), string(rm.Status()),
	)
}

func (r *RoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return execAffectingOne(ctx, r.db, "failed to delete room", `DELETE FROM rooms WHERE id = $1`, id)
}

func (r *RoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	rm, err := scanRoom(r.db.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id))
	if err != nil {
		return nil, wrap("failed to find room by ID", err)
	}
	return rm, nil
}

// Concurrent reservation writers for the same room queue here until the holder commits.
func (r *RoomRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	rm, err := scanRoom(r.db.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, wrap("failed to lock room", err)
	}
	return rm, nil
}

func (r *RoomRepository) List(ctx context.Context, filter shared.RoomFilter) ([]*room.Room, error) {
	page := filter.Page.Normalize()

	var (
		conds []string
		args  []any
	)
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conds = append(conds, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		conds = append(conds, "type = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + roomColumns + ` FROM rooms`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, page.Limit, page.Offset)
	query += " ORDER BY number LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("failed to list rooms", err)
	}
	rooms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*room.Room, error) {
		return scanRoom(row)
	})
	if err != nil {
		return nil, wrap("failed to scan rooms", err)
	}
	return rooms, nil
}

func (r *RoomRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM rooms`).Scan(&n); err != nil {
		return 0, wrap("failed to count rooms", err)
	}
	return n, nil
}

func scanRoom(row rowScanner) (*room.Room, error) {
	var (
		id                          uuid.UUID
		number, kind, st string
		capacity         int
		numeric          pgtype.Numeric
	)
	if err := row.Scan(&id, &number, &kind, &capacity, &numeric, &st); err != nil {
		return nil, err
	}
	price, err := pgconv.NumericToDecimal(numeric)
	if err != nil {
		return nil, err
	}
	return room.ReconstructRoom(id, number, room.Type(kind), capacity, price, room.Status(st)), nil
}
