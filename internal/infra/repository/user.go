package repository

import (
	"context"
	"time"

	"hostel-backoffice/internal/domain/user"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, first_name, last_name, email, phone, password_hash, role, created_at`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	p := u.Profile()
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID(), p.Username, p.FirstName, p.LastName, u.Email().Value(), p.Phone, u.PasswordHash(), u.Role().String(), u.CreatedAt(),
	)
	if err != nil {
		return wrap("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return execAffectingOne(ctx, r.db, "failed to delete user", `DELETE FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, wrap("failed to find user by ID", err)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = lower($1)`, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, wrap("failed to find user by email", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context, page shared.Page) ([]*user.User, error) {
	page = page.Normalize()
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+` FROM users
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`, page.Limit, page.Offset)
	if err != nil {
		return nil, wrap("failed to list users", err)
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*user.User, error) {
		return scanUser(row)
	})
	if err != nil {
		return nil, wrap("failed to scan users", err)
	}
	return users, nil
}

func scanUser(row rowScanner) (*user.User, error) {
	var (
		id                           uuid.UUID
		p                            user.Profile
		email, passwordHash, roleRaw string
		createdAt                    time.Time
	)
	if err := row.Scan(&id, &p.Username, &p.FirstName, &p.LastName, &email, &p.Phone, &passwordHash, &roleRaw, &createdAt); err != nil {
		return nil, err
	}
	return user.ReconstructUser(id, p, user.ReconstructEmail(email), passwordHash, user.Role(roleRaw), createdAt), nil
}
