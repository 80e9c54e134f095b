package repository

import (
	"context"
	"time"

	"hostel-backoffice/internal/domain/contact"
	"hostel-backoffice/internal/domain/user"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ContactRepository struct {
	db DBTX
}

func NewContactRepository(db DBTX) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, m *contact.Message) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO contact_messages (id, name, email, message, submitted_at)
		VALUES ($1, $2, $3, $4, $5)`,
		m.ID(), m.Name(), m.Email().Value(), m.Body(), m.SubmittedAt(),
	)
	if err != nil {
		return wrap("failed to create contact message", err)
	}
	return nil
}

func (r *ContactRepository) List(ctx context.Context, page shared.Page) ([]*contact.Message, error) {
	page = page.Normalize()
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, message, submitted_at FROM contact_messages
		ORDER BY submitted_at DESC, id
		LIMIT $1 OFFSET $2`, page.Limit, page.Offset)
	if err != nil {
		return nil, wrap("failed to list contact messages", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*contact.Message, error) {
		var (
			id                uuid.UUID
			name, email, body string
			submittedAt       time.Time
		)
		if err := row.Scan(&id, &name, &email, &body, &submittedAt); err != nil {
			return nil, err
		}
		return contact.ReconstructMessage(id, name, user.ReconstructEmail(email), body, submittedAt), nil
	})
	if err != nil {
		return nil, wrap("failed to scan contact messages", err)
	}
	return list, nil
}
