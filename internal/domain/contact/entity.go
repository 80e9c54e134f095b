package contact

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"hostel-backoffice/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidName  = errors.New("contact name must be 1-100 characters")
	ErrEmptyMessage = errors.New("contact message cannot be empty")
)

const MaxNameLength = 100

// Message is append-only: it can be submitted and listed, never edited.
type Message struct {
	id          uuid.UUID
	name        string
	email       user.Email
	body        string
	submittedAt time.Time
}

func NewMessage(name string, email user.Email, body string, now time.Time) (*Message, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return nil, ErrInvalidName
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}
	return &Message{
		id:          uuid.New(),
		name:        name,
		email:       email,
		body:        body,
		submittedAt: now,
	}, nil
}

func ReconstructMessage(id uuid.UUID, name string, email user.Email, body string, submittedAt time.Time) *Message {
	return &Message{id: id, name: name, email: email, body: body, submittedAt: submittedAt}
}

func (m *Message) ID() uuid.UUID          { return m.id }
func (m *Message) Name() string           { return m.name }
func (m *Message) Email() user.Email      { return m.email }
func (m *Message) Body() string           { return m.body }
func (m *Message) SubmittedAt() time.Time { return m.submittedAt }
