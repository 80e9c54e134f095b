package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	id           uuid.UUID
	profile      Profile
	email        Email
	passwordHash string
	role         Role
	createdAt    time.Time
}

// NewUser never picks a role on the caller's behalf; registration and admin creation pass it explicitly.
func NewUser(profile Profile, email Email, passwordHash string, role Role, now time.Time) (*User, error) {
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	p, err := profile.normalize()
	if err != nil {
		return nil, err
	}
	return &User{
		id:           uuid.New(),
		profile:      p,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    now,
	}, nil
}

func ReconstructUser(id uuid.UUID, profile Profile, email Email, passwordHash string, role Role, createdAt time.Time) *User {
	return &User{
		id:           id,
		profile:      profile,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Profile() Profile     { return u.profile }
func (u *User) Username() string     { return u.profile.Username }
func (u *User) Email() Email         { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
