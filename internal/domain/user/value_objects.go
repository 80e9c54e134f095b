package user

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidRole     = errors.New("invalid role")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters long")
	ErrInvalidUsername = errors.New("username must be 1-150 characters of letters, digits and @.+-_")
	ErrNameTooLong     = errors.New("first and last name must be at most 100 characters")
	ErrPhoneTooLong    = errors.New("phone must be at most 20 characters")
)

const (
	MaxUsernameLength = 150
	MaxNameLength     = 100
	MaxPhoneLength    = 20
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[\w.@+\-]+$`)
)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: strings.ToLower(s)}, nil
}

// ReconstructEmail trusts a value that was validated before it was stored.
func ReconstructEmail(s string) Email {
	return Email{value: s}
}

func (e Email) Value() string {
	return e.value
}

type Password struct {
	value string
}

func NewPassword(s string) (Password, error) {
	if len(s) < 8 {
		return Password{}, ErrPasswordTooWeak
	}
	return Password{value: s}, nil
}

func (p Password) Value() string {
	return p.value
}

type Credentials struct {
	email    Email
	password Password
}

func NewCredentials(emailStr, passwordStr string) (Credentials, error) {
	email, err := NewEmail(emailStr)
	if err != nil {
		return Credentials{}, err
	}

	password, err := NewPassword(passwordStr)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{
		email:    email,
		password: password,
	}, nil
}

func (c Credentials) Email() Email {
	return c.email
}

func (c Credentials) Password() Password {
	return c.password
}

// Profile holds the descriptive fields of a user; none of them take part in authorization.
type Profile struct {
	Username  string
	FirstName string
	LastName  string
	Phone     *string
}

func (p Profile) normalize() (Profile, error) {
	p.Username = strings.TrimSpace(p.Username)
	if p.Username == "" || utf8.RuneCountInString(p.Username) > MaxUsernameLength || !usernameRegex.MatchString(p.Username) {
		return Profile{}, ErrInvalidUsername
	}
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	if utf8.RuneCountInString(p.FirstName) > MaxNameLength || utf8.RuneCountInString(p.LastName) > MaxNameLength {
		return Profile{}, ErrNameTooLong
	}
	if p.Phone != nil {
		phone := strings.TrimSpace(*p.Phone)
		switch {
		case phone == "":
			p.Phone = nil
		case utf8.RuneCountInString(phone) > MaxPhoneLength:
			return Profile{}, ErrPhoneTooLong
		default:
			p.Phone = &phone
		}
	}
	return p, nil
}
