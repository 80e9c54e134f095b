package room

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidNumber   = errors.New("room number must be 1-10 characters")
	ErrInvalidType     = errors.New("invalid room type")
	ErrInvalidStatus   = errors.New("invalid room status")
	ErrInvalidCapacity = errors.New("room capacity must be greater than zero")
	ErrNegativePrice   = errors.New("room price cannot be negative")
)

const (
	MaxNumberLength = 10
	PriceScale      = 2
)

type Room struct {
	id       uuid.UUID
	number   string
	kind     Type
	capacity int
	price    decimal.Decimal
	status   Status
}

// Attributes is the editable part of a room; NewRoom and Update validate it the same way.
type Attributes struct {
	Number   string
	Type     Type
	Capacity int
	Price    decimal.Decimal
	Status   Status
}

func NewRoom(attrs Attributes) (*Room, error) {
	if attrs.Status == "" {
		attrs.Status = StatusAvailable
	}
	r := &Room{id: uuid.New()}
	if err := r.apply(attrs); err != nil {
		return nil, err
	}
	return r, nil
}

func ReconstructRoom(id uuid.UUID, number string, kind Type, capacity int, price decimal.Decimal, status Status) *Room {
	return &Room{
		id:       id,
		number:   number,
		kind:     kind,
		capacity: capacity,
		price:    price,
		status:   status,
	}
}

func (r *Room) Update(attrs Attributes) error {
	if attrs.Status == "" {
		attrs.Status = r.status
	}
	return r.apply(attrs)
}

func (r *Room) apply(attrs Attributes) error {
	number := strings.TrimSpace(attrs.Number)
	if number == "" || utf8.RuneCountInString(number) > MaxNumberLength {
		return ErrInvalidNumber
	}
	if !attrs.Type.IsValid() {
		return ErrInvalidType
	}
	if attrs.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if attrs.Price.IsNegative() {
		return ErrNegativePrice
	}
	if !attrs.Status.IsValid() {
		return ErrInvalidStatus
	}

	r.number = number
	r.kind = attrs.Type
	r.capacity = attrs.Capacity
	r.price = attrs.Price.Round(PriceScale)
	r.status = attrs.Status
	return nil
}

func (r *Room) ID() uuid.UUID          { return r.id }
func (r *Room) Number() string         { return r.number }
func (r *Room) Type() Type             { return r.kind }
func (r *Room) Capacity() int          { return r.capacity }
func (r *Room) Price() decimal.Decimal { return r.price }
func (r *Room) Status() Status         { return r.status }
