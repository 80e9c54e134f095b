package resource

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrEmptyResourceName   = errors.New("resource name cannot be empty")
	ErrResourceNameTooLong = errors.New("resource name is too long (max 100 characters)")
	ErrInvalidKind         = errors.New("invalid resource kind")
	ErrInvalidUnit         = errors.New("resource unit must be 1-50 characters")
)

const (
	MaxResourceNameLength = 100
	MaxUnitLength         = 50
)

type Kind string

const (
	KindConsumable Kind = "consumable"
	KindReusable   Kind = "reusable"
)

func (k Kind) IsValid() bool {
	return k == KindConsumable || k == KindReusable
}

func NewKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

type Resource struct {
	id            uuid.UUID
	name          string
	kind          Kind
	unit          string
	totalQuantity int64
	createdAt     time.Time
	updatedAt     time.Time
}

type Details struct {
	Name string
	Kind Kind
	Unit string
}

// NewResource starts at zero; an opening quantity is booked through stock.Ledger.
func NewResource(details Details, now time.Time) (*Resource, error) {
	r := &Resource{id: uuid.New(), createdAt: now}
	if err := r.UpdateDetails(details, now); err != nil {
		return nil, err
	}
	return r, nil
}

func ReconstructResource(id uuid.UUID, details Details, totalQuantity int64, createdAt, updatedAt time.Time) *Resource {
	return &Resource{
		id:            id,
		name:          details.Name,
		kind:          details.Kind,
		unit:          details.Unit,
		totalQuantity: totalQuantity,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// UpdateDetails never touches the total.
func (r *Resource) UpdateDetails(details Details, now time.Time) error {
	name := strings.TrimSpace(details.Name)
	if name == "" {
		return ErrEmptyResourceName
	}
	if utf8.RuneCountInString(name) > MaxResourceNameLength {
		return ErrResourceNameTooLong
	}
	if !details.Kind.IsValid() {
		return ErrInvalidKind
	}
	unit := strings.TrimSpace(details.Unit)
	if unit == "" || utf8.RuneCountInString(unit) > MaxUnitLength {
		return ErrInvalidUnit
	}

	r.name = name
	r.kind = details.Kind
	r.unit = unit
	r.updatedAt = now
	return nil
}

// AdjustTotal is reserved for stock.Ledger; every other path must go through a movement.
func (r *Resource) AdjustTotal(delta int64, now time.Time) (before, after int64) {
	before = r.totalQuantity
	r.totalQuantity += delta
	r.updatedAt = now
	return before, r.totalQuantity
}

func (r *Resource) ID() uuid.UUID        { return r.id }
func (r *Resource) Name() string         { return r.name }
func (r *Resource) Kind() Kind           { return r.kind }
func (r *Resource) Unit() string         { return r.unit }
func (r *Resource) TotalQuantity() int64 { return r.totalQuantity }
func (r *Resource) CreatedAt() time.Time { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time { return r.updatedAt }

func (r *Resource) Details() Details {
	return Details{Name: r.name, Kind: r.kind, Unit: r.unit}
}
