package stock

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"hostel-backoffice/internal/domain/resource"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrQuantityOverflow  = errors.New("movement would overflow the resource total")
	ErrInvalidPolicy     = errors.New("invalid negative stock policy")
)

const OpeningBalanceReason = "opening balance"

type NegativeStockPolicy string

const (
	AllowNegative  NegativeStockPolicy = "allow"
	RejectNegative NegativeStockPolicy = "reject"
)

func NewNegativeStockPolicy(s string) (NegativeStockPolicy, error) {
	switch p := NegativeStockPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case AllowNegative, RejectNegative:
		return p, nil
	case "":
		return AllowNegative, nil
	default:
		return "", ErrInvalidPolicy
	}
}

// Ledger owns every change to Resource.TotalQuantity. Apply mutates the resource in memory and
// returns the movement; the caller persists both in the transaction that locked the resource row.
type Ledger struct {
	policy NegativeStockPolicy
}

func NewLedger(policy NegativeStockPolicy) *Ledger {
	if policy == "" {
		policy = AllowNegative
	}
	return &Ledger{policy: policy}
}

func (l *Ledger) Policy() NegativeStockPolicy {
	return l.policy
}

func (l *Ledger) Apply(res *resource.Resource, quantity int64, reason string, now time.Time) (*Movement, error) {
	current := res.TotalQuantity()
	mv, err := NewMovement(res.ID(), quantity, reason, current, now)
	if err != nil {
		return nil, err
	}

	if (quantity > 0 && current > math.MaxInt64-quantity) || (quantity < 0 && current < math.MinInt64-quantity) {
		return nil, ErrQuantityOverflow
	}
	if l.policy == RejectNegative && quantity < 0 && current+quantity < 0 {
		return nil, fmt.Errorf("%w: %s has %d %s, movement needs %d", ErrInsufficientStock, res.Name(), current, res.Unit(), -quantity)
	}

	res.AdjustTotal(quantity, now)
	return mv, nil
}

// Open books the initial quantity of a freshly created resource; zero means no movement.
func (l *Ledger) Open(res *resource.Resource, quantity int64, now time.Time) (*Movement, error) {
	if quantity == 0 {
		return nil, nil
	}
	return l.Apply(res, quantity, OpeningBalanceReason, now)
}

// Drift is total minus the sum of movements; anything but zero means a write bypassed the ledger.
func Drift(total int64, movements []*Movement) int64 {
	var sum int64
	for _, m := range movements {
		sum += m.Quantity()
	}
	return total - sum
}
