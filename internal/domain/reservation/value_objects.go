package reservation

import (
	"time"
)

const DateLayout = "2006-01-02"

// DateRange is a closed interval of calendar days: both endpoints belong to the stay.
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{start: truncateToDate(start), end: truncateToDate(end)}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, ErrInvalidRange
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, ErrInvalidRange
	}
	return NewDateRange(s, e)
}

func (r DateRange) Validate() error {
	if r.start.IsZero() || r.end.IsZero() {
		return ErrInvalidRange
	}
	if !r.start.Before(r.end) {
		return ErrInvalidRange
	}
	return nil
}

// Overlaps treats touching endpoints as a conflict: a stay ending on day D blocks one starting on D.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.start.After(other.end) && !other.start.After(r.end)
}

func (r DateRange) Start() time.Time { return r.start }
func (r DateRange) End() time.Time   { return r.end }

func (r DateRange) Nights() int {
	return int(r.end.Sub(r.start).Hours() / 24)
}

func (r DateRange) String() string {
	return r.start.Format(DateLayout) + "/" + r.end.Format(DateLayout)
}

func truncateToDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
