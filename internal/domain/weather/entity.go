package weather

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDate            = errors.New("weather date is required")
	ErrInvalidRainProbability = errors.New("rain probability must be between 0 and 100")
	ErrTemperatureOutOfRange  = errors.New("temperature must be within -999.99 and 999.99")
)

const TemperatureScale = 2

var temperatureLimit = decimal.NewFromInt(1000)

type Record struct {
	id              uuid.UUID
	date            time.Time
	temperature     decimal.Decimal
	rainProbability int
	comment         *string
}

type Observation struct {
	Date            time.Time
	Temperature     decimal.Decimal
	RainProbability int
	Comment         *string
}

// NewRecord keeps one record per calendar day; uniqueness is enforced by the store.
func NewRecord(obs Observation) (*Record, error) {
	r := &Record{id: uuid.New()}
	if err := r.Update(obs); err != nil {
		return nil, err
	}
	return r, nil
}

func ReconstructRecord(id uuid.UUID, date time.Time, temperature decimal.Decimal, rainProbability int, comment *string) *Record {
	return &Record{
		id:              id,
		date:            date,
		temperature:     temperature,
		rainProbability: rainProbability,
		comment:         comment,
	}
}

func (r *Record) Update(obs Observation) error {
	if obs.Date.IsZero() {
		return ErrInvalidDate
	}
	if obs.RainProbability < 0 || obs.RainProbability > 100 {
		return ErrInvalidRainProbability
	}
	temp := obs.Temperature.Round(TemperatureScale)
	if temp.Abs().GreaterThanOrEqual(temperatureLimit) {
		return ErrTemperatureOutOfRange
	}

	var comment *string
	if obs.Comment != nil {
		if c := strings.TrimSpace(*obs.Comment); c != "" {
			comment = &c
		}
	}

	r.date = time.Date(obs.Date.Year(), obs.Date.Month(), obs.Date.Day(), 0, 0, 0, 0, time.UTC)
	r.temperature = temp
	r.rainProbability = obs.RainProbability
	r.comment = comment
	return nil
}

func (r *Record) ID() uuid.UUID                { return r.id }
func (r *Record) Date() time.Time              { return r.date }
func (r *Record) Temperature() decimal.Decimal { return r.temperature }
func (r *Record) RainProbability() int         { return r.rainProbability }
func (r *Record) Comment() *string             { return r.comment }
