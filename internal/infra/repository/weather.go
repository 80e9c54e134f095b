package repository

import (
	"context"
	"strconv"
	"strings"

	"hostel-backoffice/internal/domain/weather"
	"hostel-backoffice/internal/pkg/pgconv"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const weatherColumns = `id, date, temperature, rain_probability, comment`

type WeatherRepository struct {
	db DBTX
}

func NewWeatherRepository(db DBTX) *WeatherRepository {
	return &WeatherRepository{db: db}
}

func (r *WeatherRepository) Create(ctx context.Context, w *weather.Record) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO weather_records (id, date, temperature, rain_probability, comment)
		VALUES ($1, $2, $3, $4, $5)`,
		w.ID(), pgconv.DateToPgtype(w.Date()), pgconv.DecimalToNumeric(w.Temperature().Round(weather.TemperatureScale)), w.RainProbability(), w.Comment(),
	)
	if err != nil {
		return wrap("failed to create weather record", err)
	}
	return nil
}

func (r *WeatherRepository) Update(ctx context.Context, w *weather.Record) error {
	return execAffectingOne(ctx, r.db, "failed to update weather record", `
		UPDATE weather_records
		SET date = $2, temperature = $3, rain_probability = $4, comment = $5
		WHERE id = $1`,
		w.ID(), pgconv.DateToPgtype(w.Date()), pgconv.DecimalToNumeric(w.Temperature().Round(weather.TemperatureScale)), w.RainProbability(), w.Comment(),
	)
}

func (r *WeatherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return execAffectingOne(ctx, r.db, "failed to delete weather record", `DELETE FROM weather_records WHERE id = $1`, id)
}

func (r *WeatherRepository) FindByID(ctx context.Context, id uuid.UUID) (*weather.Record, error) {
	w, err := scanWeather(r.db.QueryRow(ctx, `SELECT `+weatherColumns+` FROM weather_records WHERE id = $1`, id))
	if err != nil {
		return nil, wrap("failed to find weather record by ID", err)
	}
	return w, nil
}

func (r *WeatherRepository) List(ctx context.Context, filter shared.WeatherFilter) ([]*weather.Record, error) {
	page := filter.Page.Normalize()

	var (
		conds []string
		args  []any
	)
	if filter.From != nil {
		args = append(args, pgconv.DateToPgtype(*filter.From))
		conds = append(conds, "date >= $"+strconv.Itoa(len(args)))
	}
	if filter.To != nil {
		args = append(args, pgconv.DateToPgtype(*filter.To))
		conds = append(conds, "date <= $"+strconv.Itoa(len(args)))
	}
	query := `SELECT ` + weatherColumns + ` FROM weather_records`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, page.Limit, page.Offset)
	query += " ORDER BY date DESC LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("failed to list weather records", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*weather.Record, error) {
		return scanWeather(row)
	})
	if err != nil {
		return nil, wrap("failed to scan weather records", err)
	}
	return list, nil
}

func scanWeather(row rowScanner) (*weather.Record, error) {
	var (
		id      uuid.UUID
		date    pgtype.Date
		numeric pgtype.Numeric
		rain    int
		comment *string
	)
	if err := row.Scan(&id, &date, &numeric, &rain, &comment); err != nil {
		return nil, err
	}
	temp, err := pgconv.NumericToDecimal(numeric)
	if err != nil {
		return nil, err
	}
	return weather.ReconstructRecord(id, pgconv.DateFromPgtype(date), temp, rain, comment), nil
}
