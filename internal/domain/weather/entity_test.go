//go:build unit

package weather_test

import (
	"testing"
	"time"

	"hostel-backoffice/internal/domain/weather"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func observation() weather.Observation {
	comment := "  sunny morning "
	return weather.Observation{
		Date:            time.Date(2024, 6, 3, 15, 30, 0, 0, time.FixedZone("CEST", 2*60*60)),
		Temperature:     decimal.RequireFromString("21.456"),
		RainProbability: 20,
		Comment:         &comment,
	}
}

func TestNewRecord(t *testing.T) {
	t.Run("normalizes date, temperature and comment", func(t *testing.T) {
		r, err := weather.NewRecord(observation())
		require.NoError(t, err)

		assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), r.Date())
		assert.Equal(t, "21.46", r.Temperature().StringFixed(weather.TemperatureScale))
		require.NotNil(t, r.Comment())
		assert.Equal(t, "sunny morning", *r.Comment())
	})

	cases := []struct {
		name   string
		mutate func(*weather.Observation)
		errIs  error
	}{
		{name: "rain 0 OK", mutate: func(o *weather.Observation) { o.RainProbability = 0 }},
		{name: "rain 100 OK", mutate: func(o *weather.Observation) { o.RainProbability = 100 }},
		{name: "below freezing OK", mutate: func(o *weather.Observation) { o.Temperature = decimal.RequireFromString("-12.5") }},
		{name: "no comment OK", mutate: func(o *weather.Observation) { o.Comment = nil }},
		{name: "rain -1 NG", mutate: func(o *weather.Observation) { o.RainProbability = -1 }, errIs: weather.ErrInvalidRainProbability},
		{name: "rain 101 NG", mutate: func(o *weather.Observation) { o.RainProbability = 101 }, errIs: weather.ErrInvalidRainProbability},
		{name: "missing date NG", mutate: func(o *weather.Observation) { o.Date = time.Time{} }, errIs: weather.ErrInvalidDate},
		{name: "temperature 1000 NG", mutate: func(o *weather.Observation) { o.Temperature = decimal.NewFromInt(1000) }, errIs: weather.ErrTemperatureOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			obs := observation()
			tc.mutate(&obs)
			r, err := weather.NewRecord(obs)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, r)
		})
	}

	t.Run("blank comment is dropped", func(t *testing.T) {
		obs := observation()
		blank := "   "
		obs.Comment = &blank
		r, err := weather.NewRecord(obs)
		require.NoError(t, err)
		assert.Nil(t, r.Comment())
	})
}

func TestRecordUpdateRejectsWithoutChange(t *testing.T) {
	r, err := weather.NewRecord(observation())
	require.NoError(t, err)

	obs := observation()
	obs.RainProbability = 150
	require.ErrorIs(t, r.Update(obs), weather.ErrInvalidRainProbability)
	assert.Equal(t, 20, r.RainProbability())
}
