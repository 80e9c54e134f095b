package request

import (
	"time"

	"hostel-backoffice/internal/domain/reservation"
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

type WeatherRequest struct {
	Date            string  `json:"date" binding:"required,datetime=2006-01-02"`
	Temperature     string  `json:"temperature" binding:"required"`
	RainProbability *int    `json:"rain_probability" binding:"required,min=0,max=100"`
	Comment         *string `json:"comment,omitempty"`
}

func (r *WeatherRequest) ToInput() (commands.WeatherInput, error) {
	date, err := time.Parse(reservation.DateLayout, r.Date)
	if err != nil {
		return commands.WeatherInput{}, errs.Wrap(err, "invalid date")
	}
	temp, err := decimal.NewFromString(r.Temperature)
	if err != nil {
		return commands.WeatherInput{}, errs.Wrap(err, "invalid temperature")
	}
	return commands.WeatherInput{
		Date:            date,
		Temperature:     temp,
		RainProbability: *r.RainProbability,
		Comment:         r.Comment,
	}, nil
}
