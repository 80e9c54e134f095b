package request

import (
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

type RoomRequest struct {
	Number   string `json:"number" binding:"required,max=10"`
	Type     string `json:"type" binding:"required,oneof=single double suite"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
	// Price is a decimal string such as "45.00" so no precision is lost in JSON.
	Price  string `json:"price" binding:"required"`
	Status string `json:"status" binding:"omitempty,oneof=available occupied maintenance"`
}

func (r *RoomRequest) ToInput() (commands.RoomInput, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return commands.RoomInput{}, errs.Wrap(err, "invalid price")
	}
	return commands.RoomInput{
		Number:   r.Number,
		Type:     r.Type,
		Capacity: r.Capacity,
		Price:    price,
		Status:   r.Status,
	}, nil
}
