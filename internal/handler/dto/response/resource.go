package response

import (
	"hostel-backoffice/internal/usecase/commands"
	"hostel-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
)

type MovementPageResponse struct {
	Items      []queries.MovementView `json:"items"`
	NextCursor *string                `json:"next_cursor"`
}

func NewMovementPage(items []queries.MovementView, next *queries.Cursor) MovementPageResponse {
	if items == nil {
		items = []queries.MovementView{}
	}
	resp := MovementPageResponse{Items: items}
	if next != nil {
		resp.NextCursor = &next.After
	}
	return resp
}

type RecordMovementResponse struct {
	MovementID    uuid.UUID `json:"movement_id"`
	TotalQuantity int64     `json:"total_quantity"`
}

func FromRecordMovementResult(r *commands.RecordMovementResult) RecordMovementResponse {
	return RecordMovementResponse{MovementID: r.MovementID, TotalQuantity: r.TotalQuantity}
}
