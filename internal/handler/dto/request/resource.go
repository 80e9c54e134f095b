package request

import (
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

type ResourceRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Kind string `json:"kind" binding:"required,oneof=consumable reusable"`
	Unit string `json:"unit" binding:"required,max=50"`
}

func (r *ResourceRequest) ToInput() (commands.ResourceInput, error) {
	var in commands.ResourceInput
	if err := copier.Copy(&in, r); err != nil {
		return commands.ResourceInput{}, errs.Wrap(err, "failed to map resource request")
	}
	return in, nil
}

type CreateResourceRequest struct {
	ResourceRequest
	OpeningQuantity int64 `json:"opening_quantity"`
}

func (r *CreateResourceRequest) ToInput() (commands.CreateResourceInput, error) {
	details, err := r.ResourceRequest.ToInput()
	if err != nil {
		return commands.CreateResourceInput{}, err
	}
	return commands.CreateResourceInput{ResourceInput: details, OpeningQuantity: r.OpeningQuantity}, nil
}

// Quantity is signed: positive restocks, negative consumes. Zero is rejected by the ledger.
type RecordMovementRequest struct {
	Quantity int64  `json:"quantity" binding:"required"`
	Reason   string `json:"reason" binding:"required,max=255"`
}

func (r *RecordMovementRequest) ToInput() commands.RecordMovementInput {
	return commands.RecordMovementInput{Quantity: r.Quantity, Reason: r.Reason}
}
