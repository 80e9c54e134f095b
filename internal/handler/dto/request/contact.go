package request

import (
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

func (r *ContactRequest) ToInput() (commands.ContactInput, error) {
	var in commands.ContactInput
	if err := copier.Copy(&in, r); err != nil {
		return commands.ContactInput{}, errs.Wrap(err, "failed to map contact request")
	}
	return in, nil
}
