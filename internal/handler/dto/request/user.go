package request

import (
	"hostel-backoffice/internal/usecase/commands"
)

// CreateUserRequest is the administrator's form; unlike registration the role is explicit.
type CreateUserRequest struct {
	RegisterRequest
	Role string `json:"role" binding:"required,oneof=client administrator"`
}

func (r *CreateUserRequest) ToInput() (commands.CreateUserInput, error) {
	reg, err := r.RegisterRequest.ToInput()
	if err != nil {
		return commands.CreateUserInput{}, err
	}
	return commands.CreateUserInput{RegisterInput: reg, Role: r.Role}, nil
}
