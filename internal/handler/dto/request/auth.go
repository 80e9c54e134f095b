package request

import (
	"hostel-backoffice/internal/pkg/errs"
	"hostel-backoffice/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

type RegisterRequest struct {
	Username  string  `json:"username" binding:"required,max=150"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	FirstName string  `json:"first_name" binding:"max=100"`
	LastName  string  `json:"last_name" binding:"max=100"`
	Phone     *string `json:"phone,omitempty" binding:"omitempty,max=20"`
}

func (r *RegisterRequest) ToInput() (commands.RegisterInput, error) {
	var in commands.RegisterInput
	if err := copier.Copy(&in, r); err != nil {
		return commands.RegisterInput{}, errs.Wrap(err, "failed to map register request")
	}
	return in, nil
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (r *LoginRequest) ToInput() commands.LoginInput {
	return commands.LoginInput{Email: r.Email, Password: r.Password}
}
