package response

import (
	"hostel-backoffice/internal/usecase/commands"

	"github.com/google/uuid"
)

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
}

func FromLoginResult(r *commands.LoginResult) LoginResponse {
	return LoginResponse{
		AccessToken: r.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(r.ExpiresIn.Seconds()),
		UserID:      r.UserID,
		Role:        string(r.Role),
	}
}
