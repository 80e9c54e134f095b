package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the body of every error reply: {"error":{"message":...},"detail":...}.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func NewResponse(status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	return resp
}

// Internal is the reply for anything the client cannot act on; the cause stays in the logs.
func Internal() Response {
	return NewResponse(http.StatusInternalServerError, "Internal server error", nil)
}

// AbortWithError records err on the context for the logging middleware and replies with msg.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := NewResponse(status, msg, detail)
	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort is for rejections that have no underlying error, such as a missing token.
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, NewResponse(status, msg, nil))
}
