package api

import (
	"hostel-backoffice/internal/handler/middleware"
	"hostel-backoffice/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func requireActor(c *gin.Context) (shared.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthenticated(c)
	}
	return actor, ok
}
