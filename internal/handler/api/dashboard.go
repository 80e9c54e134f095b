package api

import (
	"net/http"

	"hostel-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	q queries.DashboardQueries
}

func NewDashboardHandler(q queries.DashboardQueries) *DashboardHandler {
	return &DashboardHandler{q: q}
}

// @Summary Dashboard counts
// @Description Number of rooms, reservations and resources; may be a few seconds stale
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.DashboardView
// @Router /api/dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	view, err := h.q.Get(c.Request.Context())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
