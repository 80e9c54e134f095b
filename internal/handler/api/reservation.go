package api

import (
	"net/http"

	reqdto "hostel-backoffice/internal/handler/dto/request"
	resdto "hostel-backoffice/internal/handler/dto/response"
	"hostel-backoffice/internal/usecase/commands"
	"hostel-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Books a room for a date range. Clients book for themselves; administrators may pass user_id.
// @Tags reservations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation"
// @Success 201 {object} queries.ReservationView
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response "Overlaps an active reservation; detail.room_number names the room"
// @Router /api/reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}
	in, err := req.ToInput()
	if err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}

	id, err := h.cmds.Create(c.Request.Context(), actor, in)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	h.respondWithView(c, http.StatusCreated, id)
}

// @Summary List reservations
// @Description Administrators see all reservations; clients only their own
// @Tags reservations
// @Security BearerAuth
// @Produce json
// @Param user_id query string false "Filter by user (administrators only)"
// @Param room_id query string false "Filter by room"
// @Param status query string false "pending, confirmed or cancelled"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} resdto.ListResponse[queries.ReservationView]
// @Router /api/reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var q reqdto.ReservationListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBadRequest(c, err, "Invalid query")
		return
	}
	filter := q.ToFilter()
	result, err := h.q.List(c.Request.Context(), actor, filter)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewListResponse(result.Items, filter.Page.Limit, filter.Page.Offset).WithTotal(result.Total))
}

// @Summary Get reservation
// @Tags reservations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} queries.ReservationView
// @Failure 404 {object} httperr.Response
// @Router /api/reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.respondWithView(c, http.StatusOK, id)
}

// @Summary Update reservation
// @Description Changes the dates and optionally the room; the overlap check runs again
// @Tags reservations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Reservation"
// @Success 200 {object} queries.ReservationView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/reservations/{id} [put]
func (h *ReservationHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}
	in, err := req.ToInput()
	if err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}
	if err := h.cmds.Update(c.Request.Context(), actor, id, in); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	h.respondWithView(c, http.StatusOK, id)
}

// @Summary Change reservation status
// @Description Owners may cancel; other transitions need an administrator
// @Tags reservations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.ChangeReservationStatusRequest true "Status"
// @Success 200 {object} queries.ReservationView
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/reservations/{id}/status [patch]
func (h *ReservationHandler) ChangeStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.ChangeReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}
	if err := h.cmds.ChangeStatus(c.Request.Context(), actor, id, req.Status); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	h.respondWithView(c, http.StatusOK, id)
}

// @Summary Delete reservation
// @Tags reservations
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /api/reservations/{id} [delete]
func (h *ReservationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), actor, id); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReservationHandler) respondWithView(c *gin.Context, status int, id uuid.UUID) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	view, err := h.q.Get(c.Request.Context(), actor, id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	if status == http.StatusCreated {
		c.Header("Location", "/api/reservations/"+id.String())
	}
	c.JSON(status, view)
}
