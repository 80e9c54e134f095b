package api

import (
	"net/http"

	reqdto "hostel-backoffice/internal/handler/dto/request"
	resdto "hostel-backoffice/internal/handler/dto/response"
	"hostel-backoffice/internal/usecase/commands"
	"hostel-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	cmds commands.RoomCommands
	q    queries.RoomQueries
}

func NewRoomHandler(cmds commands.RoomCommands, q queries.RoomQueries) *RoomHandler {
	return &RoomHandler{cmds: cmds, q: q}
}

// @Summary List rooms
// @Tags rooms
// @Security BearerAuth
// @Produce json
// @Param status query string false "available, occupied or maintenance"
// @Param type query string false "single, double or suite"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} resdto.ListResponse[queries.RoomView]
// @Router /api/rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	var q reqdto.RoomListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBadRequest(c, err, "Invalid query")
		return
	}
	filter := q.ToFilter()
	views, err := h.q.List(c.Request.Context(), filter)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewListResponse(views, filter.Page.Limit, filter.Page.Offset))
}

// @Summary Get room
// @Tags rooms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} queries.RoomView
// @Failure 404 {object} httperr.Response
// @Router /api/rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Create room
// @Tags rooms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.RoomRequest true "Room"
// @Success 201 {object} queries.RoomView
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req reqdto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}
	in, err := req.ToInput()
	if err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}
	id, err := h.cmds.Create(c.Request.Context(), in)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Header("Location", "/api/rooms/"+id.String())
	c.JSON(http.StatusCreated, view)
}

// @Summary Update room
// @Tags rooms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body reqdto.RoomRequest true "Room"
// @Success 200 {object} queries.RoomView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/rooms/{id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}
	in, err := req.ToInput()
	if err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}
	if err := h.cmds.Update(c.Request.Context(), id, in); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Delete room
// @Description Deletes the room and every reservation for it
// @Tags rooms
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /api/rooms/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
