package api

import (
	"net/http"

	reqdto "hostel-backoffice/internal/handler/dto/request"
	resdto "hostel-backoffice/internal/handler/dto/response"
	"hostel-backoffice/internal/usecase/commands"
	"hostel-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type WeatherHandler struct {
	cmds commands.WeatherCommands
	q    queries.WeatherQueries
}

func NewWeatherHandler(cmds commands.WeatherCommands, q queries.WeatherQueries) *WeatherHandler {
	return &WeatherHandler{cmds: cmds, q: q}
}

// @Summary List weather records
// @Tags weather
// @Produce json
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day, YYYY-MM-DD"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} resdto.ListResponse[queries.WeatherView]
// @Failure 400 {object} httperr.Response
// @Router /api/weather [get]
func (h *WeatherHandler) List(c *gin.Context) {
	var q reqdto.WeatherListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBadRequest(c, err, "Invalid query")
		return
	}
	filter, err := q.ToFilter()
	if err != nil {
		abortBadRequest(c, err, "Invalid query")
		return
	}
	views, err := h.q.List(c.Request.Context(), filter)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewListResponse(views, filter.Page.Limit, filter.Page.Offset))
}

// @Summary Get weather record
// @Tags weather
// @Produce json
// @Param id path string true "Weather record ID"
// @Success 200 {object} queries.WeatherView
// @Failure 404 {object} httperr.Response
// @Router /api/weather/{id} [get]
func (h *WeatherHandler) Get(c *gin.Context) {
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

// @Summary Create weather record
// @Description One record per day
// @Tags weather
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.WeatherRequest true "Weather"
// @Success 201 {object} queries.WeatherView
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/weather [post]
func (h *WeatherHandler) Create(c *gin.Context) {
	var req reqdto.WeatherRequest
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
	c.Header("Location", "/api/weather/"+id.String())
	c.JSON(http.StatusCreated, view)
}

// @Summary Update weather record
// @Tags weather
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Weather record ID"
// @Param request body reqdto.WeatherRequest true "Weather"
// @Success 200 {object} queries.WeatherView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/weather/{id} [put]
func (h *WeatherHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.WeatherRequest
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

// @Summary Delete weather record
// @Tags weather
// @Security BearerAuth
// @Param id path string true "Weather record ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /api/weather/{id} [delete]
func (h *WeatherHandler) Delete(c *gin.Context) {
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
