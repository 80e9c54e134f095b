package api

import (
	"net/http"

	reqdto "hostel-backoffice/internal/handler/dto/request"
	resdto "hostel-backoffice/internal/handler/dto/response"
	"hostel-backoffice/internal/usecase/commands"
	"hostel-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ResourceHandler struct {
	cmds commands.ResourceCommands
	q    queries.ResourceQueries
}

func NewResourceHandler(cmds commands.ResourceCommands, q queries.ResourceQueries) *ResourceHandler {
	return &ResourceHandler{cmds: cmds, q: q}
}

// @Summary List resources
// @Tags resources
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} resdto.ListResponse[queries.ResourceView]
// @Router /api/resources [get]
func (h *ResourceHandler) List(c *gin.Context) {
	var q reqdto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBadRequest(c, err, "Invalid query")
		return
	}
	page := q.ToPage()
	views, err := h.q.List(c.Request.Context(), page)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewListResponse(views, page.Limit, page.Offset))
}

// @Summary Get resource
// @Tags resources
// @Security BearerAuth
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} queries.ResourceView
// @Failure 404 {object} httperr.Response
// @Router /api/resources/{id} [get]
func (h *ResourceHandler) Get(c *gin.Context) {
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

// @Summary Create resource
// @Description A non-zero opening_quantity is booked as the first movement
// @Tags resources
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateResourceRequest true "Resource"
// @Success 201 {object} queries.ResourceView
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/resources [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	var req reqdto.CreateResourceRequest
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
	c.Header("Location", "/api/resources/"+id.String())
	c.JSON(http.StatusCreated, view)
}

// @Summary Update resource details
// @Description Changes name, kind and unit. The quantity only changes through movements.
// @Tags resources
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Resource ID"
// @Param request body reqdto.ResourceRequest true "Resource"
// @Success 200 {object} queries.ResourceView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/resources/{id} [put]
func (h *ResourceHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}
	in, err := req.ToInput()
	if err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}
	if err := h.cmds.UpdateDetails(c.Request.Context(), id, in); err != nil {
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

// @Summary Delete resource
// @Description Deletes the resource and its movement history
// @Tags resources
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /api/resources/{id} [delete]
func (h *ResourceHandler) Delete(c *gin.Context) {
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

// @Summary Record stock movement
// @Description Positive quantities restock, negative ones consume
// @Tags resources
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Resource ID"
// @Param request body reqdto.RecordMovementRequest true "Movement"
// @Success 201 {object} resdto.RecordMovementResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response "Would take the total below zero"
// @Router /api/resources/{id}/movements [post]
func (h *ResourceHandler) RecordMovement(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}
	result, err := h.cmds.RecordMovement(c.Request.Context(), id, req.ToInput())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromRecordMovementResult(result))
}

// @Summary List stock movements
// @Description Newest first. Pass next_cursor back as cursor for the following page.
// @Tags resources
// @Security BearerAuth
// @Produce json
// @Param id path string true "Resource ID"
// @Param cursor query string false "Opaque cursor"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.MovementPageResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/resources/{id}/movements [get]
func (h *ResourceHandler) Movements(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var q reqdto.MovementListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBadRequest(c, err, "Invalid query")
		return
	}
	items, next, err := h.q.Movements(c.Request.Context(), id, q.After(), q.Limit)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewMovementPage(items, next))
}

// @Summary Reconcile resource total
// @Description Compares the stored total with the sum of its movements
// @Tags resources
// @Security BearerAuth
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} queries.ReconciliationView
// @Failure 404 {object} httperr.Response
// @Router /api/resources/{id}/reconciliation [get]
func (h *ResourceHandler) Reconcile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := h.q.Reconcile(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
