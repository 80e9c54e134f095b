package api

import (
	"net/http"

	reqdto "hostel-backoffice/internal/handler/dto/request"
	resdto "hostel-backoffice/internal/handler/dto/response"
	"hostel-backoffice/internal/usecase/commands"
	"hostel-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	cmds commands.ContactCommands
	q    queries.ContactQueries
}

func NewContactHandler(cmds commands.ContactCommands, q queries.ContactQueries) *ContactHandler {
	return &ContactHandler{cmds: cmds, q: q}
}

// @Summary Submit contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param request body reqdto.ContactRequest true "Message"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Router /api/contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req reqdto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}
	in, err := req.ToInput()
	if err != nil {
		abortBadRequest(c, err, "Invalid request")
		return
	}
	id, err := h.cmds.Submit(c.Request.Context(), in)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary List contact messages
// @Description Newest first
// @Tags contact
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} resdto.ListResponse[queries.ContactView]
// @Router /api/contact [get]
func (h *ContactHandler) List(c *gin.Context) {
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
