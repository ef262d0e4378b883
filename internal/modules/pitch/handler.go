package pitch

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pitchcraft/core/internal/middleware"
	"github.com/pitchcraft/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, idemMW gin.HandlerFunc) {
	g := rg.Group("/pitches")

	// The list endpoint is keyed by the userId query parameter rather than
	// the session, matching the dashboard's fetch contract.
	g.GET("", h.list)

	g.POST("", authMW, idemMW, h.submit)
	g.GET("/:id", authMW, h.get)
	g.DELETE("/:id", authMW, h.delete)

	// Route name kept from the original frontend contract.
	rg.POST("/generate-pitch", authMW, idemMW, h.submit)
}

// POST /pitches — generate a pitch and persist it; with pitchId set, the
// owned record is regenerated in place.
func (h *Handler) submit(c *gin.Context) {
	var dto SubmitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	ownerID := middleware.CurrentUserID(c)
	result, err := h.svc.Submit(c.Request.Context(), ownerID, dto.toRequest(), dto.PitchID)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.BadRequest(c, err.Error())
		case errors.Is(err, ErrNotFound):
			response.NotFoundMsg(c, "pitch not found")
		case errors.Is(err, ErrGeneration):
			response.InternalError(c, "failed to generate pitch, please try again")
		default:
			response.InternalError(c, "failed to save pitch")
		}
		return
	}
	response.OK(c, result)
}

// GET /pitches?userId=…
func (h *Handler) list(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		response.BadRequest(c, "userId is required")
		return
	}

	items, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, "failed to fetch pitches")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GET /pitches/:id
func (h *Handler) get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "pitch not found")
			return
		}
		response.InternalError(c, "failed to fetch pitch")
		return
	}
	response.OK(c, rec)
}

// DELETE /pitches/:id
func (h *Handler) delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "pitch not found")
			return
		}
		response.InternalError(c, "failed to delete pitch")
		return
	}
	response.OK(c, gin.H{"message": "pitch deleted successfully"})
}
