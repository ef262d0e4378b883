package auth

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pitchcraft/core/internal/middleware"
	jwtpkg "github.com/pitchcraft/core/internal/pkg/jwt"
	"github.com/pitchcraft/core/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	svc      *Service
	denylist *Denylist
	log      *zap.Logger
}

func NewHandler(svc *Service, denylist *Denylist, log *zap.Logger) *Handler {
	return &Handler{svc: svc, denylist: denylist, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	a := rg.Group("/auth")

	a.POST("/register", h.register)
	a.POST("/login", h.login)
	a.POST("/sign-out", h.signOut)
	a.GET("/session", middleware.OptionalAuth(h.denylist), h.session)
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Register(c.Request.Context(), &dto)
	if err != nil {
		if errors.Is(err, errUsernameTaken) {
			response.Conflict(c, "username already taken")
			return
		}
		h.log.Error("register failed", zap.Error(err))
		response.InternalError(c, "failed to create account")
		return
	}
	response.Created(c, gin.H{"id": u.ID.Hex(), "username": u.Username})
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, err := h.svc.Login(c.Request.Context(), dto.Username, dto.Password)
	if err != nil {
		if errors.Is(err, errAuthUserNotFound) || errors.Is(err, errAuthWrongPassword) {
			response.Forbidden(c, "invalid username or password")
			return
		}
		h.log.Error("login failed", zap.Error(err))
		response.InternalError(c, "failed to sign in")
		return
	}
	response.OK(c, loginResponse{Token: token})
}

// signOut revokes the presented token. A request without a valid token
// still reports success; there is nothing to revoke.
func (h *Handler) signOut(c *gin.Context) {
	raw := middleware.NormalizeToken(c.GetHeader("Authorization"))
	if raw != "" {
		if claims, err := jwtpkg.Parse(raw); err == nil && claims.ID != "" && claims.ExpiresAt != nil {
			ttl := time.Until(claims.ExpiresAt.Time)
			if err := h.denylist.Revoke(c.Request.Context(), claims.ID, ttl); err != nil {
				h.log.Warn("token revoke failed", zap.Error(err))
			}
		}
	}
	response.OK(c, gin.H{"success": true})
}

func (h *Handler) session(c *gin.Context) {
	if !middleware.IsAuthenticated(c) {
		response.OK(c, nil)
		return
	}
	u, err := h.svc.Profile(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, "failed to load session")
		return
	}
	if u == nil {
		response.OK(c, nil)
		return
	}
	response.OK(c, gin.H{
		"id":       u.ID.Hex(),
		"username": u.Username,
		"name":     u.Name,
	})
}
