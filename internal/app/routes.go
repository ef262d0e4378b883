package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pitchcraft/core/internal/middleware"
	"github.com/pitchcraft/core/internal/modules/auth"
	"github.com/pitchcraft/core/internal/modules/health"
	"github.com/pitchcraft/core/internal/modules/pitch"
	"github.com/pitchcraft/core/internal/pkg/response"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes() {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "pitchcraft-core",
		"version": "1.0.0",
	}

	denylist := auth.NewDenylist(a.rc)
	authMW := middleware.Auth(denylist)

	api := r.Group(apiPrefix)

	// OptionalAuth runs first so the rate limiter can exempt
	// authenticated traffic.
	api.Use(middleware.OptionalAuth(denylist))
	api.Use(middleware.RateLimit(a.rc.Raw()))

	api.GET("", func(c *gin.Context) { c.JSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })

	health.RegisterRoutes(api, a.mongoClient, a.rc)

	// Auth
	authSvc := auth.NewService(auth.NewMongoUserStore(a.db), a.cfg.SessionTTL())
	auth.NewHandler(authSvc, denylist, a.logger).RegisterRoutes(api)

	// Pitches. The idempotence guard sits on the submit routes only; a
	// repeated delete must reach the handler and report not-found.
	pitchSvc := pitch.NewService(pitch.NewMongoStore(a.db), a.gen, a.logger)
	idemMW := middleware.Idempotence(a.rc.Raw())
	pitch.NewHandler(pitchSvc).RegisterRoutes(api, authMW, idemMW)
}
