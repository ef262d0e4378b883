package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	pkgredis "github.com/pitchcraft/core/internal/pkg/redis"
	"go.mongodb.org/mongo-driver/mongo"
)

const pingTimeout = 2 * time.Second

// RegisterRoutes exposes GET /health reporting dependency state.
func RegisterRoutes(rg *gin.RouterGroup, client *mongo.Client, rc *pkgredis.Client) {
	rg.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		mongoOK := client.Ping(ctx, nil) == nil
		redisOK := rc.Ping(ctx) == nil

		status := "ok"
		code := http.StatusOK
		if !mongoOK || !redisOK {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":   status,
			"database": mongoOK,
			"redis":    redisOK,
		})
	})
}
