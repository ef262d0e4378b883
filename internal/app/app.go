package app

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pitchcraft/core/internal/config"
	"github.com/pitchcraft/core/internal/database"
	"github.com/pitchcraft/core/internal/middleware"
	"github.com/pitchcraft/core/internal/pkg/generator"
	jwtpkg "github.com/pitchcraft/core/internal/pkg/jwt"
	pkgredis "github.com/pitchcraft/core/internal/pkg/redis"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg         *config.AppConfig
	router      *gin.Engine
	mongoClient *mongo.Client
	db          *mongo.Database
	rc          *pkgredis.Client
	gen         *generator.Client
	logger      *zap.Logger
}

// New initializes the application: config → MongoDB → Redis → generation
// client → routes. A missing or invalid webhook URL fails startup; there is
// no point serving a generator that cannot generate.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if secret := strings.TrimSpace(cfg.Auth.JWTSecret); secret != "" {
		jwtpkg.SetSecret(secret)
	} else {
		logger.Warn("jwt_secret is empty, using built-in default secret")
	}

	mongoClient, db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	gen, err := generator.New(cfg.Generator.WebhookURL, cfg.GeneratorTimeout())
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(buildCORSConfig(cfg)))

	app := &App{
		cfg:         cfg,
		router:      router,
		mongoClient: mongoClient,
		db:          db,
		rc:          rc,
		gen:         gen,
		logger:      logger,
	}
	app.registerRoutes()

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown releases backend connections.
func (a *App) Shutdown() {
	if err := database.Disconnect(a.mongoClient); err != nil {
		a.logger.Warn("mongo disconnect failed", zap.Error(err))
	}
	if err := a.rc.Raw().Close(); err != nil {
		a.logger.Warn("redis close failed", zap.Error(err))
	}
}
