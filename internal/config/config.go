package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort         = 3000
	defaultEnv          = "development"
	defaultMongoURI     = "mongodb://localhost:27017"
	defaultMongoDB      = "pitchcraft"
	defaultRedisURL     = "redis://localhost:6379/0"
	defaultSessionHours = 24 * 7
	defaultGenTimeout   = 60
	defaultLogDir       = "logs"
)

// Load reads the YAML config file, applies defaults and environment
// overrides, and normalizes the result. A missing file is not an error;
// everything can come from the environment.
func Load(path string) (*AppConfig, error) {
	cfg := defaultAppConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// fall through to env-only configuration
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	normalize(&cfg)
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port:     defaultPort,
		Env:      defaultEnv,
		Mongo:    MongoConfig{URI: defaultMongoURI, Database: defaultMongoDB},
		RedisURL: defaultRedisURL,
		Generator: GeneratorConfig{
			TimeoutSeconds: defaultGenTimeout,
		},
		Auth: AuthConfig{
			SessionHours: defaultSessionHours,
		},
		LogDir: defaultLogDir,
	}
}

// applyEnvOverrides lets deployment environments win over the file. The
// MONGODB_URI and N8N_WEBHOOK_URL names are kept for compatibility with
// existing deployments.
func applyEnvOverrides(cfg *AppConfig) {
	if v := envString("PITCH_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Port = port
		}
	}
	if v := envString("PITCH_ENV", "NODE_ENV"); v != "" {
		cfg.Env = v
	}
	if v := envString("PITCH_MONGO_URI", "MONGODB_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	if v := envString("PITCH_MONGO_DB"); v != "" {
		cfg.Mongo.Database = v
	}
	if v := envString("PITCH_REDIS_URL", "REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := envString("PITCH_WEBHOOK_URL", "N8N_WEBHOOK_URL"); v != "" {
		cfg.Generator.WebhookURL = v
	}
	if v := envString("PITCH_JWT_SECRET", "JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := envString("PITCH_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
}

func envString(names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

func normalize(cfg *AppConfig) {
	cfg.Env = normalizeEnv(cfg.Env)
	if cfg.Port <= 0 {
		cfg.Port = defaultPort
	}
	if strings.TrimSpace(cfg.Mongo.URI) == "" {
		cfg.Mongo.URI = defaultMongoURI
	}
	if strings.TrimSpace(cfg.Mongo.Database) == "" {
		cfg.Mongo.Database = defaultMongoDB
	}
	if strings.TrimSpace(cfg.RedisURL) == "" {
		cfg.RedisURL = defaultRedisURL
	}
	if cfg.Generator.TimeoutSeconds <= 0 {
		cfg.Generator.TimeoutSeconds = defaultGenTimeout
	}
	if cfg.Auth.SessionHours <= 0 {
		cfg.Auth.SessionHours = defaultSessionHours
	}
	if strings.TrimSpace(cfg.LogDir) == "" {
		cfg.LogDir = defaultLogDir
	}
	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)
}

func normalizeEnv(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod":
		return "production"
	default:
		return "development"
	}
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return c.Env != "production"
}

// GeneratorTimeout returns the generation call timeout as a duration.
func (c *AppConfig) GeneratorTimeout() time.Duration {
	return time.Duration(c.Generator.TimeoutSeconds) * time.Second
}

// SessionTTL returns the auth token lifetime.
func (c *AppConfig) SessionTTL() time.Duration {
	return time.Duration(c.Auth.SessionHours) * time.Hour
}
