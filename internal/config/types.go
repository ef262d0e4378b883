package config

// MongoConfig holds the document-store connection settings.
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// GeneratorConfig holds the outbound generation-webhook settings.
type GeneratorConfig struct {
	WebhookURL     string `yaml:"webhook_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// AuthConfig holds session token settings.
type AuthConfig struct {
	JWTSecret    string `yaml:"jwt_secret"`
	SessionHours int    `yaml:"session_hours"`
}

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int             `yaml:"port"`
	Env            string          `yaml:"env"` // "development" | "production"
	Mongo          MongoConfig     `yaml:"mongo"`
	RedisURL       string          `yaml:"redis_url"`
	Generator      GeneratorConfig `yaml:"generator"`
	Auth           AuthConfig      `yaml:"auth"`
	AllowedOrigins []string        `yaml:"allowed_origins"`
	LogDir         string          `yaml:"log_dir"`
}
