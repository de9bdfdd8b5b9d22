package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Configuration holds the portal runtime configuration.
type Configuration struct {
	APIBaseURL string        `env:"PORTAL_API_BASE_URL" envDefault:"http://localhost:9000"`
	PortalURL  string        `env:"PORTAL_URL" envDefault:"https://lilgargs.app"`
	RedisURL   string        `env:"REDIS_URL"`
	StateFile  string        `env:"PORTAL_STATE_FILE"`
	SessionTTL time.Duration `env:"PORTAL_SESSION_TTL" envDefault:"5m"`
	ServerPort string        `env:"PORTAL_SERVER_PORT" envDefault:"9000"`
	JWTSecret  string        `env:"PORTAL_JWT_SECRET" envDefault:"dev-only-secret"`
	LogLevel   int           `env:"PORTAL_LOG_LEVEL" envDefault:"0"`
	LogJSON    bool          `env:"PORTAL_LOG_JSON" envDefault:"false"`
}

// Load reads configuration from the environment, after loading a .env file
// when one is present.
func Load() (*Configuration, error) {
	_ = godotenv.Load()

	cfg := &Configuration{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	cfg.PortalURL = strings.TrimRight(cfg.PortalURL, "/")
	return cfg, nil
}
