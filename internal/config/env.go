package config

import (
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type AuthOptions struct {
	JWKSURL     string `env:"AUTH_JWKS_URL"`
	Issuer      string `env:"AUTH_ISSUER"`
	Audience    string `env:"AUTH_AUDIENCE"`
	LocalSecret string `env:"AUTH_LOCAL_SECRET"`
}

type Configuration struct {
	Port              string        `env:"PORT" envDefault:"3000"`
	DBURL             string        `env:"DB_URL"`
	AutoMigrate       bool          `env:"DB_AUTO_MIGRATE" envDefault:"false"`
	RedisURL          string        `env:"REDIS_URL"`
	BoardCacheTTL     time.Duration `env:"BOARD_CACHE_TTL" envDefault:"5m"`
	MaxFreeBoards     int           `env:"MAX_FREE_BOARDS" envDefault:"5"`
	SubscriptionGrace time.Duration `env:"SUBSCRIPTION_GRACE" envDefault:"24h"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins       string        `env:"CORS_ORIGINS" envDefault:"*"`
	Auth              AuthOptions
}

// Load reads .env files when present and parses the environment.
func Load(envFiles ...string) (*Configuration, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	existing := envFiles[:0:0]
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		log.Warn(".env file not found")
	} else if err := godotenv.Load(existing...); err != nil {
		return nil, errors.Wrap(err, "load env files")
	}

	c := &Configuration{}
	if err := env.Parse(c); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	return c, nil
}

// Validate checks the options needed to serve requests.
func (c *Configuration) Validate() error {
	if strings.TrimSpace(c.DBURL) == "" {
		return errors.New("DB_URL must be set")
	}
	if c.Auth.JWKSURL == "" && c.Auth.LocalSecret == "" {
		return errors.New("one of AUTH_JWKS_URL or AUTH_LOCAL_SECRET must be set")
	}
	if c.MaxFreeBoards < 0 {
		return errors.Errorf("MAX_FREE_BOARDS must be non-negative, got %d", c.MaxFreeBoards)
	}
	if c.BoardCacheTTL < 0 {
		return errors.Errorf("BOARD_CACHE_TTL must be non-negative, got %s", c.BoardCacheTTL)
	}
	return nil
}

// ConfigureLogger applies the log level and switches to JSON output outside debug.
func (c *Configuration) ConfigureLogger() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.WithField("level", c.LogLevel).Warn("unknown LOG_LEVEL, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if level < log.DebugLevel {
		log.SetFormatter(&log.JSONFormatter{})
	}
}
