// config.go - Handles configuration for the project

package config // Declares the package name

import ( // Import required packages
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11" // Environment -> struct parsing
	"github.com/joho/godotenv"    // Optional .env file support
)

type Config struct { // Config struct holds all configuration values
	Addr     string `env:"ADDR" envDefault:":8080"`            // HTTP listen address
	GinMode  string `env:"GIN_MODE" envDefault:"release"`      // gin mode (debug/release/test)
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`        // slog level
	DBDriver string `env:"DB_DRIVER" envDefault:"sqlite"`      // sqlite or postgres
	DBPath   string `env:"DB_PATH" envDefault:"bibliotech.db"` // Path to the SQLite database file
	DBURL    string `env:"DATABASE_URL"`                       // Postgres DSN when DB_DRIVER=postgres

	SessionSecret string        `env:"SESSION_SECRET" envDefault:"change-me"` // Signs the session cookie
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`          // Cookie + server-side session lifetime
	RedisAddr     string        `env:"REDIS_ADDR"`                            // Sessions live in Redis when set
	RedisPassword string        `env:"REDIS_PASSWORD"`

	SMTPHost  string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort  int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPEmail string `env:"SMTP_EMAIL"` // Sender address; e-mail delivery is off without it
	SMTPPass  string `env:"SMTP_PASS"`  // Sender credential; e-mail delivery is off without it
	EbookDir  string `env:"EBOOK_DIR" envDefault:"ebooks"`
	StaticDir string `env:"STATIC_DIR" envDefault:"static"`

	MQTTBroker string `env:"MQTT_BROKER"` // Purchase events are published when set
	MQTTTopic  string `env:"MQTT_TOPIC" envDefault:"bibliotech/purchases"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	// A missing .env is the normal case outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "sqlite":
	case "postgres":
		if c.DBURL == "" {
			return errors.New("config: DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.SessionTTL <= 0 {
		return errors.New("config: SESSION_TTL must be positive")
	}
	return nil
}

// MailEnabled reports whether both SMTP secrets are present.
func (c *Config) MailEnabled() bool {
	return c.SMTPEmail != "" && c.SMTPPass != ""
}

// String returns a printable summary with secrets masked.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Addr: %s, DB: %s, Redis: %t, Mail: %t, MQTT: %t, Secret: ***}",
		c.Addr, c.DBDriver, c.RedisAddr != "", c.MailEnabled(), c.MQTTBroker != "")
}
