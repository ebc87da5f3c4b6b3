// Package config loads the API configuration from an optional .env file
// and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port    int           `mapstructure:"port" validate:"gt=0,lt=65536"`
	Env     string        `mapstructure:"env" validate:"oneof=development staging production test"`
	Store   StoreConfig   `mapstructure:"store"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Limiter LimiterConfig `mapstructure:"limiter"`
	SMTP    SMTPConfig    `mapstructure:"smtp"`
}

type StoreConfig struct {
	Driver          string `mapstructure:"driver" validate:"oneof=mongo postgres memory"`
	MongoURI        string `mapstructure:"mongodb_uri" validate:"required_if=Driver mongo"`
	MongoDatabase   string `mapstructure:"mongodb_database"`
	DSN             string `mapstructure:"dsn" validate:"required_if=Driver postgres"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxIdleLifeTime string `mapstructure:"max_idle_lifetime"`
}

type AuthConfig struct {
	JWTPrivateKey string        `mapstructure:"jwt_private_key" validate:"required"`
	TokenTTL      time.Duration `mapstructure:"token_ttl" validate:"gte=0"`
}

type LimiterConfig struct {
	RPS      float64 `mapstructure:"rps"`
	Burst    int     `mapstructure:"burst"`
	Disabled bool    `mapstructure:"disabled"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Sender   string `mapstructure:"sender"`
}

// env maps every configuration key to the environment variable it is read
// from, with its default.
var env = []struct {
	key, name string
	def       any
}{
	{"port", "PORT", 3000},
	{"env", "ENV", "development"},
	{"store.driver", "STORE_DRIVER", "mongo"},
	{"store.mongodb_uri", "MONGODB_URI", "mongodb://localhost:27017"},
	{"store.mongodb_database", "MONGODB_DATABASE", "vidly"},
	{"store.dsn", "DSN", ""},
	{"store.max_open_conns", "DB_MAX_OPEN_CONNS", 25},
	{"store.max_idle_conns", "DB_MAX_IDLE_CONNS", 25},
	{"store.max_idle_lifetime", "DB_MAX_IDLE_LIFETIME", "15m"},
	{"auth.jwt_private_key", "JWT_PRIVATE_KEY", ""},
	{"auth.token_ttl", "TOKEN_TTL", "0s"},
	{"limiter.rps", "RPS", 2.0},
	{"limiter.burst", "BURST", 4},
	{"limiter.disabled", "LIMITER_DISABLED", false},
	{"smtp.host", "SMTP_HOST", ""},
	{"smtp.port", "SMTP_PORT", 25},
	{"smtp.username", "SMTP_USERNAME", ""},
	{"smtp.password", "SMTP_PASSWORD", ""},
	{"smtp.sender", "SMTP_SENDER", "Vidly <no-reply@vidly.local>"},
}

// Load reads envFiles (".env" when none are given) into the environment,
// without overriding variables that are already set, and builds a
// validated Config from it. Missing env files are not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	v := viper.New()
	for _, e := range env {
		v.SetDefault(e.key, e.def)
		if err := v.BindEnv(e.key, e.name); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
