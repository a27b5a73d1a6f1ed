package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DBConfig describes how to reach the MySQL database.
type DBConfig struct {
	User string // database username
	Pass string // database password (optional)
	Host string // database host address
	Port string // database port number
	Name string // database name
}

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable; optional ones fall back to the defaults below.
type Config struct {
	Env         string        // application environment (e.g. "dev", "prod")
	Port        string        // HTTP port to listen on
	DB          DBConfig      // MySQL connection settings
	JWTSecret   string        // secret used to sign auth tokens
	TokenTTL    time.Duration // auth token lifetime, zero means tokens never expire
	BcryptCost  int           // bcrypt cost for password hashing
	LogLevel    string        // debug, info, warn, error or off
	AutoMigrate bool          // apply embedded migrations on startup
	RabbitMQURL string        // broker for booking events, empty disables publishing
	Redis       RedisConfig
	RateLimit   RateLimitConfig
}

// Load reads configuration from an optional .env file in the working
// directory and from the process environment.
func Load() (Config, error) {
	return LoadWithFile(".env")
}

// LoadWithFile is like Load but reads the given .env file.  A missing file is
// not an error; variables already present in the environment win over it.
func LoadWithFile(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	var missing []error
	must := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, fmt.Errorf("missing required env var: %s", key))
		}
		return v
	}

	cfg := Config{
		Env:  envStr("APP_ENV", "dev"),
		Port: envStr("APP_PORT", "8000"),
		DB: DBConfig{
			User: must("DB_USER"),
			Pass: os.Getenv("DB_PASS"),
			Host: must("DB_HOST"),
			Port: envStr("DB_PORT", "3306"),
			Name: must("DB_NAME"),
		},
		JWTSecret:   must("JWT_SECRET"),
		TokenTTL:    time.Duration(envInt("TOKEN_TTL_MIN", 0)) * time.Minute,
		BcryptCost:  envInt("BCRYPT_COST", 10),
		LogLevel:    strings.ToLower(envStr("LOG_LEVEL", "info")),
		AutoMigrate: envBool("AUTO_MIGRATE", false),
		RabbitMQURL: rabbitURL(),
		Redis:       LoadRedisConfig(),
		RateLimit:   LoadRateLimitConfig(),
	}
	if len(missing) > 0 {
		return Config{}, errors.Join(missing...)
	}
	if cfg.TokenTTL < 0 {
		return Config{}, fmt.Errorf("invalid TOKEN_TTL_MIN: must not be negative")
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return Config{}, fmt.Errorf("invalid BCRYPT_COST %d: must be between 4 and 31", cfg.BcryptCost)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// rabbitURL keeps the AMQP_URL alias accepted by the booking consumer tooling.
func rabbitURL() string {
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		return v
	}
	return os.Getenv("AMQP_URL")
}

func envStr(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
