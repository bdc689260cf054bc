package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces environment overrides, e.g. SCHEDULER_DATABASE__DRIVER.
const EnvPrefix = "SCHEDULER_"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	CORS     CORSConfig     `koanf:"cors"`
	Database DatabaseConfig `koanf:"database"`
	Agenda   AgendaConfig   `koanf:"agenda"`
	Auth     AuthConfig     `koanf:"auth"`
}

type ServerConfig struct {
	Port          int    `koanf:"port"`
	Mode          string `koanf:"mode"` // gin mode: debug, release, test
	SlowRequestMs int    `koanf:"slow_request_ms"`
}

type CORSConfig struct {
	AllowOrigins []string `koanf:"allow_origins"`
}

type DatabaseConfig struct {
	Driver string `koanf:"driver"`
	DSN    string `koanf:"dsn"`
}

type AgendaConfig struct {
	Cron string `koanf:"cron"` // empty disables the daily agenda job
}

type AuthConfig struct {
	PasswordHash  string `koanf:"password_hash"` // bcrypt; empty disables auth
	JWTSecret     string `koanf:"jwt_secret"`
	TokenTTLHours int    `koanf:"token_ttl_hours"`
}

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"server": map[string]interface{}{
			"port":            8000,
			"mode":            "release",
			"slow_request_ms": 200,
		},
		"cors": map[string]interface{}{
			"allow_origins": []string{"http://localhost:3000", "http://127.0.0.1:5500"},
		},
		"database": map[string]interface{}{
			"driver": DriverSQLite,
			"dsn":    "scheduler.db",
		},
		"agenda": map[string]interface{}{
			"cron": "0 9 * * *",
		},
		"auth": map[string]interface{}{
			"password_hash":   "",
			"jwt_secret":      "",
			"token_ttl_hours": 24,
		},
	}
}

// Load layers defaults, the optional YAML file at path, SCHEDULER_*
// variables and finally the bare PORT / DB_URL / JWT_SECRET variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(DefaultConfig(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(s, v string) (string, interface{}) {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
		if key == "cors.allow_origins" {
			return key, strings.Split(v, ",")
		}
		return key, v
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		k.Set("server.port", p)
	}
	if dsn := os.Getenv("DB_URL"); dsn != "" {
		k.Set("database.driver", DriverPostgres)
		k.Set("database.dsn", dsn)
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		k.Set("auth.jwt_secret", secret)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unknown database driver: %s (supported: %s, %s)",
			c.Database.Driver, DriverSQLite, DriverPostgres)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}
	if len(c.CORS.AllowOrigins) == 0 {
		return fmt.Errorf("cors.allow_origins must list at least one origin")
	}
	if c.Auth.Enabled() && c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required when auth.password_hash is set")
	}
	if c.Auth.TokenTTLHours <= 0 {
		return fmt.Errorf("auth.token_ttl_hours must be positive")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Server.Port)
}

func (c *Config) SlowRequestThreshold() time.Duration {
	return time.Duration(c.Server.SlowRequestMs) * time.Millisecond
}

func (a AuthConfig) Enabled() bool {
	return a.PasswordHash != ""
}

func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}
