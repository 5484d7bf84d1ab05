package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultAppName    = "axis-backend"
	defaultEnv        = "development"
	defaultPort       = 8000
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "axis"
	defaultDBPassword = "axis"
	defaultDBName     = "axis"
	defaultRedisURL   = "redis://localhost:6379/0"
)

// AppConfig holds runtime startup configuration loaded from YAML, with
// environment variables (optionally via a .env file) taking precedence.
type AppConfig struct {
	AppName        string         `yaml:"app_name"`
	Env            string         `yaml:"env"` // "development" | "production"
	Port           int            `yaml:"port"`
	DSN            string         `yaml:"dsn"` // MySQL DSN
	Database       DatabaseConfig `yaml:"database"`
	RedisURL       string         `yaml:"redis_url"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	Privy          PrivyConfig    `yaml:"privy"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// PrivyConfig carries the credentials for the Privy verifier client.
// VerificationKey is the optional ES256 public key in PEM form; when empty
// the client fetches it from the Privy API on startup.
type PrivyConfig struct {
	AppID           string `yaml:"app_id"`
	AppSecret       string `yaml:"app_secret"`
	VerificationKey string `yaml:"verification_key"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

// Load reads the YAML config file (if present), then applies .env and
// process environment overrides, then fills defaults.
func Load(path string) (*AppConfig, error) {
	// A missing .env is not an error; explicit env vars still apply.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	if _, err := mysql.ParseDSN(cfg.DSN); err != nil {
		return nil, fmt.Errorf("invalid mysql dsn: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	setString(&cfg.AppName, "APP_NAME")
	setString(&cfg.Env, "ENV", "AXIS_ENV")
	setInt(&cfg.Port, "PORT", "BACKEND_PORT")
	setString(&cfg.DSN, "DATABASE_DSN", "DSN")
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.RedisURL, "REDIS_URL")
	setString(&cfg.Privy.AppID, "PRIVY_APP_ID")
	setString(&cfg.Privy.AppSecret, "PRIVY_APP_SECRET", "PRIVY_CLIENT_SECRET")
	setString(&cfg.Privy.VerificationKey, "PRIVY_VERIFICATION_KEY")

	if v := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		cfg.AllowedOrigins = origins
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.AppName == "" {
		cfg.AppName = defaultAppName
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = defaultRedisURL
	}
	if cfg.DSN == "" {
		cfg.DSN = buildDSN(cfg.Database)
	}
}

// buildDSN assembles a MySQL DSN from discrete database settings.
func buildDSN(db DatabaseConfig) string {
	if db.Host == "" {
		db.Host = defaultDBHost
	}
	if db.Port == 0 {
		db.Port = defaultDBPort
	}
	if db.User == "" {
		db.User = defaultDBUser
	}
	if db.Password == "" {
		db.Password = defaultDBPassword
	}
	if db.Name == "" {
		db.Name = defaultDBName
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		db.User, db.Password, db.Host, db.Port, db.Name)
}

func setString(dst *string, keys ...string) {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
			return
		}
	}
}

func setInt(dst *int, keys ...string) {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
			return
		}
	}
}
