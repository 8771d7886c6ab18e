package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Server       ServerConfig
	DB           DBConfig
	FeatureFlags FeatureFlagsConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"INVOICE_APP_ENV" default:"development"`
	LogLevel     string `envconfig:"INVOICE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"INVOICE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServerConfig struct {
	Port       string `envconfig:"INVOICE_SERVER_PORT" default:"5000"`
	PublicHost string `envconfig:"INVOICE_PUBLIC_HOST" default:"http://localhost"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

// BaseURL returns the externally visible base URL of the API.
func (s ServerConfig) BaseURL() string {
	return fmt.Sprintf("%s:%s", strings.TrimSuffix(s.PublicHost, "/"), s.Port)
}

type DBConfig struct {
	DSN string `envconfig:"INVOICE_DATABASE_URL"`

	LegacyHost     string `envconfig:"INVOICE_DB_HOST"`
	LegacyPort     int    `envconfig:"INVOICE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"INVOICE_DB_USER"`
	LegacyPassword string `envconfig:"INVOICE_DB_PASSWORD"`
	LegacyName     string `envconfig:"INVOICE_DB_NAME"`
	LegacySSLMode  string `envconfig:"INVOICE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"INVOICE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"INVOICE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"INVOICE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"INVOICE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"INVOICE_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"INVOICE_CORS_ALLOWED_ORIGINS"`
}

// ensureDSN resolves the final connection string, assembling it from the
// legacy per-field variables when INVOICE_DATABASE_URL is absent. A present
// but malformed DSN is rejected so the process refuses to start.
func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		u, err := url.Parse(db.DSN)
		if err != nil {
			return fmt.Errorf("malformed %s: %w", EnvDBDSN, err)
		}
		if u.Scheme != "postgres" && u.Scheme != "postgresql" {
			return fmt.Errorf("malformed %s: unsupported scheme %q", EnvDBDSN, u.Scheme)
		}
		if u.Host == "" {
			return fmt.Errorf("malformed %s: missing host", EnvDBDSN)
		}
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
