package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	errMissingPostgres   = errors.New("postgres settings are required when database.url is empty")
	errMissingSQLitePath = errors.New("database.sqlite_path is required for the sqlite driver")
	errMissingSchedule   = errors.New("scheduler.complete_past_events is required when the scheduler is enabled")
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type AppConfig struct {
	API       *APIConfig       `mapstructure:"api"`
	Gin       *GinConfig       `mapstructure:"gin"`
	Database  *DatabaseConfig  `mapstructure:"database"`
	Postgres  *PostgresConfig  `mapstructure:"postgres"`
	Scheduler *SchedulerConfig `mapstructure:"scheduler"`
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	JWTExpiry          time.Duration `mapstructure:"jwt_expiry"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig selects the store backing the API. URL, when set, takes
// precedence over the Postgres block.
type DatabaseConfig struct {
	Driver     string `mapstructure:"driver"`
	URL        string `mapstructure:"url"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type SchedulerConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	CompletePastEvents string `mapstructure:"complete_past_events"`
}

// DSN returns the libpq style connection string for the configured server.
func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode,
	)
}

// Load reads the YAML file at path, applies environment overrides and
// validates the result.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("api.jwt_signing_key", "JWT_SIGNING_KEY", "JWT_SECRET")
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("api.port", "PORT", "API_PORT")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("conf.Validate -> %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		// Running components keep the values they started with.
		zap.L().Warn("config file changed, restart to apply", zap.String("file", e.Name), zap.String("op", e.Op.String()))
	})
	v.WatchConfig()

	return conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.jwt_expiry", "168h")
	v.SetDefault("api.request_timeout", "15s")
	v.SetDefault("gin.mode", "release")
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.url", "")
	v.SetDefault("database.sqlite_path", "ecell.db")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.complete_past_events", "0 0 * * * *")
}

func (c *AppConfig) Validate() error {
	err := validation.ValidateStruct(
		c,
		validation.Field(&c.API, validation.Required),
		validation.Field(&c.Gin, validation.Required),
		validation.Field(&c.Database, validation.Required),
		validation.Field(&c.Scheduler, validation.Required),
	)
	if err != nil {
		return err
	}

	if c.Database.Driver == DriverPostgres && c.Database.URL == "" {
		if c.Postgres == nil {
			return errMissingPostgres
		}

		return c.Postgres.Validate()
	}

	return nil
}

func (c *APIConfig) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.Port, validation.Required),
		validation.Field(&c.JWTSigningKey, validation.Required, validation.Length(32, 0)),
		validation.Field(&c.JWTExpiry, validation.Required, validation.Min(time.Minute)),
		validation.Field(&c.RequestTimeout, validation.Required),
	)
}

func (c *GinConfig) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.Mode, validation.Required, validation.In("debug", "release", "test")),
	)
}

func (c *DatabaseConfig) Validate() error {
	err := validation.ValidateStruct(
		c,
		validation.Field(&c.Driver, validation.Required, validation.In(DriverPostgres, DriverSQLite)),
	)
	if err != nil {
		return err
	}

	if c.Driver == DriverSQLite && c.SQLitePath == "" {
		return errMissingSQLitePath
	}

	return nil
}

func (c *PostgresConfig) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.Host, validation.Required),
		validation.Field(&c.Port, validation.Required),
		validation.Field(&c.User, validation.Required),
		validation.Field(&c.DB, validation.Required),
	)
}

func (c *SchedulerConfig) Validate() error {
	if c.Enabled && c.CompletePastEvents == "" {
		return errMissingSchedule
	}

	return nil
}
