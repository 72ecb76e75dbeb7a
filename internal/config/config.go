// Package config loads the application configuration with Viper, the
// same layered .env-file-plus-environment-plus-defaults shape the
// teacher's internal/config/config.go uses.
package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Mail      MailConfig
	Scheduler SchedulerConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
	Seeding   SeedingConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type DatabaseConfig struct {
	Driver string // "postgres" or "sqlite"
	URL    string
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
}

// MailConfig configures the optional report-email sender in
// internal/mailer, the same shape as the teacher's EmailConfig.
type MailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
}

// Ready reports whether every field the mailer needs is populated.
func (m MailConfig) Ready() bool {
	return m.SMTPHost != "" && m.SMTPPort != 0 && m.SMTPUsername != "" && m.SMTPPassword != "" && m.FromEmail != ""
}

type SchedulerConfig struct {
	// Timezone is the single well-defined zone used for the
	// scheduler's "today"/trigger-day computation (spec §9 Open
	// Question). Default "UTC".
	Timezone string
	// CheckInterval is how often the scheduler wakes to check whether
	// today's trigger-day condition is met: a Go duration string
	// ("30m", "1h") or one of the aliases "@hourly" and "@daily". Full
	// cron expressions are not accepted.
	CheckInterval string
}

type CacheConfig struct {
	Enabled bool
	Addr    string
	Pass    string
	DB      int
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type LoggingConfig struct {
	Level  string
	Format string
}

type SeedingConfig struct {
	AdminLogin    string
	AdminPassword string
}

// CORSConfig lists the origins the thin HTTP driver allows. An empty
// Origins list allows all origins ("*"), matching the teacher's
// NewCORS zero-value behavior.
type CORSConfig struct {
	Origins []string
}

// Load initializes and loads configuration using Viper.
func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("warning: .env file not found, using environment variables and defaults")
		} else {
			log.Printf("error reading config file: %v", err)
		}
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("PORT"),
			Host: viper.GetString("HOST"),
		},
		Database: DatabaseConfig{
			Driver: viper.GetString("DB_DRIVER"),
			URL:    viper.GetString("DATABASE_URL"),
			Host:   viper.GetString("DB_HOST"),
			Port:   viper.GetInt("DB_PORT"),
			User:   viper.GetString("DB_USER"),
			Pass:   viper.GetString("DB_PASSWORD"),
			Name:   viper.GetString("DB_NAME"),
		},
		Mail: MailConfig{
			SMTPHost:     viper.GetString("SMTP_HOST"),
			SMTPPort:     viper.GetInt("SMTP_PORT"),
			SMTPUsername: viper.GetString("SMTP_USERNAME"),
			SMTPPassword: viper.GetString("SMTP_PASSWORD"),
			FromEmail:    viper.GetString("FROM_EMAIL"),
		},
		Scheduler: SchedulerConfig{
			Timezone:      viper.GetString("SCHEDULER_TIMEZONE"),
			CheckInterval: viper.GetString("SCHEDULER_CHECK_INTERVAL"),
		},
		Cache: CacheConfig{
			Enabled: viper.GetBool("CACHE_ENABLED"),
			Addr:    viper.GetString("CACHE_ADDR"),
			Pass:    viper.GetString("CACHE_PASSWORD"),
			DB:      viper.GetInt("CACHE_DB"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
		Logging: LoggingConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		Seeding: SeedingConfig{
			AdminLogin:    viper.GetString("ADMIN_LOGIN"),
			AdminPassword: viper.GetString("ADMIN_PASSWORD"),
		},
		CORS: CORSConfig{
			Origins: splitAndTrim(viper.GetString("CORS_ORIGINS")),
		},
	}
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func setDefaults() {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("GIN_MODE", "debug")

	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "moneyhive")
	viper.SetDefault("DB_PASSWORD", "moneyhive")
	viper.SetDefault("DB_NAME", "moneyhive")

	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("FROM_EMAIL", "")

	viper.SetDefault("SCHEDULER_TIMEZONE", "UTC")
	viper.SetDefault("SCHEDULER_CHECK_INTERVAL", "@hourly")

	viper.SetDefault("CACHE_ENABLED", false)
	viper.SetDefault("CACHE_ADDR", "localhost:6379")
	viper.SetDefault("CACHE_PASSWORD", "")
	viper.SetDefault("CACHE_DB", 0)

	viper.SetDefault("RATE_LIMIT_RPS", 50)
	viper.SetDefault("RATE_LIMIT_BURST", 100)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")

	viper.SetDefault("ADMIN_LOGIN", "admin")
	viper.SetDefault("ADMIN_PASSWORD", "")

	viper.SetDefault("CORS_ORIGINS", "")
}

// IsDevelopment returns true if running in development mode.
func IsDevelopment() bool {
	return viper.GetString("GIN_MODE") != "release"
}

// IsProduction returns true if running in production mode.
func IsProduction() bool {
	return viper.GetString("GIN_MODE") == "release"
}

// DSN builds the database connection string from components when
// DATABASE_URL is not set directly.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Pass, d.Name,
	)
}

// ValidateConfig checks that the database is addressable, either via a
// DATABASE_URL or via the Host/User/Name component fields, mirroring
// the teacher's ValidateConfig required-keys check but against the
// already-loaded Config rather than raw viper keys.
func ValidateConfig(cfg *Config) error {
	if cfg.Database.URL != "" {
		return nil
	}

	var missing []string
	if cfg.Database.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if cfg.Database.User == "" {
		missing = append(missing, "DB_USER")
	}
	if cfg.Database.Name == "" {
		missing = append(missing, "DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
