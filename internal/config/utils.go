package config

import (
	"fmt"
	"log"
	"strings"
)

// ValidateConfig checks the configuration values required for the core
// to start at all (database connectivity parameters). Mail and cache
// are optional collaborators and are not validated here.
func ValidateConfig(cfg *Config) error {
	var missing []string
	if cfg.Database.URL == "" {
		if cfg.Database.Host == "" {
			missing = append(missing, "DB_HOST")
		}
		if cfg.Database.User == "" {
			missing = append(missing, "DB_USER")
		}
		if cfg.Database.Name == "" {
			missing = append(missing, "DB_NAME")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration keys: %s", strings.Join(missing, ", "))
	}
	return nil
}

// PrintConfig logs the non-sensitive parts of the configuration at
// startup, the same shape as the teacher's log-only config dump.
func PrintConfig(cfg *Config) {
	log.Println("=== Configuration ===")
	log.Printf("Server: %s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Database: %s:%d/%s (driver=%s)", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name, cfg.Database.Driver)
	log.Printf("Scheduler: timezone=%s interval=%s", cfg.Scheduler.Timezone, cfg.Scheduler.CheckInterval)
	log.Printf("Cache: enabled=%v addr=%s", cfg.Cache.Enabled, cfg.Cache.Addr)
	log.Printf("Mail: ready=%v", cfg.Mail.Ready())
	log.Printf("Logging: level=%s format=%s", cfg.Logging.Level, cfg.Logging.Format)
}

