package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	require.NoError(t, os.Setenv("PORT", "9000"))
	require.NoError(t, os.Setenv("DB_HOST", "test-host"))
	defer os.Unsetenv("PORT")
	defer os.Unsetenv("DB_HOST")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, "localhost", cfg.Server.Host, "HOST default")
	assert.Equal(t, 5432, cfg.Database.Port, "DB_PORT default")
	assert.Equal(t, "UTC", cfg.Scheduler.Timezone, "SCHEDULER_TIMEZONE default")
	assert.False(t, cfg.Cache.Enabled, "CACHE_ENABLED default")
}

func TestValidateConfig(t *testing.T) {
	err := ValidateConfig(&Config{})
	assert.Error(t, err, "expected validation error for an empty database config")

	err = ValidateConfig(&Config{Database: DatabaseConfig{Host: "localhost", User: "u", Name: "d"}})
	assert.NoError(t, err)

	err = ValidateConfig(&Config{Database: DatabaseConfig{URL: "postgres://u:p@host/db"}})
	assert.NoError(t, err, "a DATABASE_URL alone satisfies validation")
}

func TestMailReady(t *testing.T) {
	assert.False(t, MailConfig{}.Ready())
	assert.True(t, MailConfig{SMTPHost: "smtp.example.com", SMTPPort: 587, SMTPUsername: "u", SMTPPassword: "p", FromEmail: "a@b.com"}.Ready())
}

func TestDatabaseConfigDSN(t *testing.T) {
	d := DatabaseConfig{Host: "test-host", Port: 3306, User: "test-user", Pass: "test-password", Name: "test-db"}
	assert.Equal(t, "host=test-host port=3306 user=test-user password=test-password dbname=test-db sslmode=disable", d.DSN())

	withURL := DatabaseConfig{URL: "postgres://u:p@host/db"}
	assert.Equal(t, "postgres://u:p@host/db", withURL.DSN())
}

func TestIsDevelopmentIsProduction(t *testing.T) {
	os.Setenv("GIN_MODE", "debug")
	defer os.Unsetenv("GIN_MODE")
	assert.True(t, IsDevelopment())
	assert.False(t, IsProduction())

	os.Setenv("GIN_MODE", "release")
	assert.False(t, IsDevelopment())
	assert.True(t, IsProduction())
}
