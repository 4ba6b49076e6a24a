package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults filled", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: 8080
jwt:
  secret: "`+testSecret+`"
storage:
  upload_dir: ./uploads
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "file", cfg.Persistence.Type)
		assert.Equal(t, "data/fleetrent.json", cfg.Persistence.FilePath)
		assert.Equal(t, 5, cfg.Rental.MaxActiveRentals)
		assert.Equal(t, "0 0 3 * * *", cfg.Scheduler.SendOverdueReminders)
		assert.Equal(t, 60, cfg.JWT.AccessTokenExpiry)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, 2, cfg.Email.Workers)
		assert.Equal(t, 3, cfg.Email.MaxRetries)
		assert.Equal(t, ":8080", cfg.GetServerAddress())
	})

	t.Run("Environment overrides", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("PERSISTENCE_TYPE", "redis")
		t.Setenv("REDIS_ADDR", "localhost:6379")
		path := writeConfig(t, `
server:
  port: 8080
jwt:
  secret: "`+testSecret+`"
storage:
  upload_dir: ./uploads
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "redis", cfg.Persistence.Type)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	})

	t.Run("Short secret rejected", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: 8080
jwt:
  secret: short
storage:
  upload_dir: ./uploads
`)
		_, err := Load(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("Postgres requires database settings", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: 8080
persistence:
  type: postgres
jwt:
  secret: "`+testSecret+`"
storage:
  upload_dir: ./uploads
`)
		_, err := Load(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database host is required")
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestGetSecurityLevel(t *testing.T) {
	assert.Equal(t, SecurityPublic, GetSecurityLevel("Login"))
	assert.Equal(t, SecurityCustomer, GetSecurityLevel("CreateRental"))
	assert.Equal(t, SecurityStaff, GetSecurityLevel("GetAnalytics"))
	assert.Equal(t, SecurityStaff, GetSecurityLevel("SomethingUnregistered"))
}
