package providers

import (
	"os"
	"testing"
	"time"
	"watchlist/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: structures.StorageConfig{
			Driver: "file",
			Key:    DefaultStorageKey,
			Dir:    "/tmp/watchlist",
		},
		Persistence: structures.Persistence{
			BackupPath:     "/tmp/watchlist/backup.zst",
			BackupInterval: time.Hour,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_StorageDrivers(t *testing.T) {
	for _, d := range []string{"file", "sqlite", "redis", "memory"} {
		c := validConfig()
		c.Storage.Driver = d
		assert.NoError(t, NewCnfValidator(c).Validate(), d)
	}

	c := validConfig()
	c.Storage.Driver = "postgres"
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_AuthNeedsSecret(t *testing.T) {
	c := validConfig()
	c.Auth.Enabled = true
	assert.Error(t, NewCnfValidator(c).Validate())

	c.Auth.Secret = "s3cret"
	assert.NoError(t, NewCnfValidator(c).Validate())
}

func TestNewConfigProvider_DefaultsWithoutFile(t *testing.T) {
	conf, err := NewConfigProvider(&structures.CliFlags{})
	require.NoError(t, err)

	assert.Equal(t, "file", conf.Storage.Driver)
	assert.Equal(t, DefaultStorageKey, conf.Storage.Key)
	assert.Equal(t, 8080, conf.WebServer.Port)
	assert.Equal(t, time.Hour, conf.Persistence.BackupInterval)
}

func TestNewConfigProvider_EnvOverride(t *testing.T) {
	t.Setenv("WATCHLIST_STORAGE_DRIVER", "memory")
	t.Setenv("WATCHLIST_API_BASE_URL", "http://api.local/")

	conf, err := NewConfigProvider(&structures.CliFlags{DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "memory", conf.Storage.Driver)
	assert.Equal(t, "http://api.local/", conf.Remote.BaseURL)
	assert.True(t, conf.Debug)
}

func TestNewConfigProvider_ReadsYAML(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/watchlist.yaml"
	yaml := "storage:\n  driver: sqlite\n  dir: " + dir + "\nwebServer:\n  port: 9090\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, "sqlite", conf.Storage.Driver)
	assert.Equal(t, 9090, conf.WebServer.Port)
	assert.Equal(t, path, conf.Path)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: "/nonexistent/watchlist.yaml"})
	assert.Error(t, err)
}
