package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "badger", cfg.Store.Driver)
	assert.Equal(t, "data/badger", cfg.Store.Badger.Path)
	assert.False(t, cfg.Store.Badger.InMemory)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Store.Mongo.URI)
	assert.Equal(t, "blog", cfg.Store.Mongo.Database)
	assert.Equal(t, "posts", cfg.Store.Mongo.Collection)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	yml := `
server:
  addr: ":9090"
  shutdown_timeout: 3s
store:
  driver: mongo
  mongo:
    database: board
log:
  format: text
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "mongo", cfg.Store.Driver)
	assert.Equal(t, "board", cfg.Store.Mongo.Database)
	assert.Equal(t, "posts", cfg.Store.Mongo.Collection)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadEnvironment(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("server:\n  addr: \":9090\"\n"), 0644))
	t.Setenv("POSTBOARD_SERVER_ADDR", ":7070")
	t.Setenv("POSTBOARD_STORE_BADGER_IN_MEMORY", "true")
	t.Setenv("POSTBOARD_METRICS_ENABLED", "false")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.True(t, cfg.Store.Badger.InMemory)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("POSTBOARD_LOG_LEVEL=debug\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("POSTBOARD_LOG_LEVEL") })

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("POSTBOARD_STORE_DRIVER", "postgres")

	_, err := Load(t.TempDir())
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Addr: ":8080", ShutdownTimeout: time.Second},
			Store: StoreConfig{
				Driver: "badger",
				Badger: BadgerConfig{Path: "data/badger"},
				Mongo:  MongoConfig{URI: "mongodb://localhost", Database: "blog", Collection: "posts"},
			},
			Log: LogConfig{Level: "info", Format: "json"},
		}
	}

	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing addr", func(c *Config) { c.Server.Addr = "" }, true},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, true},
		{"unknown driver", func(c *Config) { c.Store.Driver = "sqlite" }, true},
		{"badger without path", func(c *Config) { c.Store.Badger.Path = "" }, true},
		{"in-memory badger without path", func(c *Config) {
			c.Store.Badger.Path = ""
			c.Store.Badger.InMemory = true
		}, false},
		{"mongo without database", func(c *Config) {
			c.Store.Driver = "mongo"
			c.Store.Mongo.Database = ""
		}, true},
		{"mongo ignores badger path", func(c *Config) {
			c.Store.Driver = "mongo"
			c.Store.Badger.InMemory = true
			c.Store.Badger.Path = ""
		}, false},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, true},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	LogConfig{Level: "debug", Format: "text"}.NewLogger(&buf).Debug("plain")
	assert.Contains(t, buf.String(), "msg=plain")
}
