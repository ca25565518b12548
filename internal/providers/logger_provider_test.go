package providers

import (
	"os"
	"path/filepath"
	"testing"
	"watchlist/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogTypeByRequestType_Mutations(t *testing.T) {
	for _, m := range []string{"POST", "PATCH", "DELETE"} {
		assert.Equal(t, TypePost, GetLogTypeByRequestType(m), m)
	}
}

func TestGetLogTypeByRequestType_Reads(t *testing.T) {
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("GET"))
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("OPTIONS"))
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("PUT"))
}

func TestNewLogProvider_CreatesLogFiles(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)

	logger.Infof(TypeApp, "test message")
	logger.Debugf(TypeGet, "get message")
	logger.Warnf(TypePost, "post message")
	logger.Close()

	for _, name := range []string{"app.log", "get.log", "post.log"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
	data, err := os.ReadFile(filepath.Join(dir, "post.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "post message")

	data, err = os.ReadFile(filepath.Join(dir, "get.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "get message")
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/nonexistent/directory/path",
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "loud", Mode: 0644, Dir: t.TempDir()},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewConsoleLogger_FallsBackOnBadLevel(t *testing.T) {
	logger := NewConsoleLogger("nope")
	defer logger.Close()
	logger.Debugf(TypeApp, "dropped")
}
