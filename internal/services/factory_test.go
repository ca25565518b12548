package services

import (
	"path/filepath"
	"testing"
	"watchlist/internal/structures"
	"watchlist/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatchlistService_BlankBaseURLSelectsLocal(t *testing.T) {
	for _, baseURL := range []string{"", "   ", "\t"} {
		conf := &structures.Config{
			Storage: structures.StorageConfig{Driver: "file", Dir: t.TempDir()},
			Remote:  structures.RemoteConfig{BaseURL: baseURL},
		}
		svc, cleanup, err := NewWatchlistService(conf, &testutil.MockLogger{}, &testutil.MockMetrics{})
		require.NoError(t, err)
		assert.IsType(t, &LocalWatchlistService{}, svc)
		cleanup()
	}
}

func TestNewWatchlistService_BaseURLSelectsRemote(t *testing.T) {
	conf := &structures.Config{
		Remote: structures.RemoteConfig{
			BaseURL:   "  http://localhost:8080  ",
			TokenFile: filepath.Join(t.TempDir(), "token"),
		},
	}
	svc, cleanup, err := NewWatchlistService(conf, &testutil.MockLogger{}, &testutil.MockMetrics{})
	require.NoError(t, err)
	defer cleanup()

	remote, ok := svc.(*RemoteWatchlistService)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:8080", remote.client.BaseURL())
}

func TestNewWatchlistService_UnknownDriver(t *testing.T) {
	conf := &structures.Config{Storage: structures.StorageConfig{Driver: "cassandra"}}
	_, _, err := NewWatchlistService(conf, &testutil.MockLogger{}, &testutil.MockMetrics{})
	assert.Error(t, err)
}
