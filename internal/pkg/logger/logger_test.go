package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	log, err := New("nonsense")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(0))
	assert.False(t, log.Core().Enabled(-1))
}

func TestNewWithFile_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")

	log, err := NewWithFile("info", FileOptions{Path: path, MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)

	log.Info("estimate served")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "estimate served")
}
