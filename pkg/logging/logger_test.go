package logging

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWritesToRunFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	logger, err := NewLogger("test")
	require.NoError(t, err)
	defer logger.Close()

	logger.Infof("hello %s", "world")
	logger.Errorf("boom")

	data, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "[test] [INFO] hello world")
	assert.Contains(t, content, "[test] [ERROR] boom")
}

func TestComponentsShareOneRunFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	a, err := NewLogger("auth")
	require.NoError(t, err)
	defer a.Close()

	b, err := NewLogger("theme")
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, a.RunID(), b.RunID())
	assert.Equal(t, a.LogPath(), b.LogPath())
	assert.True(t, strings.HasSuffix(a.LogPath(), a.RunID()+".log"))
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	logger, err := NewLogger("test")
	require.NoError(t, err)

	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())
}
