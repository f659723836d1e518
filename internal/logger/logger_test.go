package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_WritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "habits.log")

	require.NoError(t, Init(Config{Level: "info", File: file}))
	Info("hello", "user_id", 7)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "user_id=7")
}

func TestInit_LevelParsing(t *testing.T) {
	require.NoError(t, Init(Config{Level: "DEBUG"}))
	assert.Equal(t, log.DebugLevel, Logger.GetLevel())

	err := Init(Config{Level: "nonsense"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonsense")
	assert.Equal(t, log.DebugLevel, Logger.GetLevel(), "failed init keeps the previous logger")

	require.NoError(t, Init(Config{Level: ""}))
	assert.Equal(t, log.InfoLevel, Logger.GetLevel())
}
