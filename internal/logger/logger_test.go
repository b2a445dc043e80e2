package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geoverlay.log")
	closer, err := Logger{Level: "debug", Format: "json", File: path}.Setup(true)
	require.NoError(t, err)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Debug().Str("feature", "park").Msg("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"feature":"park"`)
	assert.Contains(t, string(data), `"level":"debug"`)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestSetupBadLevelFallsBackToInfo(t *testing.T) {
	closer, err := Logger{Level: "loud", Format: "console"}.Setup(true)
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetupBadFile(t *testing.T) {
	_, err := Logger{File: filepath.Join(t.TempDir(), "missing", "x.log")}.Setup(false)
	assert.Error(t, err)
}
