package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "major", cfg.Scale)
	assert.Equal(t, "C", cfg.Key)
	assert.Equal(t, 4, cfg.BaseOctave)
	assert.Equal(t, 120.0, cfg.Tempo)
	assert.True(t, cfg.UseCache)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PILOOM_PORT", "9090")
	t.Setenv("PILOOM_SCALE", "blues")
	t.Setenv("PILOOM_USE_CACHE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "blues", cfg.Scale)
	assert.False(t, cfg.UseCache)
}
