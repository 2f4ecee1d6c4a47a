package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":3001", c.EndpointAddr)
	assert.Empty(t, c.DatabaseDSN)
	assert.Equal(t, 60*time.Minute, c.TokenValidityDuration)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, ":3001", cfg.EndpointAddr)
	assert.Equal(t, 60*time.Minute, cfg.TokenValidityDuration)
}
