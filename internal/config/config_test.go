package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://www.flowagility.com", cfg.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.ScrollWait)
	assert.Equal(t, 3, cfg.ClickRetries)
	assert.Equal(t, 5*time.Minute, cfg.MaxEventDuration)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
email: alguien@example.com
out_dir: /tmp/agiscrape
scroll_wait_seconds: 0.5
per_participant_timeout_seconds: 20
max_scrolls: 5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "alguien@example.com", cfg.Email)
	assert.Equal(t, "/tmp/agiscrape", cfg.OutDir)
	assert.Equal(t, 500*time.Millisecond, cfg.ScrollWait)
	assert.Equal(t, 20*time.Second, cfg.PerParticipantTimeout)
	assert.Equal(t, 5, cfg.MaxScrolls)
	assert.Equal(t, 3, cfg.ClickRetries)
}

func TestLoadEnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("email: fichero@example.com\npassword: ${AGISCRAPE_TEST_PASS}\n"), 0o644))

	t.Setenv("AGISCRAPE_TEST_PASS", "expandida")
	t.Setenv("FLOW_EMAIL", "entorno@example.com")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "entorno@example.com", cfg.Email)
	assert.Equal(t, "expandida", cfg.Password)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
