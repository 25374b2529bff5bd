package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanikai/mjpegcast"
)

const sample = `
width = 640
height = 480
fps = 15
input = "v4l2:/dev/video1"
listen = ":9000"
write_timeout = "3s"
`

func writeSample(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAndApply(t *testing.T) {
	fc, err := LoadFileConfig(writeSample(t, sample))
	require.NoError(t, err)

	cfg := mjpegcast.DefaultConfig()
	changed := map[string]bool{"fps": true}
	require.NoError(t, ApplyFileConfig(&cfg, fc, changed))

	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
	assert.Equal(t, 30, cfg.FPS, "explicit flag wins over file")
	assert.Equal(t, "v4l2:/dev/video1", cfg.Source)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 3*time.Second, cfg.WriteTimeout)
	assert.Equal(t, mjpegcast.DefaultQueueCapacity, cfg.QueueCapacity)
}

func TestLoadInvalid(t *testing.T) {
	_, err := LoadFileConfig(writeSample(t, "width = ["))
	assert.Error(t, err)

	_, err = LoadFileConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, os.IsNotExist(err))
}

func TestApplyBadDuration(t *testing.T) {
	cfg := mjpegcast.DefaultConfig()
	err := ApplyFileConfig(&cfg, FileConfig{WriteTimeout: "soon"}, nil)
	assert.Error(t, err)
}
