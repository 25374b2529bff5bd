package mjpegcast

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 180, cfg.Height)
	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, 100, cfg.QueueCapacity)
	assert.Equal(t, time.Second/30, cfg.FrameInterval())
}

func TestConfigValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"width":   func(c *Config) { c.Width = 0 },
		"height":  func(c *Config) { c.Height = -1 },
		"fps":     func(c *Config) { c.FPS = 0 },
		"quality": func(c *Config) { c.Quality = 101 },
		"queue":   func(c *Config) { c.QueueCapacity = 0 },
		"clients": func(c *Config) { c.MaxClients = -1 },
		"source":  func(c *Config) { c.Source = "" },
	} {
		cfg := DefaultConfig()
		mutate(&cfg)
		err := cfg.Validate()
		assert.Equal(t, ErrInvalidConfig, errors.Cause(err), name)
	}
}
