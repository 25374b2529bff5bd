// Package cliconfig loads the optional TOML configuration file of mjpegd.
// Values from the file apply only where the corresponding command-line flag
// was not given explicitly.
package cliconfig

import (
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/lanikai/mjpegcast"
)

// FileConfig mirrors mjpegcast.Config with TOML-friendly types. Zero values
// mean "not set".
type FileConfig struct {
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	FPS          int    `toml:"fps"`
	Input        string `toml:"input"`
	Quality      int    `toml:"quality"`
	Queue        int    `toml:"queue"`
	Listen       string `toml:"listen"`
	MaxClients   int    `toml:"max_clients"`
	WriteTimeout string `toml:"write_timeout"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, errors.Wrapf(err, "parse %s", path)
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.mjpegd/config.toml, or "" if the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".mjpegd", "config.toml")
	}
	return ""
}

// ApplyFileConfig copies values from fc into cfg, skipping any whose flag
// name appears in changed.
func ApplyFileConfig(cfg *mjpegcast.Config, fc FileConfig, changed map[string]bool) error {
	setInt := func(flag string, v int, dst *int) {
		if !changed[flag] && v != 0 {
			*dst = v
		}
	}
	setString := func(flag string, v string, dst *string) {
		if !changed[flag] && v != "" {
			*dst = v
		}
	}

	setInt("width", fc.Width, &cfg.Width)
	setInt("height", fc.Height, &cfg.Height)
	setInt("fps", fc.FPS, &cfg.FPS)
	setInt("quality", fc.Quality, &cfg.Quality)
	setInt("queue", fc.Queue, &cfg.QueueCapacity)
	setInt("max-clients", fc.MaxClients, &cfg.MaxClients)
	setString("input", fc.Input, &cfg.Source)
	setString("listen", fc.Listen, &cfg.Addr)

	if !changed["write-timeout"] && fc.WriteTimeout != "" {
		d, err := time.ParseDuration(fc.WriteTimeout)
		if err != nil {
			return errors.Wrap(err, "write_timeout")
		}
		cfg.WriteTimeout = d
	}
	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
