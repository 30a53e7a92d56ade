// Package config loads craftviz settings from a TOML file.
//
// The file holds defaults for the view tunables and render output; command
// line flags override it. The default location follows XDG:
// ~/.config/craftviz/config.toml.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/craftviz/craftviz/pkg/errors"
	"github.com/craftviz/craftviz/pkg/graph/view"
)

// View configures how far and through which parents a craft tree climbs.
type View struct {
	MaxDistance int    `toml:"max_distance"`
	Natural     string `toml:"natural"`
	Categories  string `toml:"categories"`
	Default     string `toml:"default"`
}

// Render configures the default output.
type Render struct {
	Format string  `toml:"format"`
	Scale  float64 `toml:"scale"`
}

// Cache configures the artifact cache.
type Cache struct {
	Disabled bool   `toml:"disabled"`
	Dir      string `toml:"dir"`
	Redis    string `toml:"redis"`
	TTLHours int    `toml:"ttl_hours"`
}

// Server configures the HTTP server.
type Server struct {
	Addr string `toml:"addr"`
}

// Config is the full craftviz configuration.
type Config struct {
	View   View   `toml:"view"`
	Render Render `toml:"render"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		View: View{
			MaxDistance: 50,
			Natural:     "none",
			Categories:  "existing",
			Default:     "least-complex",
		},
		Render: Render{
			Format: "svg",
			Scale:  2.0,
		},
		Cache: Cache{
			TTLHours: 24 * 7,
		},
		Server: Server{
			Addr: ":8080",
		},
	}
}

// DefaultPath returns the XDG location of the config file.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "craftviz", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "craftviz", "config.toml"), nil
}

// Load reads the config file at path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config file %s", path)
	}
	if _, err := cfg.ViewOptions(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDefault reads the config file from the XDG location if it exists, and
// returns the built-in defaults otherwise.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}
	return Load(path)
}

// ViewOptions translates the view section into view package options.
func (c Config) ViewOptions() (view.Options, error) {
	opts := view.Options{MaxDistance: c.View.MaxDistance}

	var err error
	if opts.Natural, err = ParentMode(c.View.Natural); err != nil {
		return opts, err
	}
	if opts.Categories, err = ParentMode(c.View.Categories); err != nil {
		return opts, err
	}
	if opts.Default, err = ParentMode(c.View.Default); err != nil {
		return opts, err
	}
	return opts, nil
}

// ParentMode parses a parent mode name.
func ParentMode(name string) (view.ParentMode, error) {
	switch name {
	case "none":
		return view.NoParents, nil
	case "least-complex":
		return view.LeastComplexParent, nil
	case "existing":
		return view.OnlyExistingParents, nil
	case "all":
		return view.AllParents, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput,
		"unknown parent mode %q (must be none, least-complex, existing or all)", name)
}
