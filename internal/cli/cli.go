// Package cli implements the craftviz command-line interface.
//
// This package provides commands for rendering crafting dependency trees
// from a game databank, inspecting objects and recipes, serving rendered
// trees over HTTP, and managing the artifact cache. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/craftviz/craftviz/pkg/buildinfo"
	"github.com/craftviz/craftviz/pkg/cache"
	"github.com/craftviz/craftviz/pkg/config"
)

// appName is the application name used for directories and display.
const appName = "craftviz"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Craftviz renders crafting dependency trees",
		Long:         `Craftviz reads a game databank of objects and transitions and renders the crafting tree leading to any object, annotated with complexity and pruned of redundant loops.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/craftviz/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file into the CLI. An explicit --config path
// must exist; the default path is optional.
func (c *CLI) loadConfig() error {
	var (
		cfg config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.Load(c.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// newCache creates the artifact cache: disabled, redis, or file-based.
// Cache construction failures degrade to a null cache instead of aborting
// the command.
func (c *CLI) newCache(cmd *cobra.Command, noCache bool) cache.Cache {
	if noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache()
	}

	if url := redisURL(c.Config); url != "" {
		rc, err := cache.NewRedisCache(cmd.Context(), url)
		if err == nil {
			return rc
		}
		c.Logger.Warnf("redis cache unavailable, falling back to files: %v", err)
	}

	dir := c.Config.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache()
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warnf("file cache unavailable, caching disabled: %v", err)
		return cache.NewNullCache()
	}
	return fc
}

// redisURL returns the redis cache URL from config or environment.
// CRAFTVIZ_REDIS takes precedence.
func redisURL(cfg config.Config) string {
	if url := os.Getenv("CRAFTVIZ_REDIS"); url != "" {
		return url
	}
	return cfg.Cache.Redis
}

// cacheDir returns the cache directory using XDG standard (~/.cache/craftviz/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
