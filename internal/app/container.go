// Package app provides the dependency injection container for the yt CLI.
package app

import (
	"log/slog"
	"os"

	"github.com/youtrack-tools/yt/youtrack"
)

// Container wires configuration and the API client for the CLI commands.
// The config file is read lazily so commands that never talk to the server
// (config init, help) work without credentials.
type Container struct {
	// ConfigPath overrides the default ~/.youtrack.toml location when set
	// (--config flag).
	ConfigPath string

	Logger *slog.Logger

	cfg    *youtrack.Config
	client *youtrack.Client
}

// New creates a Container with the default logger.
func New() *Container {
	return &Container{
		Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		})),
	}
}

// NewWithDeps creates a Container with pre-built dependencies. Used by
// tests to inject a client pointed at a fake server.
func NewWithDeps(cfg *youtrack.Config, client *youtrack.Client, logger *slog.Logger) *Container {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
	}
	return &Container{cfg: cfg, client: client, Logger: logger}
}

// SetVerbose switches the logger to debug level (--verbose flag).
func (c *Container) SetVerbose() {
	c.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	// Rebuild the client on next use so it picks up the new logger.
	c.client = nil
}

// ResolveConfigPath returns the effective config file path.
func (c *Container) ResolveConfigPath() (string, error) {
	if c.ConfigPath != "" {
		return c.ConfigPath, nil
	}
	return youtrack.DefaultConfigPath()
}

// Config loads and caches the configuration.
func (c *Container) Config() (*youtrack.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path, err := c.ResolveConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := youtrack.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// Client returns a cached API client built from the configuration.
func (c *Container) Client() (*youtrack.Client, error) {
	if c.client != nil {
		return c.client, nil
	}
	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c.client = youtrack.New(cfg.BaseURL, cfg.Token, youtrack.WithLogger(c.Logger))
	return c.client, nil
}
