package youtrack

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the credentials file looked up in the user's home
// directory.
const ConfigFileName = ".youtrack.toml"

// Environment variables overriding the config file.
const (
	EnvBaseURL = "YOUTRACK_BASE_URL"
	EnvToken   = "YOUTRACK_TOKEN"
)

// Config validation errors.
var (
	ErrMissingBaseURL = errors.New("youtrack: base_url is not configured")
	ErrMissingToken   = errors.New("youtrack: token is not configured")
)

// Config holds credentials and CLI defaults loaded from .youtrack.toml.
type Config struct {
	BaseURL string // [youtrack] base_url
	Token   string // [youtrack] token (perm:... format)

	DefaultProject string // [defaults] project
	LogLevel       string // [log] level

	// Warnings collects unknown keys and sections found while parsing.
	Warnings []string
}

// DefaultConfigPath returns ~/.youtrack.toml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ConfigFileName), nil
}

// LoadConfig reads a config file and applies environment overrides
// (YOUTRACK_BASE_URL, YOUTRACK_TOKEN). A missing file is not an error when
// the environment supplies both credentials; otherwise the os.ErrNotExist
// is returned wrapped.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		parsed, perr := parseConfig(data)
		if perr != nil {
			return nil, fmt.Errorf("parse %s: %w", path, perr)
		}
		cfg = parsed
	case errors.Is(err, os.ErrNotExist):
		if os.Getenv(EnvBaseURL) == "" || os.Getenv(EnvToken) == "" {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		cfg.Token = v
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

// Validate checks that the config is usable for API calls.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("youtrack: base_url %q is not a valid http(s) URL", c.BaseURL)
	}
	if c.Token == "" {
		return ErrMissingToken
	}
	return nil
}

// FromConfig builds a Client from ~/.youtrack.toml (plus environment
// overrides).
func FromConfig(opts ...Option) (*Client, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return FromConfigFile(path, opts...)
}

// FromConfigFile builds a Client from the given config file.
func FromConfigFile(path string, opts ...Option) (*Client, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return New(cfg.BaseURL, cfg.Token, opts...), nil
}

// parseConfig converts raw TOML into a Config, collecting warnings for
// unknown keys instead of failing on them.
func parseConfig(data []byte) (*Config, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	cfg := &Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}
		switch section {
		case "youtrack":
			for k, v := range m {
				switch k {
				case "base_url":
					if s, ok := v.(string); ok {
						cfg.BaseURL = s
					}
				case "token":
					if s, ok := v.(string); ok {
						cfg.Token = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [youtrack]: %s", k))
				}
			}
		case "defaults":
			for k, v := range m {
				switch k {
				case "project":
					if s, ok := v.(string); ok {
						cfg.DefaultProject = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [defaults]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						cfg.LogLevel = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	cfg.Warnings = warnings
	return cfg, nil
}
