package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/youtrack-tools/yt/internal/app"
)

const configTemplate = `[youtrack]
base_url = "https://example.youtrack.cloud"
token = "perm:your-token-here"

# [defaults]
# project = "DEMO"

# [log]
# level = "warn"
`

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the yt configuration file",
	}
	cmd.AddCommand(
		newConfigShowCommand(c),
		newConfigSetCommand(c),
		newConfigInitCommand(c),
		newConfigPathCommand(c),
	)
	return cmd
}

func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration (token redacted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.Config()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "base_url = %q\n", cfg.BaseURL)
			_, _ = fmt.Fprintf(w, "token    = %q\n", redactToken(cfg.Token))
			if cfg.DefaultProject != "" {
				_, _ = fmt.Fprintf(w, "project  = %q\n", cfg.DefaultProject)
			}
			if cfg.LogLevel != "" {
				_, _ = fmt.Fprintf(w, "log      = %q\n", cfg.LogLevel)
			}
			return nil
		},
	}
}

func newConfigSetCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value and write it back to the config file.

Known keys: base_url, token, project, level.`,
		Example: `  yt config set base_url https://example.youtrack.cloud
  yt config set token perm:abc...
  yt config set project DEMO`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, key, err := configKey(args[0])
			if err != nil {
				return err
			}

			path, err := c.ResolveConfigPath()
			if err != nil {
				return err
			}

			raw := map[string]any{}
			if data, err := os.ReadFile(path); err == nil {
				if err := toml.Unmarshal(data, &raw); err != nil {
					return fmt.Errorf("parse %s: %w", path, err)
				}
			} else if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("read config %s: %w", path, err)
			}

			table, ok := raw[section].(map[string]any)
			if !ok {
				table = map[string]any{}
				raw[section] = table
			}
			table[key] = args[1]

			data, err := toml.Marshal(raw)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			if err := os.WriteFile(path, data, 0o600); err != nil {
				return fmt.Errorf("write config %s: %w", path, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", args[0], path)
			return nil
		},
	}
	return cmd
}

func newConfigInitCommand(c *app.Container) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file with placeholder values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := c.ResolveConfigPath()
			if err != nil {
				return err
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}
			if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
				return fmt.Errorf("write config %s: %w", path, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func newConfigPathCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := c.ResolveConfigPath()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// configKey maps a user-facing key to its TOML section and key.
func configKey(name string) (section, key string, err error) {
	switch name {
	case "base_url", "token":
		return "youtrack", name, nil
	case "project":
		return "defaults", name, nil
	case "level", "log.level":
		return "log", "level", nil
	}
	return "", "", fmt.Errorf("unknown config key %q (known: base_url, token, project, level)", name)
}

// redactToken keeps enough of the token to identify it without exposing it.
func redactToken(token string) string {
	if token == "" {
		return ""
	}
	const keep = 9 // "perm:" plus a few characters
	if len(token) <= keep {
		return "****"
	}
	return token[:keep] + "****"
}
