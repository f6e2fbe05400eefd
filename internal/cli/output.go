package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/youtrack-tools/yt/internal/app"
	"gopkg.in/yaml.v3"
)

// outputFlags holds the shared --json / --yaml switches. The default is a
// tab-aligned table.
type outputFlags struct {
	JSON bool
	YAML bool
}

func addOutputFlags(cmd *cobra.Command, f *outputFlags) {
	cmd.Flags().BoolVar(&f.JSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&f.YAML, "yaml", false, "Output as YAML")
}

// renderStructured writes v as JSON or YAML if either flag is set. The
// boolean reports whether output was handled.
func (f outputFlags) renderStructured(w io.Writer, v any) (bool, error) {
	switch {
	case f.JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case f.YAML:
		return true, yaml.NewEncoder(w).Encode(v)
	}
	return false, nil
}

// table runs fn against a tabwriter and flushes it.
func table(w io.Writer, fn func(tw *tabwriter.Writer)) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fn(tw)
	return tw.Flush()
}

// resolveProject picks the project from the flag or the [defaults] table.
func resolveProject(c *app.Container, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if cfg, err := c.Config(); err == nil && cfg.DefaultProject != "" {
		return cfg.DefaultProject, nil
	}
	return "", errors.New("project is required (--project flag or [defaults] project in config)")
}

// truncate shortens s to max runes for table cells.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// printRawJSON pretty-prints a raw JSON payload.
func printRawJSON(w io.Writer, raw json.RawMessage) error {
	var buf any
	if err := json.Unmarshal(raw, &buf); err != nil {
		// Not JSON after all; print as-is.
		_, werr := fmt.Fprintln(w, string(raw))
		return werr
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buf)
}
