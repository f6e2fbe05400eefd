package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/youtrack-tools/yt/internal/app"
	"github.com/youtrack-tools/yt/youtrack"
)

// newQueryCommand creates the query command. Unlike 'issue search' it
// returns the raw API response, so --fields can pull any attribute.
func newQueryCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Fields string
		Top    int
		Skip   int
	}

	cmd := &cobra.Command{
		Use:   "query <query>",
		Short: "Run a raw search query and print the JSON response",
		Example: `  yt query "project:DEMO #Unresolved"
  yt query "assignee: me" --fields id,summary,customFields(name,value(name))`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			raw, err := client.RunQuery(cmd.Context(), args[0], opts.Fields,
				youtrack.ListOptions{Top: opts.Top, Skip: opts.Skip})
			if err != nil {
				return err
			}
			return printRawJSON(cmd.OutOrStdout(), raw)
		},
	}

	cmd.Flags().StringVar(&opts.Fields, "fields", "", "Fields selector (default id,summary,description)")
	cmd.Flags().IntVar(&opts.Top, "top", 0, "Max issues to return (default 20)")
	cmd.Flags().IntVar(&opts.Skip, "skip", 0, "Issues to skip")
	return cmd
}

// newCommandCommand creates the command command, which applies a YouTrack
// command-language string to an issue.
func newCommandCommand(c *app.Container) *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "command <issue> <command>",
		Short: "Apply a YouTrack command to an issue",
		Example: `  yt command DEMO-1 "State Fixed"
  yt command DEMO-1 "assignee jane priority Critical" --comment "triaged"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			if _, err := client.RunCommand(cmd.Context(), args[0], args[1], comment); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Applied %q to %s\n", args[1], args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "Comment to attach alongside the command")
	return cmd
}
