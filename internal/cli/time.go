package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/youtrack-tools/yt/internal/app"
	"github.com/youtrack-tools/yt/youtrack"
)

// newTimeCommand creates the time tracking command and its subcommands.
func newTimeCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Track time spent on issues",
	}

	cmd.AddCommand(
		newTimeLogCommand(c),
		newTimeSpentCommand(c),
		newTimeListCommand(c),
		newTimeTypesCommand(c),
	)
	return cmd
}

func newTimeLogCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Minutes     int
		TypeID      string
		Description string
	}

	cmd := &cobra.Command{
		Use:   "log <issue>",
		Short: "Log spent time on an issue",
		Example: `  yt time log DEMO-1 --minutes 90 -m "code review"
  yt time log DEMO-1 --minutes 30 --type 55-1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			item, err := client.AddSpentTime(cmd.Context(), args[0], opts.Minutes, opts.TypeID, opts.Description)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged %dm on %s (work item %s)\n",
				item.Duration.Minutes, args[0], item.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Minutes, "minutes", 0, "Time spent in minutes (required)")
	cmd.Flags().StringVar(&opts.TypeID, "type", "", "Work item type ID (see 'yt time types')")
	cmd.Flags().StringVarP(&opts.Description, "message", "m", "", "Work item description")
	_ = cmd.MarkFlagRequired("minutes")
	return cmd
}

func newTimeSpentCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spent <issue>",
		Short: "Show total time spent on an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			total, err := client.TimeSpent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Total time spent on %s: %dm (%s)\n",
				args[0], total, formatMinutes(total))
			return nil
		},
	}
	return cmd
}

func newTimeListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Project string
		Top     int
		Skip    int
	}
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work items logged in a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			project, err := resolveProject(c, opts.Project)
			if err != nil {
				return err
			}
			client, err := c.Client()
			if err != nil {
				return err
			}

			issues, err := client.ListWorkItems(cmd.Context(), project,
				youtrack.ListOptions{Top: opts.Top, Skip: opts.Skip})
			if err != nil {
				return err
			}

			if handled, err := out.renderStructured(cmd.OutOrStdout(), issues); handled {
				return err
			}
			return table(cmd.OutOrStdout(), func(tw *tabwriter.Writer) {
				_, _ = fmt.Fprintln(tw, "ISSUE\tDATE\tAUTHOR\tDURATION\tDESCRIPTION")
				for _, issue := range issues {
					for _, wi := range issue.WorkItems {
						author := ""
						if wi.Author != nil {
							author = wi.Author.Login
						}
						date := time.UnixMilli(wi.Date).Format("2006-01-02")
						_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
							issue.ID, date, author,
							formatMinutes(wi.Duration.Minutes),
							truncate(wi.Description, 50))
					}
				}
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Project, "project", "p", "", "Project ID or short name")
	cmd.Flags().IntVar(&opts.Top, "top", 0, "Max issues to return (default 20)")
	cmd.Flags().IntVar(&opts.Skip, "skip", 0, "Issues to skip")
	addOutputFlags(cmd, &out)
	return cmd
}

func newTimeTypesCommand(c *app.Container) *cobra.Command {
	var project string
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List work item types allowed in a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectID, err := resolveProject(c, project)
			if err != nil {
				return err
			}
			client, err := c.Client()
			if err != nil {
				return err
			}

			types, err := client.ListWorkItemTypes(cmd.Context(), projectID)
			if err != nil {
				return err
			}

			if handled, err := out.renderStructured(cmd.OutOrStdout(), types); handled {
				return err
			}
			return table(cmd.OutOrStdout(), func(tw *tabwriter.Writer) {
				_, _ = fmt.Fprintln(tw, "ID\tNAME")
				for _, wt := range types {
					name := wt.Name
					if wt.LocalizedName != "" {
						name = wt.LocalizedName
					}
					_, _ = fmt.Fprintf(tw, "%s\t%s\n", wt.ID, name)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Project ID or short name")
	addOutputFlags(cmd, &out)
	return cmd
}

// formatMinutes renders minutes as 1h30m style.
func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh%dm", minutes/60, minutes%60)
}
