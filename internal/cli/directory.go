package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/youtrack-tools/yt/internal/app"
	"github.com/youtrack-tools/yt/youtrack"
)

// newProjectCommand creates the project command.
func newProjectCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Work with projects",
	}
	cmd.AddCommand(newProjectListCommand(c))
	return cmd
}

func newProjectListCommand(c *app.Container) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			projects, err := client.ListProjects(cmd.Context())
			if err != nil {
				return err
			}

			if handled, err := out.renderStructured(cmd.OutOrStdout(), projects); handled {
				return err
			}
			return table(cmd.OutOrStdout(), func(tw *tabwriter.Writer) {
				_, _ = fmt.Fprintln(tw, "ID\tSHORT NAME\tNAME")
				for _, p := range projects {
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.ShortName, p.Name)
				}
			})
		},
	}

	addOutputFlags(cmd, &out)
	return cmd
}

// newUserCommand creates the user command.
func newUserCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Work with user accounts",
	}
	cmd.AddCommand(newUserListCommand(c))
	return cmd
}

func newUserListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Query string
		Top   int
		Skip  int
	}
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			users, err := client.ListUsers(cmd.Context(), opts.Query,
				youtrack.ListOptions{Top: opts.Top, Skip: opts.Skip})
			if err != nil {
				return err
			}

			if handled, err := out.renderStructured(cmd.OutOrStdout(), users); handled {
				return err
			}
			return table(cmd.OutOrStdout(), func(tw *tabwriter.Writer) {
				_, _ = fmt.Fprintln(tw, "ID\tLOGIN\tNAME\tEMAIL")
				for _, u := range users {
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Login, u.Name, u.Email)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "Filter by name, login, or email")
	cmd.Flags().IntVar(&opts.Top, "top", 0, "Max users to return (default 20)")
	cmd.Flags().IntVar(&opts.Skip, "skip", 0, "Users to skip")
	addOutputFlags(cmd, &out)
	return cmd
}

// newFieldCommand creates the field command.
func newFieldCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field",
		Short: "Work with project custom fields",
	}
	cmd.AddCommand(newFieldListCommand(c))
	return cmd
}

func newFieldListCommand(c *app.Container) *cobra.Command {
	var project string
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List custom fields attached to a project",
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

			fields, err := client.ListCustomFields(cmd.Context(), projectID)
			if err != nil {
				return err
			}

			if handled, err := out.renderStructured(cmd.OutOrStdout(), fields); handled {
				return err
			}
			return table(cmd.OutOrStdout(), func(tw *tabwriter.Writer) {
				_, _ = fmt.Fprintln(tw, "ID\tNAME\tTYPE")
				for _, f := range fields {
					valueType := ""
					if f.FieldType != nil {
						valueType = f.FieldType.ValueType
					}
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", f.ID, f.Name, valueType)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Project ID or short name")
	addOutputFlags(cmd, &out)
	return cmd
}

// newWorkflowCommand creates the workflow command.
func newWorkflowCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workflow",
		Short: "Work with workflows",
	}
	cmd.AddCommand(newWorkflowListCommand(c))
	return cmd
}

func newWorkflowListCommand(c *app.Container) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workflows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			workflows, err := client.ListWorkflows(cmd.Context())
			if err != nil {
				return err
			}

			if handled, err := out.renderStructured(cmd.OutOrStdout(), workflows); handled {
				return err
			}
			return table(cmd.OutOrStdout(), func(tw *tabwriter.Writer) {
				_, _ = fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
				for _, wf := range workflows {
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", wf.ID, wf.Name, truncate(wf.Description, 60))
				}
			})
		},
	}

	addOutputFlags(cmd, &out)
	return cmd
}

// newLinkTypeCommand creates the linktype command.
func newLinkTypeCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linktype",
		Short: "Work with issue link types",
	}
	cmd.AddCommand(newLinkTypeListCommand(c))
	return cmd
}

func newLinkTypeListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Issue   string
		Project string
	}
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issue link types",
		Long: `List issue link types available on the instance.

With --issue, list only the link types usable on that issue; with
--project, list those usable in that project.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Issue != "" && opts.Project != "" {
				return fmt.Errorf("--issue and --project are mutually exclusive")
			}
			client, err := c.Client()
			if err != nil {
				return err
			}

			var types []youtrack.LinkType
			switch {
			case opts.Issue != "":
				types, err = client.LinkTypesForIssue(cmd.Context(), opts.Issue)
			case opts.Project != "":
				types, err = client.LinkTypesForProject(cmd.Context(), opts.Project)
			default:
				types, err = client.ListLinkTypes(cmd.Context())
			}
			if err != nil {
				return err
			}

			if handled, err := out.renderStructured(cmd.OutOrStdout(), types); handled {
				return err
			}
			return table(cmd.OutOrStdout(), func(tw *tabwriter.Writer) {
				_, _ = fmt.Fprintln(tw, "ID\tNAME\tDIRECTED")
				for _, lt := range types {
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%v\n", lt.ID, lt.Name, lt.Directed)
				}
			})
		},
	}

	cmd.Flags().StringVar(&opts.Issue, "issue", "", "List link types usable on this issue")
	cmd.Flags().StringVarP(&opts.Project, "project", "p", "", "List link types usable in this project")
	addOutputFlags(cmd, &out)
	return cmd
}

// newCalendarCommand creates the calendar command.
func newCalendarCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Work with deadline calendars",
	}
	cmd.AddCommand(newCalendarListCommand(c))
	return cmd
}

func newCalendarListCommand(c *app.Container) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deadline calendars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			calendars, err := client.DeadlineCalendars(cmd.Context())
			if err != nil {
				return err
			}

			if handled, err := out.renderStructured(cmd.OutOrStdout(), calendars); handled {
				return err
			}
			return table(cmd.OutOrStdout(), func(tw *tabwriter.Writer) {
				_, _ = fmt.Fprintln(tw, "ID\tNAME")
				for _, cal := range calendars {
					_, _ = fmt.Fprintf(tw, "%s\t%s\n", cal.ID, cal.Name)
				}
			})
		},
	}

	addOutputFlags(cmd, &out)
	return cmd
}

// newReportCommand creates the report command.
func newReportCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Work with saved reports",
	}
	cmd.AddCommand(newReportRunCommand(c))
	return cmd
}

func newReportRunCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run <report-id>",
		Short:   "Execute a saved report and print the result",
		Example: `  yt report run 119-5`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			raw, err := client.RunReport(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRawJSON(cmd.OutOrStdout(), raw)
		},
	}
	return cmd
}
