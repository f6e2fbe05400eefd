package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/youtrack-tools/yt/internal/app"
	"github.com/youtrack-tools/yt/youtrack"
)

// newIssueCommand creates the issue command and its subcommands.
func newIssueCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Work with issues",
	}

	cmd.AddCommand(
		newIssueListCommand(c),
		newIssueCreateCommand(c),
		newIssueShowCommand(c),
		newIssueUpdateCommand(c),
		newIssueSearchCommand(c),
		newIssueTransitionCommand(c),
		newIssueHistoryCommand(c),
		newIssueAttachCommand(c),
		newIssueLinkCommand(c),
		newIssueLinksCommand(c),
	)
	return cmd
}

func printIssueTable(tw *tabwriter.Writer, issues []youtrack.Issue) {
	_, _ = fmt.Fprintln(tw, "ID\tSUMMARY")
	for _, issue := range issues {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", issue.ID, truncate(issue.Summary, 80))
	}
}

func newIssueListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Project string
		Query   string
		Top     int
		Skip    int
	}
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues in a project",
		Example: `  yt issue list --project DEMO
  yt issue list --project DEMO --query "#Unresolved assignee: me"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			project, err := resolveProject(c, opts.Project)
			if err != nil {
				return err
			}
			client, err := c.Client()
			if err != nil {
				return err
			}

			issues, err := client.ListIssues(cmd.Context(), project, opts.Query,
				youtrack.ListOptions{Top: opts.Top, Skip: opts.Skip})
			if err != nil {
				return err
			}

			if handled, err := out.renderStructured(cmd.OutOrStdout(), issues); handled {
				return err
			}
			return table(cmd.OutOrStdout(), func(tw *tabwriter.Writer) {
				printIssueTable(tw, issues)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Project, "project", "p", "", "Project ID or short name")
	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "YouTrack query string")
	cmd.Flags().IntVar(&opts.Top, "top", 0, "Max results to return (default 20)")
	cmd.Flags().IntVar(&opts.Skip, "skip", 0, "Results to skip")
	addOutputFlags(cmd, &out)
	return cmd
}

func newIssueCreateCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Project     string
		Summary     string
		Description string
		Points      int
	}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new issue",
		Example: `  yt issue create --project DEMO --summary "Crash on save"
  yt issue create --project DEMO --summary "New feature" --points 5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			project, err := resolveProject(c, opts.Project)
			if err != nil {
				return err
			}
			client, err := c.Client()
			if err != nil {
				return err
			}

			params := youtrack.CreateIssueParams{
				ProjectID:   project,
				Summary:     opts.Summary,
				Description: opts.Description,
			}
			if cmd.Flags().Changed("points") {
				params.StoryPoints = &opts.Points
			}

			issue, err := client.CreateIssue(cmd.Context(), params)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created issue %s\n", issue.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Project, "project", "p", "", "Project ID or short name")
	cmd.Flags().StringVarP(&opts.Summary, "summary", "s", "", "Issue summary/title (required)")
	cmd.Flags().StringVarP(&opts.Description, "body", "b", "", "Issue description")
	cmd.Flags().IntVar(&opts.Points, "points", 0, "Story points value")
	_ = cmd.MarkFlagRequired("summary")
	return cmd
}

func newIssueShowCommand(c *app.Container) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "show <issue>",
		Short: "Show details of an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			issue, err := client.GetIssue(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if handled, err := out.renderStructured(cmd.OutOrStdout(), issue); handled {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s: %s\n", issue.ID, issue.Summary)
			if issue.Project != nil {
				_, _ = fmt.Fprintf(w, "Project: %s (%s)\n", issue.Project.Name, issue.Project.ID)
			}
			if issue.Description != "" {
				_, _ = fmt.Fprintf(w, "\n%s\n", issue.Description)
			}
			return nil
		},
	}

	addOutputFlags(cmd, &out)
	return cmd
}

func newIssueUpdateCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Summary     string
		Description string
		Points      int
	}

	cmd := &cobra.Command{
		Use:   "update <issue>",
		Short: "Update an existing issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			var params youtrack.UpdateIssueParams
			if cmd.Flags().Changed("summary") {
				params.Summary = &opts.Summary
			}
			if cmd.Flags().Changed("body") {
				params.Description = &opts.Description
			}
			if cmd.Flags().Changed("points") {
				params.CustomFields = map[string]any{
					"Story points": map[string]any{"value": opts.Points},
				}
			}

			issue, err := client.UpdateIssue(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated issue %s\n", issue.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Summary, "summary", "s", "", "New summary")
	cmd.Flags().StringVarP(&opts.Description, "body", "b", "", "New description")
	cmd.Flags().IntVar(&opts.Points, "points", 0, "Story points value")
	return cmd
}

func newIssueSearchCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Top  int
		Skip int
	}
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search issues with a YouTrack query",
		Example: `  yt issue search "for: me #Unresolved"
  yt issue search "project: DEMO State: Open" --top 50`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			issues, err := client.SearchIssues(cmd.Context(), args[0],
				youtrack.ListOptions{Top: opts.Top, Skip: opts.Skip})
			if err != nil {
				return err
			}

			if handled, err := out.renderStructured(cmd.OutOrStdout(), issues); handled {
				return err
			}
			return table(cmd.OutOrStdout(), func(tw *tabwriter.Writer) {
				printIssueTable(tw, issues)
			})
		},
	}

	cmd.Flags().IntVar(&opts.Top, "top", 0, "Max results to return (default 20)")
	cmd.Flags().IntVar(&opts.Skip, "skip", 0, "Results to skip")
	addOutputFlags(cmd, &out)
	return cmd
}

func newIssueTransitionCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Field string
		State string
	}

	cmd := &cobra.Command{
		Use:   "transition <issue>",
		Short: "Move an issue to a new workflow state",
		Example: `  yt issue transition DEMO-1 --state "In Progress"
  yt issue transition DEMO-1 --field "Release Status" --state Shipped`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			if _, err := client.TransitionIssue(cmd.Context(), args[0], opts.Field, opts.State); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Transitioned %s: %s -> %s\n", args[0], opts.Field, opts.State)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Field, "field", "State", "State custom field name")
	cmd.Flags().StringVar(&opts.State, "state", "", "New state value (required)")
	_ = cmd.MarkFlagRequired("state")
	return cmd
}

func newIssueHistoryCommand(c *app.Container) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "history <issue>",
		Short: "Show the change history of an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			activities, err := client.IssueHistory(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if handled, err := out.renderStructured(cmd.OutOrStdout(), activities); handled {
				return err
			}
			return table(cmd.OutOrStdout(), func(tw *tabwriter.Writer) {
				_, _ = fmt.Fprintln(tw, "TIME\tAUTHOR\tID")
				for _, a := range activities {
					author := ""
					if a.Author != nil {
						author = a.Author.Login
					}
					ts := time.UnixMilli(a.Timestamp).Format("2006-01-02 15:04")
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", ts, author, a.ID)
				}
			})
		},
	}

	addOutputFlags(cmd, &out)
	return cmd
}

func newIssueAttachCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attach <issue> <file>",
		Short: "Attach a file to an issue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			att, err := client.AttachFile(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Attached %s (%s)\n", att.Name, att.ID)
			return nil
		},
	}
	return cmd
}

func newIssueLinkCommand(c *app.Container) *cobra.Command {
	var linkType string

	cmd := &cobra.Command{
		Use:   "link <source-issue> <target-issue>",
		Short: "Link two issues",
		Example: `  yt issue link DEMO-1 DEMO-2 --type 105-1
  yt linktype list   # to discover link type IDs`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			if err := client.AddIssueLink(cmd.Context(), args[0], args[1], linkType); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Linked %s -> %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&linkType, "type", "", "Link type ID (required)")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newIssueLinksCommand(c *app.Container) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "links <issue>",
		Short: "List the links of an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			links, err := client.IssueLinks(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if handled, err := out.renderStructured(cmd.OutOrStdout(), links); handled {
				return err
			}
			return table(cmd.OutOrStdout(), func(tw *tabwriter.Writer) {
				_, _ = fmt.Fprintln(tw, "TYPE\tDIRECTION\tISSUE\tSUMMARY")
				for _, link := range links {
					name := ""
					if link.LinkType != nil {
						name = link.LinkType.Name
					}
					for _, issue := range link.Issues {
						_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
							name, link.Direction, issue.ID, truncate(issue.Summary, 60))
					}
				}
			})
		},
	}

	addOutputFlags(cmd, &out)
	return cmd
}
