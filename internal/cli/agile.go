package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/youtrack-tools/yt/internal/app"
)

// newBoardCommand creates the board command.
func newBoardCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Work with agile boards",
	}
	cmd.AddCommand(newBoardListCommand(c))
	return cmd
}

func newBoardListCommand(c *app.Container) *cobra.Command {
	var project string
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List agile boards",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			boards, err := client.ListBoards(cmd.Context(), project)
			if err != nil {
				return err
			}

			if handled, err := out.renderStructured(cmd.OutOrStdout(), boards); handled {
				return err
			}
			return table(cmd.OutOrStdout(), func(tw *tabwriter.Writer) {
				_, _ = fmt.Fprintln(tw, "ID\tNAME\tPROJECTS")
				for _, b := range boards {
					names := ""
					for i, p := range b.Projects {
						if i > 0 {
							names += ", "
						}
						names += p.Name
					}
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", b.ID, b.Name, names)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Only boards containing this project ID")
	addOutputFlags(cmd, &out)
	return cmd
}

// newSprintCommand creates the sprint command.
func newSprintCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sprint",
		Short: "Work with sprints",
	}
	cmd.AddCommand(
		newSprintListCommand(c),
		newSprintAddIssueCommand(c),
		newSprintAddStoryCommand(c),
	)
	return cmd
}

func newSprintListCommand(c *app.Container) *cobra.Command {
	var board string
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sprints on a board",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			sprints, err := client.ListSprints(cmd.Context(), board)
			if err != nil {
				return err
			}

			if handled, err := out.renderStructured(cmd.OutOrStdout(), sprints); handled {
				return err
			}
			return table(cmd.OutOrStdout(), func(tw *tabwriter.Writer) {
				_, _ = fmt.Fprintln(tw, "ID\tNAME\tSTART\tFINISH\tARCHIVED")
				for _, s := range sprints {
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%v\n",
						s.ID, s.Name, formatSprintDate(s.Start), formatSprintDate(s.Finish), s.IsArchived)
				}
			})
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Agile board ID (required)")
	_ = cmd.MarkFlagRequired("board")
	addOutputFlags(cmd, &out)
	return cmd
}

func newSprintAddIssueCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Board  string
		Sprint string
	}

	cmd := &cobra.Command{
		Use:     "add-issue <issue>",
		Short:   "Add an issue to a sprint",
		Example: `  yt sprint add-issue DEMO-1 --board 100-1 --sprint 101-2`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			if err := client.AddIssueToSprint(cmd.Context(), opts.Board, opts.Sprint, args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s to sprint %s\n", args[0], opts.Sprint)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Board, "board", "", "Agile board ID (required)")
	cmd.Flags().StringVar(&opts.Sprint, "sprint", "", "Sprint ID (required)")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("sprint")
	return cmd
}

func newSprintAddStoryCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Board  string
		Sprint string
	}

	cmd := &cobra.Command{
		Use:   "add-story <user-story>",
		Short: "Add a user story (epic) to a sprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			if err := client.AddUserStoryToSprint(cmd.Context(), opts.Board, opts.Sprint, args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added story %s to sprint %s\n", args[0], opts.Sprint)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Board, "board", "", "Agile board ID (required)")
	cmd.Flags().StringVar(&opts.Sprint, "sprint", "", "Sprint ID (required)")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("sprint")
	return cmd
}

// newStoryCommand creates the story (epic) command.
func newStoryCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "story",
		Short: "Work with user stories (epics)",
	}
	cmd.AddCommand(
		newStoryListCommand(c),
		newStoryAddIssueCommand(c),
	)
	return cmd
}

func newStoryListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Board  string
		Sprint string
	}
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List user stories on a board",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			stories, err := client.ListUserStories(cmd.Context(), opts.Board, opts.Sprint)
			if err != nil {
				return err
			}

			if handled, err := out.renderStructured(cmd.OutOrStdout(), stories); handled {
				return err
			}
			return table(cmd.OutOrStdout(), func(tw *tabwriter.Writer) {
				printIssueTable(tw, stories)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Board, "board", "", "Agile board ID (required)")
	cmd.Flags().StringVar(&opts.Sprint, "sprint", "", "Only stories in this sprint ID")
	_ = cmd.MarkFlagRequired("board")
	addOutputFlags(cmd, &out)
	return cmd
}

func newStoryAddIssueCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Board string
		Story string
	}

	cmd := &cobra.Command{
		Use:     "add-issue <issue>",
		Short:   "Add an issue as a subtask of a user story",
		Example: `  yt story add-issue DEMO-5 --board 100-1 --story 2-10`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			if err := client.AddIssueToUserStory(cmd.Context(), opts.Board, opts.Story, args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s to story %s\n", args[0], opts.Story)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Board, "board", "", "Agile board ID (required)")
	cmd.Flags().StringVar(&opts.Story, "story", "", "User story (epic) ID (required)")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("story")
	return cmd
}

func formatSprintDate(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).Format("2006-01-02")
}
