// Package cli provides the command-line interface for yt.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/youtrack-tools/yt/internal/app"
	"github.com/youtrack-tools/yt/internal/tui"
)

// Command group IDs.
const (
	groupIssues = "issues"
	groupAgile  = "agile"
	groupTime   = "time"
	groupLookup = "lookup"
	groupSetup  = "setup"
)

// launchBrowserFunc launches the interactive issue browser. A variable so
// tests can stub it out.
var launchBrowserFunc = tui.Run

// NewRootCommand creates the root command for yt.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "yt",
		Short: "YouTrack from the command line",
		Long: `yt talks to the YouTrack REST API: list, create and update issues,
add comments, log spent time, manage agile boards and sprints, link
issues, and run queries and commands.

Credentials are read from ~/.youtrack.toml ([youtrack] table with
base_url and token) or the YOUTRACK_BASE_URL / YOUTRACK_TOKEN
environment variables. Run 'yt config init' to create the file.

Running yt with no arguments opens an interactive issue browser.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if verbose {
				c.SetVerbose()
			}
			// Surface config warnings (unknown keys) without failing.
			if cfg, err := c.Config(); err == nil {
				for _, w := range cfg.Warnings {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
				}
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchBrowserFunc(c)
		},
	}

	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "Path to config file (default ~/.youtrack.toml)")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging of API requests")

	root.AddGroup(
		&cobra.Group{ID: groupIssues, Title: "Issues:"},
		&cobra.Group{ID: groupAgile, Title: "Agile Boards:"},
		&cobra.Group{ID: groupTime, Title: "Time Tracking:"},
		&cobra.Group{ID: groupLookup, Title: "Directory:"},
		&cobra.Group{ID: groupSetup, Title: "Setup:"},
	)

	issueCmd := newIssueCommand(c)
	issueCmd.GroupID = groupIssues

	commentCmd := newCommentCommand(c)
	commentCmd.GroupID = groupIssues

	queryCmd := newQueryCommand(c)
	queryCmd.GroupID = groupIssues

	commandCmd := newCommandCommand(c)
	commandCmd.GroupID = groupIssues

	boardCmd := newBoardCommand(c)
	boardCmd.GroupID = groupAgile

	sprintCmd := newSprintCommand(c)
	sprintCmd.GroupID = groupAgile

	storyCmd := newStoryCommand(c)
	storyCmd.GroupID = groupAgile

	timeCmd := newTimeCommand(c)
	timeCmd.GroupID = groupTime

	projectCmd := newProjectCommand(c)
	projectCmd.GroupID = groupLookup

	userCmd := newUserCommand(c)
	userCmd.GroupID = groupLookup

	fieldCmd := newFieldCommand(c)
	fieldCmd.GroupID = groupLookup

	workflowCmd := newWorkflowCommand(c)
	workflowCmd.GroupID = groupLookup

	linkTypeCmd := newLinkTypeCommand(c)
	linkTypeCmd.GroupID = groupLookup

	calendarCmd := newCalendarCommand(c)
	calendarCmd.GroupID = groupLookup

	reportCmd := newReportCommand(c)
	reportCmd.GroupID = groupLookup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	browseCmd := newBrowseCommand(c)
	browseCmd.GroupID = groupIssues

	root.AddCommand(
		issueCmd,
		commentCmd,
		queryCmd,
		commandCmd,
		boardCmd,
		sprintCmd,
		storyCmd,
		timeCmd,
		projectCmd,
		userCmd,
		fieldCmd,
		workflowCmd,
		linkTypeCmd,
		calendarCmd,
		reportCmd,
		configCmd,
		browseCmd,
	)

	return root
}

// newBrowseCommand opens the interactive issue browser explicitly.
func newBrowseCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse issues interactively",
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchBrowserFunc(c)
		},
	}
}
