package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/youtrack-tools/yt/internal/app"
)

// newCommentCommand creates the comment command.
func newCommentCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Work with issue comments",
	}
	cmd.AddCommand(newCommentAddCommand(c))
	return cmd
}

func newCommentAddCommand(c *app.Container) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:     "add <issue>",
		Short:   "Add a comment to an issue",
		Example: `  yt comment add DEMO-1 -m "Reproduced on 2024.1"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.Client()
			if err != nil {
				return err
			}

			comment, err := client.AddComment(cmd.Context(), args[0], message)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added comment %s\n", comment.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Comment text (required)")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}
