package cli

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fms <command> <subcommand> [flags]",
		Short:         "Facility & fleet asset management core",
		Long:          heredoc.Doc(`Approval workflows and expiry reminders for facility and fleet assets.`),
		SilenceErrors: true,
		SilenceUsage:  true,
		Example: heredoc.Doc(`
			$ fms job run document_expiry_reminder
			$ fms workflow validate ./workflows.yaml
		`),
	}

	cmd.AddCommand(
		JobCmd(),
		WorkflowCmd(),
	)

	return cmd
}
