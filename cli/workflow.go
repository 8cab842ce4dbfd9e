package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/ryantriananda/fms/core/workflow"
)

func WorkflowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workflow",
		Short: "Manage approval workflow configurations",
		Example: heredoc.Doc(`
			$ fms workflow validate ./workflows.yaml
		`),
	}

	cmd.AddCommand(
		validateWorkflowCmd(),
	)

	return cmd
}

func validateWorkflowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a workflow configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := workflow.NewRegistry(validator.New())
			if err != nil {
				return err
			}
			if err := registry.LoadFile(args[0]); err != nil {
				return err
			}

			fmt.Printf("%s is valid\n", args[0])
			return nil
		},
	}
}
