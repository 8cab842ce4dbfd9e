package cli

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/ryantriananda/fms/internal/server"
	"github.com/ryantriananda/fms/jobs"
	"github.com/ryantriananda/fms/pkg/log"
	"github.com/ryantriananda/fms/plugins/notifiers"
)

func JobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "job",
		Aliases: []string{"jobs"},
		Short:   "Manage jobs",
		Example: heredoc.Doc(`
			$ fms job run document_expiry_reminder
		`),
	}

	cmd.AddCommand(
		runJobCmd(),
	)

	cmd.PersistentFlags().StringP("config", "c", "./config.yaml", "Config file path")
	cmd.MarkPersistentFlagFilename("config")

	return cmd
}

func runJobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fire a specific job",
		Example: heredoc.Doc(`
			$ fms job run document_expiry_reminder
			$ fms job run pending_approvals_reminder
		`),
		Args: cobra.ExactValidArgs(1),
		ValidArgs: []string{
			string(jobs.TypeDocumentExpiryReminder),
			string(jobs.TypePendingApprovalsReminder),
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, err := cmd.Flags().GetString("config")
			if err != nil {
				return fmt.Errorf("getting config flag value: %w", err)
			}
			config, err := server.LoadConfig(configFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			logger := log.NewCtxLogger(config.LogLevel, nil)
			v := validator.New()
			notifier, err := notifiers.NewClient(&config.Notifier, logger)
			if err != nil {
				return err
			}

			services, err := server.InitServices(server.ServiceDeps{
				Config:    &config,
				Logger:    logger,
				Validator: v,
				Notifier:  notifier,
			})
			if err != nil {
				return fmt.Errorf("initializing services: %w", err)
			}

			handler := jobs.NewHandler(
				logger,
				services.WorkflowService,
				services.ReminderService,
				notifier,
			)

			jobsMap := map[jobs.Type]func(context.Context, jobs.Config) error{
				jobs.TypeDocumentExpiryReminder:   handler.DocumentExpiryReminder,
				jobs.TypePendingApprovalsReminder: handler.PendingApprovalsReminder,
			}

			jobName := jobs.Type(args[0])
			job := jobsMap[jobName]
			if job == nil {
				return fmt.Errorf("invalid job name: %s", jobName)
			}
			jobConfig := config.Jobs[jobName].Config
			if err := job(context.Background(), jobConfig); err != nil {
				return fmt.Errorf(`failed to run job "%s": %w`, jobName, err)
			}

			return nil
		},
	}

	return cmd
}
