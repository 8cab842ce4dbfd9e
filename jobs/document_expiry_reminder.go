package jobs

import (
	"context"
	"fmt"

	"github.com/ryantriananda/fms/core/reminder"
	"github.com/ryantriananda/fms/domain"
)

type DocumentExpiryReminderConfig struct {
	DryRun bool `mapstructure:"dry_run"`

	// MinSeverityRank is the least severe classification that still gets a
	// reminder. Defaults to the fine table's warning tier.
	MinSeverityRank int `mapstructure:"min_severity_rank"`
}

func (h *handler) DocumentExpiryReminder(ctx context.Context, c Config) error {
	h.logger.Info(ctx, "running document expiry reminder job")

	var cfg DocumentExpiryReminderConfig
	if err := c.Decode(&cfg); err != nil {
		return fmt.Errorf("invalid config for %s job: %w", TypeDocumentExpiryReminder, err)
	}

	table := reminder.FineThresholds()
	if cfg.MinSeverityRank == 0 {
		warning, err := reminder.Classify(90, table)
		if err != nil {
			return err
		}
		cfg.MinSeverityRank = warning.SeverityRank
	}

	statuses, err := h.reminderService.ListStatuses(ctx, nil, table)
	if err != nil {
		return fmt.Errorf("listing document statuses: %w", err)
	}
	h.logger.Info(ctx, "retrieved document statuses", "count", len(statuses))

	var notifications []domain.Notification
	for _, status := range statuses {
		if status.Classification.SeverityRank < cfg.MinSeverityRank {
			continue
		}

		h.logger.Info(ctx, "preparing notification",
			"document", status.Document.Name,
			"to", status.Document.Owner,
			"label", status.Classification.Label,
			"days_remaining", status.DaysRemaining,
		)
		notifications = append(notifications, domain.Notification{
			User: status.Document.Owner,
			Message: domain.NotificationMessage{
				Type: domain.NotificationTypeDocumentExpiryReminder,
				Variables: map[string]interface{}{
					"document_id":    status.Document.ID,
					"document_name":  status.Document.Name,
					"label":          status.Classification.Label,
					"days_remaining": status.DaysRemaining,
				},
			},
		})
	}

	if cfg.DryRun {
		h.logger.Info(ctx, "dry run enabled, not sending notifications", "count", len(notifications))
		return nil
	}

	if errs := h.notifier.Notify(ctx, notifications); errs != nil {
		for _, e := range errs {
			h.logger.Error(ctx, "failed to send notifications", "error", e)
		}
	}

	h.logger.Info(ctx, "document expiry notifications sent", "count", len(notifications))
	return nil
}
