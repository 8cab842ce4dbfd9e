package jobs

import (
	"context"
	"fmt"

	"github.com/ryantriananda/fms/core/workflow"
	"github.com/ryantriananda/fms/domain"
)

type approverWorkload struct {
	pending int
	overdue int
}

func (h *handler) PendingApprovalsReminder(ctx context.Context, _ Config) error {
	h.logger.Info(ctx, "running pending approvals reminder job")

	records, err := h.workflowService.Find(ctx, &domain.ListRecordsFilter{
		Statuses: []string{domain.ApprovalStatusPending},
	})
	if err != nil {
		return fmt.Errorf("listing pending records: %w", err)
	}
	h.logger.Info(ctx, "retrieved pending records", "count", len(records))

	now := h.timeNow()
	workloads := map[string]*approverWorkload{}
	for _, record := range records {
		active, ok := workflow.ActiveStep(record.Steps)
		if !ok {
			continue
		}

		w := workloads[active.Role]
		if w == nil {
			w = &approverWorkload{}
			workloads[active.Role] = w
		}
		w.pending++
		if record.SubmittedAt != nil && active.IsPastSLA(*record.SubmittedAt, now) {
			w.overdue++
		}
	}

	var notifications []domain.Notification
	for approver, w := range workloads {
		h.logger.Info(ctx, "preparing notification", "pending approvals count", w.pending, "to", approver)
		notifications = append(notifications, domain.Notification{
			User: approver,
			Message: domain.NotificationMessage{
				Type: domain.NotificationTypePendingApprovalsReminder,
				Variables: map[string]interface{}{
					"pending_approvals_count": w.pending,
					"overdue_count":           w.overdue,
				},
			},
		})
	}

	if errs := h.notifier.Notify(ctx, notifications); errs != nil {
		for _, e := range errs {
			h.logger.Error(ctx, "failed to send notifications", "error", e)
		}
	}

	h.logger.Info(ctx, "pending approvals notifications sent")
	return nil
}
