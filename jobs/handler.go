package jobs

import (
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/ryantriananda/fms/core/reminder"
	"github.com/ryantriananda/fms/core/workflow"
	"github.com/ryantriananda/fms/pkg/log"
	"github.com/ryantriananda/fms/plugins/notifiers"
)

type Type string

const (
	TypeDocumentExpiryReminder   Type = "document_expiry_reminder"
	TypePendingApprovalsReminder Type = "pending_approvals_reminder"
)

// Config is the raw per-job configuration block from the config file.
type Config map[string]interface{}

func (c Config) Decode(v interface{}) error {
	return mapstructure.Decode(c, v)
}

type Job struct {
	Enabled bool   `mapstructure:"enabled"`
	Config  Config `mapstructure:"config"`
}

type handler struct {
	logger          log.Logger
	workflowService *workflow.Service
	reminderService *reminder.Service
	notifier        notifiers.Client

	timeNow func() time.Time
}

func NewHandler(
	logger log.Logger,
	workflowService *workflow.Service,
	reminderService *reminder.Service,
	notifier notifiers.Client,
) *handler {
	return &handler{
		logger:          logger,
		workflowService: workflowService,
		reminderService: reminderService,
		notifier:        notifier,
		timeNow:         time.Now,
	}
}
