package server

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ryantriananda/fms/core/reminder"
	"github.com/ryantriananda/fms/core/workflow"
	"github.com/ryantriananda/fms/internal/store/inmemory"
	"github.com/ryantriananda/fms/pkg/audit"
	"github.com/ryantriananda/fms/pkg/log"
	"github.com/ryantriananda/fms/plugins/notifiers"
)

type Services struct {
	WorkflowService *workflow.Service
	ReminderService *reminder.Service
}

type ServiceDeps struct {
	Config    *Config
	Logger    log.Logger
	Validator *validator.Validate
	Notifier  notifiers.Client
}

// InitServices wires repositories and services. Storage is in-memory; the
// console this core serves keeps all data as mock arrays.
func InitServices(deps ServiceDeps) (*Services, error) {
	registry, err := workflow.NewRegistry(deps.Validator)
	if err != nil {
		return nil, fmt.Errorf("initializing workflow registry: %w", err)
	}
	if deps.Config.WorkflowConfigFile != "" {
		if err := registry.LoadFile(deps.Config.WorkflowConfigFile); err != nil {
			return nil, fmt.Errorf("loading workflow config: %w", err)
		}
	}

	auditLogger := audit.NewLogAuditLogger(deps.Logger)

	workflowService := workflow.NewService(workflow.ServiceDeps{
		Repository:  inmemory.NewRecordRepository(),
		Registry:    registry,
		Notifier:    deps.Notifier,
		Validator:   deps.Validator,
		Logger:      deps.Logger,
		AuditLogger: auditLogger,
	})

	reminderService := reminder.NewService(reminder.ServiceDeps{
		Repository: inmemory.NewDocumentRepository(),
		Validator:  deps.Validator,
		Logger:     deps.Logger,
	})

	return &Services{
		WorkflowService: workflowService,
		ReminderService: reminderService,
	}, nil
}
