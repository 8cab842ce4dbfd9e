package workflow

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ryantriananda/fms/domain"
	"github.com/ryantriananda/fms/pkg/evaluator"
	"github.com/ryantriananda/fms/pkg/log"
	"github.com/ryantriananda/fms/plugins/notifiers"
)

const (
	AuditKeyCreate   = "record.create"
	AuditKeySubmit   = "record.submit"
	AuditKeyApprove  = "record.approve"
	AuditKeyReject   = "record.reject"
	AuditKeyRevise   = "record.revise"
	AuditKeyResubmit = "record.resubmit"
)

//go:generate mockery --name=repository --exported --with-expecter
type repository interface {
	Create(context.Context, *domain.Record) error
	Find(context.Context, *domain.ListRecordsFilter) ([]*domain.Record, error)
	GetByID(ctx context.Context, id string) (*domain.Record, error)
	Update(context.Context, *domain.Record) error
}

//go:generate mockery --name=notifier --exported --with-expecter
type notifier interface {
	notifiers.Client
}

//go:generate mockery --name=auditLogger --exported --with-expecter
type auditLogger interface {
	Log(ctx context.Context, action string, data interface{}) error
}

type ServiceDeps struct {
	Repository repository
	Registry   *Registry

	Notifier    notifier
	Validator   *validator.Validate
	Logger      log.Logger
	AuditLogger auditLogger
}

// Service handles the approval workflow of records
type Service struct {
	repo     repository
	registry *Registry

	notifier    notifier
	validator   *validator.Validate
	logger      log.Logger
	auditLogger auditLogger

	TimeNow func() time.Time
}

// NewService returns service struct
func NewService(deps ServiceDeps) *Service {
	return &Service{
		deps.Repository,
		deps.Registry,
		deps.Notifier,
		deps.Validator,
		deps.Logger,
		deps.AuditLogger,
		time.Now,
	}
}

// Create stores a new draft record. The workflow starts only on Submit.
func (s *Service) Create(ctx context.Context, record *domain.Record) error {
	if record.Title == "" {
		return fmt.Errorf("record title is required")
	}
	if record.CreatedBy == "" {
		return fmt.Errorf("record creator is required")
	}

	now := s.TimeNow()
	record.ID = uuid.New().String()
	record.Init()
	record.CreatedAt = now
	record.UpdatedAt = now

	if err := s.repo.Create(ctx, record); err != nil {
		return err
	}

	if err := s.auditLogger.Log(ctx, AuditKeyCreate, record); err != nil {
		s.logger.Error(ctx, "failed to record audit log", "error", err, "record_id", record.ID)
	}
	return nil
}

// GetByID returns one record by id
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Record, error) {
	if id == "" {
		return nil, ErrRecordIDEmptyParam
	}
	return s.repo.GetByID(ctx, id)
}

// Find records by filters
func (s *Service) Find(ctx context.Context, filter *domain.ListRecordsFilter) ([]*domain.Record, error) {
	if filter != nil {
		if err := s.validator.Struct(filter); err != nil {
			return nil, fmt.Errorf("invalid list records filter: %w", err)
		}
	}
	return s.repo.Find(ctx, filter)
}

// Submit builds the record's workflow steps from its module's tier
// configuration and moves the record into the approval flow. Tiers with a
// falsy When expression are created skipped.
func (s *Service) Submit(ctx context.Context, id string) (*domain.Record, error) {
	record, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Status != domain.ApprovalStatusDraft {
		return nil, fmt.Errorf("%w: record %q is %q", ErrRecordAlreadySubmitted, id, record.Status)
	}

	tiers, err := s.registry.Get(record.Module)
	if err != nil {
		return nil, err
	}

	steps, err := s.buildSteps(record, tiers)
	if err != nil {
		return nil, err
	}

	now := s.TimeNow()
	record.Steps = steps
	record.SubmittedAt = &now
	record.UpdatedAt = now
	if status := DeriveStatus(steps); status == domain.ApprovalStatusApproved {
		// every tier skipped by its When condition
		record.Status = domain.ApprovalStatusApproved
	} else {
		record.Status = domain.ApprovalStatusPending
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.notifyActiveStep(ctx, record)
	if err := s.auditLogger.Log(ctx, AuditKeySubmit, record); err != nil {
		s.logger.Error(ctx, "failed to record audit log", "error", err, "record_id", record.ID)
	}

	return record, nil
}

// MakeAction applies an approve/reject/revise action to the record's active
// step and derives the record's new overall status.
func (s *Service) MakeAction(ctx context.Context, action domain.ApprovalAction) (*domain.Record, error) {
	if err := s.validator.Struct(action); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAction, err)
	}

	record, err := s.GetByID(ctx, action.RecordID)
	if err != nil {
		return nil, err
	}
	// revised records reopen only through Resubmit, never through an action
	if record.IsTerminal() || record.Status == domain.ApprovalStatusRevised {
		return nil, fmt.Errorf("%w: record %q is already %q", ErrInvalidTransition, record.ID, record.Status)
	}

	now := s.TimeNow()
	steps, err := ApplyAction(record.Steps, action.Action, action.Actor, action.Comment, now)
	if err != nil {
		return nil, err
	}

	record.Steps = steps
	record.Status = DeriveStatus(steps)
	record.UpdatedAt = now

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}

	switch record.Status {
	case domain.ApprovalStatusPending:
		s.notifyActiveStep(ctx, record)
	default:
		s.notifyResolution(ctx, record)
	}

	auditKey := map[domain.WorkflowAction]string{
		domain.ActionApprove: AuditKeyApprove,
		domain.ActionReject:  AuditKeyReject,
		domain.ActionRevise:  AuditKeyRevise,
	}[action.Action]
	if err := s.auditLogger.Log(ctx, auditKey, action); err != nil {
		s.logger.Error(ctx, "failed to record audit log", "error", err, "record_id", record.ID)
	}

	return record, nil
}

// Resubmit reopens a revised record: every step resets to pristine pending
// and the workflow restarts at tier 1. Skip conditions are re-evaluated
// against the current record data.
func (s *Service) Resubmit(ctx context.Context, id string) (*domain.Record, error) {
	record, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Status != domain.ApprovalStatusRevised {
		return nil, fmt.Errorf("%w: record %q is %q", ErrRecordNotRevised, id, record.Status)
	}

	tiers, err := s.registry.Get(record.Module)
	if err != nil {
		return nil, err
	}

	steps, err := s.buildSteps(record, tiers)
	if err != nil {
		return nil, err
	}

	now := s.TimeNow()
	record.Steps = steps
	record.SubmittedAt = &now
	record.Status = domain.ApprovalStatusPending
	record.UpdatedAt = now

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.notifyActiveStep(ctx, record)
	if err := s.auditLogger.Log(ctx, AuditKeyResubmit, record); err != nil {
		s.logger.Error(ctx, "failed to record audit log", "error", err, "record_id", record.ID)
	}

	return record, nil
}

func (s *Service) buildSteps(record *domain.Record, tiers []domain.ApprovalTier) ([]domain.WorkflowStep, error) {
	steps := make([]domain.WorkflowStep, 0, len(tiers))
	for _, tier := range tiers {
		step := tier.ToStep()

		if tier.When != "" {
			recordMap, err := record.ToMap()
			if err != nil {
				return nil, fmt.Errorf("parsing record struct to map: %w", err)
			}
			v, err := evaluator.Expression(tier.When).EvaluateWithVars(map[string]interface{}{
				"record": recordMap,
			})
			if err != nil {
				return nil, fmt.Errorf("evaluating skip condition of tier %d: %w", tier.Level, err)
			}
			if reflect.ValueOf(v).IsZero() {
				step.Status = domain.StepStatusSkipped
			}
		}

		steps = append(steps, step)
	}
	return steps, nil
}

func (s *Service) notifyActiveStep(ctx context.Context, record *domain.Record) {
	active, ok := ActiveStep(record.Steps)
	if !ok {
		return
	}

	notifications := []domain.Notification{
		{
			User: active.Role,
			Message: domain.NotificationMessage{
				Type: domain.NotificationTypeApproverReminder,
				Variables: map[string]interface{}{
					"record_id":    record.ID,
					"record_title": record.Title,
					"module":       string(record.Module),
					"tier_level":   active.Level,
					"sla_days":     active.SLADays,
				},
			},
		},
	}
	if errs := s.notifier.Notify(ctx, notifications); errs != nil {
		for _, err := range errs {
			s.logger.Error(ctx, "failed to send notifications", "error", err, "record_id", record.ID)
		}
	}
}

func (s *Service) notifyResolution(ctx context.Context, record *domain.Record) {
	notifications := []domain.Notification{
		{
			User: record.CreatedBy,
			Message: domain.NotificationMessage{
				Type: domain.NotificationTypeWorkflowResolved,
				Variables: map[string]interface{}{
					"record_id":    record.ID,
					"record_title": record.Title,
					"status":       record.Status,
				},
			},
		},
	}
	if errs := s.notifier.Notify(ctx, notifications); errs != nil {
		for _, err := range errs {
			s.logger.Error(ctx, "failed to send notifications", "error", err, "record_id", record.ID)
		}
	}
}
