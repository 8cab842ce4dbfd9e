package domain

import (
	"strings"
	"time"
)

const (
	StepStatusPending  = "pending"
	StepStatusApproved = "approved"
	StepStatusRejected = "rejected"
	StepStatusRevised  = "revised"
	StepStatusSkipped  = "skipped"
)

const (
	ApprovalStatusDraft    = "draft"
	ApprovalStatusPending  = "pending_approval"
	ApprovalStatusApproved = "approved"
	ApprovalStatusRejected = "rejected"
	ApprovalStatusRevised  = "revised"
)

type ApproverType string

const (
	ApproverTypeRole ApproverType = "role"
	ApproverTypeUser ApproverType = "user"
)

type WorkflowAction string

const (
	ActionApprove WorkflowAction = "approve"
	ActionReject  WorkflowAction = "reject"
	ActionRevise  WorkflowAction = "revise"
)

func (a WorkflowAction) IsValid() bool {
	switch a {
	case ActionApprove, ActionReject, ActionRevise:
		return true
	}
	return false
}

// TargetStatus returns the step status that applying the action results in.
func (a WorkflowAction) TargetStatus() string {
	switch a {
	case ActionApprove:
		return StepStatusApproved
	case ActionReject:
		return StepStatusRejected
	case ActionRevise:
		return StepStatusRevised
	}
	return ""
}

// ApprovalTier is one ordered stage of a module's approval workflow.
// Tiers are evaluated strictly by ascending Level.
type ApprovalTier struct {
	// Level defines the evaluation order. Must be positive and unique
	// within one workflow.
	Level int `json:"level" yaml:"level" validate:"required,gt=0"`

	// ApproverType tells whether ApproverValue names a role or a
	// specific user.
	ApproverType ApproverType `json:"approver_type" yaml:"approver_type" validate:"required,oneof=role user"`

	// ApproverValue is the role name or user identifier bound to the tier.
	ApproverValue string `json:"approver_value" yaml:"approver_value" validate:"required"`

	// SLADays is the expected turnaround in days. Informational only,
	// not enforced by the engine.
	SLADays int `json:"sla_days" yaml:"sla_days" validate:"gte=0"`

	// When is an expression evaluated against the record at submission.
	// If it evaluates to be falsy, the tier's step is created as skipped.
	//
	// Accessible parameters:
	// $record = Record object
	When string `json:"when,omitempty" yaml:"when,omitempty"`
}

func (t ApprovalTier) ToStep() WorkflowStep {
	return WorkflowStep{
		Level:   t.Level,
		Role:    t.ApproverValue,
		SLADays: t.SLADays,
		Status:  StepStatusPending,
	}
}

// WorkflowStep is the execution record of one tier against one record.
type WorkflowStep struct {
	Level    int        `json:"level" yaml:"level"`
	Role     string     `json:"role" yaml:"role"`
	Status   string     `json:"status" yaml:"status"`
	Date     *time.Time `json:"date,omitempty" yaml:"date,omitempty"`
	Approver string     `json:"approver,omitempty" yaml:"approver,omitempty"`
	Comment  string     `json:"comment,omitempty" yaml:"comment,omitempty"`
	SLADays  int        `json:"sla_days" yaml:"sla_days"`
}

func (s WorkflowStep) IsPending() bool {
	return s.Status == StepStatusPending
}

// IsResolved reports whether the step has left the pending state,
// including skipped steps.
func (s WorkflowStep) IsResolved() bool {
	return !s.IsPending()
}

// IsPastSLA reports whether the step is still pending past its SLA,
// counting from the given submission time.
func (s WorkflowStep) IsPastSLA(submittedAt time.Time, now time.Time) bool {
	if !s.IsPending() || s.SLADays <= 0 {
		return false
	}
	return now.Sub(submittedAt) > time.Duration(s.SLADays)*24*time.Hour
}

func (s WorkflowStep) IsActor(actor string) bool {
	return strings.EqualFold(s.Approver, actor)
}
