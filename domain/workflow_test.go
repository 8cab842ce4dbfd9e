package domain

import (
	"testing"
	"time"
)

func TestWorkflowAction_TargetStatus(t *testing.T) {
	tests := []struct {
		name   string
		action WorkflowAction
		want   string
	}{
		{
			name:   "approve targets approved",
			action: ActionApprove,
			want:   StepStatusApproved,
		},
		{
			name:   "reject targets rejected",
			action: ActionReject,
			want:   StepStatusRejected,
		},
		{
			name:   "revise targets revised",
			action: ActionRevise,
			want:   StepStatusRevised,
		},
		{
			name:   "unknown action targets nothing",
			action: WorkflowAction("cancel"),
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.action.TargetStatus(); got != tt.want {
				t.Errorf("WorkflowAction.TargetStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApprovalTier_ToStep(t *testing.T) {
	tier := ApprovalTier{
		Level:         2,
		ApproverType:  ApproverTypeRole,
		ApproverValue: "Regional",
		SLADays:       3,
	}

	step := tier.ToStep()
	if step.Level != 2 {
		t.Errorf("step.Level = %v, want 2", step.Level)
	}
	if step.Role != "Regional" {
		t.Errorf("step.Role = %v, want Regional", step.Role)
	}
	if step.Status != StepStatusPending {
		t.Errorf("step.Status = %v, want %v", step.Status, StepStatusPending)
	}
	if step.Date != nil {
		t.Errorf("step.Date = %v, want nil", step.Date)
	}
	if step.SLADays != 3 {
		t.Errorf("step.SLADays = %v, want 3", step.SLADays)
	}
}

func TestWorkflowStep_IsPastSLA(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		step        WorkflowStep
		submittedAt time.Time
		want        bool
	}{
		{
			name:        "pending step past its sla",
			step:        WorkflowStep{Status: StepStatusPending, SLADays: 2},
			submittedAt: now.AddDate(0, 0, -5),
			want:        true,
		},
		{
			name:        "pending step within its sla",
			step:        WorkflowStep{Status: StepStatusPending, SLADays: 7},
			submittedAt: now.AddDate(0, 0, -5),
			want:        false,
		},
		{
			name:        "resolved step is never past sla",
			step:        WorkflowStep{Status: StepStatusApproved, SLADays: 1},
			submittedAt: now.AddDate(0, 0, -10),
			want:        false,
		},
		{
			name:        "zero sla means no sla",
			step:        WorkflowStep{Status: StepStatusPending, SLADays: 0},
			submittedAt: now.AddDate(0, 0, -30),
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.step.IsPastSLA(tt.submittedAt, now); got != tt.want {
				t.Errorf("WorkflowStep.IsPastSLA() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWorkflowStep_IsActor(t *testing.T) {
	s := WorkflowStep{Approver: "bm.manager@example.com"}

	tests := []struct {
		name  string
		actor string
		want  bool
	}{
		{
			name:  "same actor",
			actor: "bm.manager@example.com",
			want:  true,
		},
		{
			name:  "same actor with different casing",
			actor: "BM.Manager@Example.com",
			want:  true,
		},
		{
			name:  "different actor",
			actor: "avp@example.com",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.IsActor(tt.actor); got != tt.want {
				t.Errorf("WorkflowStep.IsActor() = %v, want %v", got, tt.want)
			}
		})
	}
}
