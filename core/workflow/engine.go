package workflow

import (
	"fmt"
	"sort"
	"time"

	"github.com/ryantriananda/fms/domain"
)

// ValidateTiers checks a tier set for duplicate or non-positive levels and
// returns a copy sorted by ascending level. Tier ordering is always explicit
// through Level, never assumed from slice position.
func ValidateTiers(tiers []domain.ApprovalTier) ([]domain.ApprovalTier, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("%w: tier set is empty", ErrMalformedTierSet)
	}

	seen := map[int]bool{}
	for _, t := range tiers {
		if t.Level <= 0 {
			return nil, fmt.Errorf("%w: tier level must be positive, got %d", ErrMalformedTierSet, t.Level)
		}
		if seen[t.Level] {
			return nil, fmt.Errorf("%w: duplicate tier level %d", ErrMalformedTierSet, t.Level)
		}
		seen[t.Level] = true
	}

	sorted := make([]domain.ApprovalTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Level < sorted[j].Level
	})

	return sorted, nil
}

func sortSteps(steps []domain.WorkflowStep) []domain.WorkflowStep {
	sorted := make([]domain.WorkflowStep, len(steps))
	copy(sorted, steps)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Level < sorted[j].Level
	})
	return sorted
}

// ActiveStep returns the first pending step in ascending tier level order.
// The second return value is false when no step is pending, meaning the
// workflow is fully resolved. Source step lists are not guaranteed to be
// pre-sorted, so the steps are sorted here before scanning.
func ActiveStep(steps []domain.WorkflowStep) (domain.WorkflowStep, bool) {
	for _, s := range sortSteps(steps) {
		if s.IsPending() {
			return s, true
		}
	}
	return domain.WorkflowStep{}, false
}

// ApplyAction applies an approve/reject/revise action to the active step and
// returns a new step list sorted by tier level; the input is never mutated.
// It fails with ErrInvalidTransition when the workflow has no pending step or
// is already resolved by a rejection or revision. A reject or revise halts
// the whole workflow even when later tiers are still pending; those tiers
// stay inert.
func ApplyAction(steps []domain.WorkflowStep, action domain.WorkflowAction, actor, comment string, now time.Time) ([]domain.WorkflowStep, error) {
	if !action.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
	if actor == "" {
		return nil, ErrEmptyActor
	}

	sorted := sortSteps(steps)
	for _, s := range sorted {
		if s.Status == domain.StepStatusRejected || s.Status == domain.StepStatusRevised {
			return nil, fmt.Errorf("%w: workflow halted by a %s step", ErrInvalidTransition, s.Status)
		}
	}
	for i := range sorted {
		if !sorted[i].IsPending() {
			continue
		}

		sorted[i].Status = action.TargetStatus()
		sorted[i].Date = &now
		sorted[i].Approver = actor
		sorted[i].Comment = comment
		return sorted, nil
	}

	return nil, ErrInvalidTransition
}

// DeriveStatus aggregates a step list into the record-level approval status.
// Precedence, most severe first: rejected > revised > approved(all resolved)
// > draft(all pristine pending) > pending_approval. A single rejected tier
// overrides any number of approved ones. Skipped steps count as resolved for
// the all-approved check.
func DeriveStatus(steps []domain.WorkflowStep) string {
	if len(steps) == 0 {
		return domain.ApprovalStatusDraft
	}

	allResolved := true
	allPristine := true
	for _, s := range steps {
		switch s.Status {
		case domain.StepStatusRejected:
			return domain.ApprovalStatusRejected
		case domain.StepStatusRevised:
			return domain.ApprovalStatusRevised
		}

		if s.IsPending() {
			allResolved = false
			if s.Date != nil || s.Approver != "" {
				allPristine = false
			}
		} else {
			allPristine = false
		}
	}

	if allResolved {
		return domain.ApprovalStatusApproved
	}
	if allPristine {
		return domain.ApprovalStatusDraft
	}
	return domain.ApprovalStatusPending
}

// ResetSteps returns pristine pending copies of all steps, sorted by tier
// level. Used on resubmission after a revise: the whole workflow restarts
// at tier 1.
func ResetSteps(steps []domain.WorkflowStep) []domain.WorkflowStep {
	reset := sortSteps(steps)
	for i := range reset {
		reset[i].Status = domain.StepStatusPending
		reset[i].Date = nil
		reset[i].Approver = ""
		reset[i].Comment = ""
	}
	return reset
}
