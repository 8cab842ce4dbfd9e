package reminder

import (
	"fmt"
	"math"
	"time"

	"github.com/ryantriananda/fms/domain"
)

const (
	LabelExpired   = "Renew Immediately"
	LabelUrgent    = "Urgent"
	LabelAttention = "Attention"
	LabelWarning   = "Warning"
	LabelUpcoming  = "Upcoming"
	LabelSafe      = "Safe"
)

// CoarseThresholds is the 3-bucket table used for plain SLA badges.
func CoarseThresholds() domain.ThresholdTable {
	return domain.ThresholdTable{
		Expired: LabelExpired,
		Thresholds: []domain.Threshold{
			{MaxDays: 30, Label: LabelUrgent},
			{MaxDays: 90, Label: LabelWarning},
		},
		Safe: LabelSafe,
	}
}

// FineThresholds is the 6-bucket table used for legal-document expiry
// reminders; it adds the 60-day attention and 180-day upcoming tiers.
func FineThresholds() domain.ThresholdTable {
	return domain.ThresholdTable{
		Expired: LabelExpired,
		Thresholds: []domain.Threshold{
			{MaxDays: 30, Label: LabelUrgent},
			{MaxDays: 60, Label: LabelAttention},
			{MaxDays: 90, Label: LabelWarning},
			{MaxDays: 180, Label: LabelUpcoming},
		},
		Safe: LabelSafe,
	}
}

// ValidateTable checks that the threshold table is non-empty, labeled, and
// strictly ascending with non-negative bounds.
func ValidateTable(table domain.ThresholdTable) error {
	if len(table.Thresholds) == 0 {
		return fmt.Errorf("%w: no thresholds", ErrInvalidThresholds)
	}
	if table.Expired == "" || table.Safe == "" {
		return fmt.Errorf("%w: expired and safe labels are required", ErrInvalidThresholds)
	}

	prev := -1
	for _, t := range table.Thresholds {
		if t.Label == "" {
			return fmt.Errorf("%w: threshold at %d days has no label", ErrInvalidThresholds, t.MaxDays)
		}
		if t.MaxDays < 0 {
			return fmt.Errorf("%w: negative threshold %d", ErrInvalidThresholds, t.MaxDays)
		}
		if t.MaxDays <= prev {
			return fmt.Errorf("%w: thresholds must be strictly ascending, got %d after %d", ErrInvalidThresholds, t.MaxDays, prev)
		}
		prev = t.MaxDays
	}
	return nil
}

// Classify buckets a signed day-count into the table's severity labels.
// Thresholds are inclusive upper bounds evaluated in ascending order; a
// negative day-count resolves to the expired bucket, zero days remaining to
// the most urgent non-expired one. Severity ranks descend from expired
// (most severe) to safe (zero), so earlier deadlines never rank lower.
func Classify(daysRemaining int, table domain.ThresholdTable) (domain.Classification, error) {
	if err := ValidateTable(table); err != nil {
		return domain.Classification{}, err
	}

	if daysRemaining < 0 {
		return domain.Classification{
			Label:        table.Expired,
			SeverityRank: len(table.Thresholds) + 1,
		}, nil
	}

	for i, t := range table.Thresholds {
		if daysRemaining <= t.MaxDays {
			return domain.Classification{
				Label:        t.Label,
				SeverityRank: len(table.Thresholds) - i,
			}, nil
		}
	}

	return domain.Classification{Label: table.Safe, SeverityRank: 0}, nil
}

// DaysUntil returns the calendar-day difference between the target date and
// now. Both sides are normalized to midnight in now's location first;
// subtracting raw date-times with time-of-day components produces off-by-one
// errors. The result is negative for past dates.
func DaysUntil(target, now time.Time) (int, error) {
	if target.IsZero() || now.IsZero() {
		return 0, fmt.Errorf("%w: target and now are required", ErrInvalidInput)
	}

	loc := now.Location()
	t := target.In(loc)
	targetMidnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	nowMidnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	// rounding absorbs DST-shortened or -lengthened days
	return int(math.Round(targetMidnight.Sub(nowMidnight).Hours() / 24)), nil
}
