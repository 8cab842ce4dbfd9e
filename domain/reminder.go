package domain

import "time"

type DocumentKind string

const (
	DocumentKindLegal       DocumentKind = "legal"
	DocumentKindMaintenance DocumentKind = "maintenance"
	DocumentKindGeneric     DocumentKind = "generic"
)

// Document is a dated artifact attached to a record that needs periodic
// renewal: a vehicle registration, a building permit, a maintenance
// schedule entry.
type Document struct {
	ID         string       `json:"id" yaml:"id"`
	RecordID   string       `json:"record_id" yaml:"record_id"`
	Name       string       `json:"name" yaml:"name"`
	Kind       DocumentKind `json:"kind" yaml:"kind"`
	Owner      string       `json:"owner" yaml:"owner"`
	ExpiryDate time.Time    `json:"expiry_date" yaml:"expiry_date"`

	CreatedAt time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Threshold maps an inclusive upper bound on days remaining to a label.
type Threshold struct {
	MaxDays int    `json:"max_days" yaml:"max_days"`
	Label   string `json:"label" yaml:"label"`
}

// ThresholdTable is an ordered severity table. Thresholds are evaluated
// top to bottom with inclusive upper bounds; a negative day-count resolves
// to Expired, a day-count beyond the last threshold resolves to Safe.
type ThresholdTable struct {
	Expired    string      `json:"expired" yaml:"expired"`
	Thresholds []Threshold `json:"thresholds" yaml:"thresholds"`
	Safe       string      `json:"safe" yaml:"safe"`
}

// Classification is the derived severity of a day-count. Higher
// SeverityRank means more urgent.
type Classification struct {
	Label        string `json:"label" yaml:"label"`
	SeverityRank int    `json:"severity_rank" yaml:"severity_rank"`
}

// DocumentStatus is a view of a document at a point in time. DaysRemaining
// and Classification are recomputed on every read, never persisted.
type DocumentStatus struct {
	Document       Document       `json:"document" yaml:"document"`
	DaysRemaining  int            `json:"days_remaining" yaml:"days_remaining"`
	Classification Classification `json:"classification" yaml:"classification"`
}

type ListDocumentsFilter struct {
	Q        string   `mapstructure:"q" validate:"omitempty"`
	Kinds    []string `mapstructure:"kinds" validate:"omitempty,min=1"`
	RecordID string   `mapstructure:"record_id" validate:"omitempty,required"`
	Owner    string   `mapstructure:"owner" validate:"omitempty,required"`
}
