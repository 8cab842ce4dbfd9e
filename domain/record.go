package domain

import (
	"encoding/json"
	"time"
)

type RecordModule string

const (
	ModuleVehicleRequest    RecordModule = "vehicle_request"
	ModuleBuildingAsset     RecordModule = "building_asset"
	ModuleStationery        RecordModule = "stationery"
	ModuleMaintenance       RecordModule = "maintenance"
	ModuleVendor            RecordModule = "vendor"
	ModuleSalesAuction      RecordModule = "sales_auction"
	ModuleBranchImprovement RecordModule = "branch_improvement"
)

// Record is a workflow-bearing business record: a vehicle request, a
// building-asset proposal, a sales bid, etc. Module determines which tier
// configuration applies.
type Record struct {
	ID        string                 `json:"id" yaml:"id"`
	Module    RecordModule           `json:"module" yaml:"module"`
	Title     string                 `json:"title" yaml:"title"`
	Status    string                 `json:"status" yaml:"status"`
	CreatedBy string                 `json:"created_by" yaml:"created_by"`
	Details   map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`

	Steps []WorkflowStep `json:"steps,omitempty" yaml:"steps,omitempty"`

	SubmittedAt *time.Time `json:"submitted_at,omitempty" yaml:"submitted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

func (r *Record) Init() {
	r.Status = ApprovalStatusDraft
}

// GetStepByLevel returns the step bound to the given tier level, or nil.
func (r *Record) GetStepByLevel(level int) *WorkflowStep {
	for i := range r.Steps {
		if r.Steps[i].Level == level {
			return &r.Steps[i]
		}
	}
	return nil
}

func (r *Record) IsTerminal() bool {
	return r.Status == ApprovalStatusApproved || r.Status == ApprovalStatusRejected
}

// ToMap converts the record into a generic map for expression evaluation.
func (r *Record) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

type ListRecordsFilter struct {
	Q         string   `mapstructure:"q" validate:"omitempty"`
	Modules   []string `mapstructure:"modules" validate:"omitempty,min=1"`
	Statuses  []string `mapstructure:"statuses" validate:"omitempty,min=1"`
	CreatedBy string   `mapstructure:"created_by" validate:"omitempty,required"`
	OrderBy   []string `mapstructure:"order_by" validate:"omitempty,min=1"`
	Size      int      `mapstructure:"size" validate:"omitempty"`
	Offset    int      `mapstructure:"offset" validate:"omitempty"`
}
