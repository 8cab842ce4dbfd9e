package workflow

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"
	"gopkg.in/yaml.v3"

	"github.com/ryantriananda/fms/domain"
)

const (
	configCacheExpiration      = 5 * time.Minute
	configCacheCleanupInterval = 10 * time.Minute
)

// ModuleWorkflow binds a record module to its ordered tier set.
type ModuleWorkflow struct {
	Module domain.RecordModule   `yaml:"module" validate:"required"`
	Tiers  []domain.ApprovalTier `yaml:"tiers" validate:"required,min=1,dive"`
}

// WorkflowConfig is the file format for per-module tier definitions.
type WorkflowConfig struct {
	Workflows []ModuleWorkflow `yaml:"workflows" validate:"required,min=1,dive"`
}

// DefaultWorkflows returns the built-in tier sets of the modules that carry
// an approval flow. Modules absent here (stationery, maintenance, vendor)
// are plain CRUD records without sign-off.
func DefaultWorkflows() []ModuleWorkflow {
	return []ModuleWorkflow{
		{
			Module: domain.ModuleVehicleRequest,
			Tiers: []domain.ApprovalTier{
				{Level: 1, ApproverType: domain.ApproverTypeRole, ApproverValue: "BM", SLADays: 3},
				{Level: 2, ApproverType: domain.ApproverTypeRole, ApproverValue: "Regional", SLADays: 3},
				{Level: 3, ApproverType: domain.ApproverTypeRole, ApproverValue: "AVP", SLADays: 2},
				{Level: 4, ApproverType: domain.ApproverTypeRole, ApproverValue: "Owner", SLADays: 5},
			},
		},
		{
			Module: domain.ModuleBuildingAsset,
			Tiers: []domain.ApprovalTier{
				{Level: 1, ApproverType: domain.ApproverTypeRole, ApproverValue: "BM", SLADays: 3},
				{Level: 2, ApproverType: domain.ApproverTypeRole, ApproverValue: "AVP", SLADays: 3},
				{Level: 3, ApproverType: domain.ApproverTypeRole, ApproverValue: "Owner", SLADays: 5},
			},
		},
		{
			Module: domain.ModuleSalesAuction,
			Tiers: []domain.ApprovalTier{
				{Level: 1, ApproverType: domain.ApproverTypeRole, ApproverValue: "Regional", SLADays: 2},
				{Level: 2, ApproverType: domain.ApproverTypeRole, ApproverValue: "Owner", SLADays: 3},
			},
		},
		{
			Module: domain.ModuleBranchImprovement,
			Tiers: []domain.ApprovalTier{
				{Level: 1, ApproverType: domain.ApproverTypeRole, ApproverValue: "BM", SLADays: 3},
				{Level: 2, ApproverType: domain.ApproverTypeRole, ApproverValue: "Regional", SLADays: 3},
				{Level: 3, ApproverType: domain.ApproverTypeRole, ApproverValue: "Owner", SLADays: 5},
			},
		},
	}
}

// Registry holds the tier configuration per record module. Tier sets are
// supplied as data, not duplicated branching logic per module.
type Registry struct {
	mu        sync.RWMutex
	workflows map[domain.RecordModule][]domain.ApprovalTier

	validator *validator.Validate
	fileCache *cache.Cache
}

func NewRegistry(v *validator.Validate) (*Registry, error) {
	r := &Registry{
		workflows: map[domain.RecordModule][]domain.ApprovalTier{},
		validator: v,
		fileCache: cache.New(configCacheExpiration, configCacheCleanupInterval),
	}

	for _, w := range DefaultWorkflows() {
		if err := r.Register(w.Module, w.Tiers); err != nil {
			return nil, fmt.Errorf("registering default workflow for %q: %w", w.Module, err)
		}
	}

	return r, nil
}

// Register validates and stores the tier set for a module, replacing any
// existing configuration.
func (r *Registry) Register(module domain.RecordModule, tiers []domain.ApprovalTier) error {
	for _, t := range tiers {
		if err := r.validator.Struct(t); err != nil {
			return fmt.Errorf("%w: invalid tier config for level %d: %s", ErrMalformedTierSet, t.Level, err)
		}
	}

	sorted, err := ValidateTiers(tiers)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.workflows[module] = sorted
	return nil
}

// Get returns a copy of the module's tier set sorted by ascending level.
func (r *Registry) Get(module domain.RecordModule) ([]domain.ApprovalTier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tiers, ok := r.workflows[module]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModule, module)
	}

	result := make([]domain.ApprovalTier, len(tiers))
	copy(result, tiers)
	return result, nil
}

// LoadFile reads a workflow config file and registers every tier set in it.
// Parsed files are cached briefly so repeated loads of the same path stay
// cheap for callers that reload on a timer.
func (r *Registry) LoadFile(path string) error {
	var cfg WorkflowConfig
	if cached, ok := r.fileCache.Get(path); ok {
		cfg = cached.(WorkflowConfig)
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading workflow config %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parsing workflow config %q: %w", path, err)
		}
		if err := r.validator.Struct(cfg); err != nil {
			return fmt.Errorf("invalid workflow config %q: %w", path, err)
		}
		r.fileCache.Set(path, cfg, cache.DefaultExpiration)
	}

	for _, w := range cfg.Workflows {
		if err := r.Register(w.Module, w.Tiers); err != nil {
			return err
		}
	}
	return nil
}
