package inmemory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ryantriananda/fms/core/workflow"
	"github.com/ryantriananda/fms/domain"
)

// RecordRepository keeps records in memory. The admin console this core
// serves has no persistence layer; every dataset is a mock array refreshed
// on process start.
type RecordRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.Record
}

func NewRecordRepository() *RecordRepository {
	return &RecordRepository{records: map[string]*domain.Record{}}
}

func cloneRecord(r *domain.Record) *domain.Record {
	copied := *r
	copied.Steps = make([]domain.WorkflowStep, len(r.Steps))
	copy(copied.Steps, r.Steps)
	if r.SubmittedAt != nil {
		submittedAt := *r.SubmittedAt
		copied.SubmittedAt = &submittedAt
	}
	if r.Details != nil {
		copied.Details = make(map[string]interface{}, len(r.Details))
		for k, v := range r.Details {
			copied.Details[k] = v
		}
	}
	return &copied
}

func (r *RecordRepository) Create(_ context.Context, record *domain.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = cloneRecord(record)
	return nil
}

func (r *RecordRepository) GetByID(_ context.Context, id string) (*domain.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	if !ok {
		return nil, workflow.ErrRecordNotFound
	}
	return cloneRecord(record), nil
}

func (r *RecordRepository) Update(_ context.Context, record *domain.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[record.ID]; !ok {
		return workflow.ErrRecordNotFound
	}
	r.records[record.ID] = cloneRecord(record)
	return nil
}

func (r *RecordRepository) Find(_ context.Context, filter *domain.ListRecordsFilter) ([]*domain.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*domain.Record{}
	for _, record := range r.records {
		if matchesRecordFilter(record, filter) {
			result = append(result, cloneRecord(record))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return paginateRecords(result, filter), nil
}

func matchesRecordFilter(record *domain.Record, filter *domain.ListRecordsFilter) bool {
	if filter == nil {
		return true
	}
	if len(filter.Modules) > 0 && !containsFold(filter.Modules, string(record.Module)) {
		return false
	}
	if len(filter.Statuses) > 0 && !containsFold(filter.Statuses, record.Status) {
		return false
	}
	if filter.CreatedBy != "" && !strings.EqualFold(filter.CreatedBy, record.CreatedBy) {
		return false
	}
	if filter.Q != "" && !strings.Contains(strings.ToLower(record.Title), strings.ToLower(filter.Q)) {
		return false
	}
	return true
}

func paginateRecords(records []*domain.Record, filter *domain.ListRecordsFilter) []*domain.Record {
	if filter == nil {
		return records
	}
	if filter.Offset > 0 {
		if filter.Offset >= len(records) {
			return []*domain.Record{}
		}
		records = records[filter.Offset:]
	}
	if filter.Size > 0 && filter.Size < len(records) {
		records = records[:filter.Size]
	}
	return records
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}
