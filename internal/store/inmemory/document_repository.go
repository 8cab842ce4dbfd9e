package inmemory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ryantriananda/fms/core/reminder"
	"github.com/ryantriananda/fms/domain"
)

// DocumentRepository keeps expiring documents in memory, same lifecycle as
// RecordRepository.
type DocumentRepository struct {
	mu        sync.RWMutex
	documents map[string]*domain.Document
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{documents: map[string]*domain.Document{}}
}

func cloneDocument(d *domain.Document) *domain.Document {
	copied := *d
	return &copied
}

func (r *DocumentRepository) Create(_ context.Context, doc *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.documents[doc.ID] = cloneDocument(doc)
	return nil
}

func (r *DocumentRepository) GetByID(_ context.Context, id string) (*domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.documents[id]
	if !ok {
		return nil, reminder.ErrDocumentNotFound
	}
	return cloneDocument(doc), nil
}

func (r *DocumentRepository) Update(_ context.Context, doc *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.documents[doc.ID]; !ok {
		return reminder.ErrDocumentNotFound
	}
	r.documents[doc.ID] = cloneDocument(doc)
	return nil
}

func (r *DocumentRepository) Find(_ context.Context, filter *domain.ListDocumentsFilter) ([]*domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*domain.Document{}
	for _, doc := range r.documents {
		if matchesDocumentFilter(doc, filter) {
			result = append(result, cloneDocument(doc))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].ExpiryDate.Equal(result[j].ExpiryDate) {
			return result[i].ID < result[j].ID
		}
		return result[i].ExpiryDate.Before(result[j].ExpiryDate)
	})

	return result, nil
}

func matchesDocumentFilter(doc *domain.Document, filter *domain.ListDocumentsFilter) bool {
	if filter == nil {
		return true
	}
	if len(filter.Kinds) > 0 && !containsFold(filter.Kinds, string(doc.Kind)) {
		return false
	}
	if filter.RecordID != "" && filter.RecordID != doc.RecordID {
		return false
	}
	if filter.Owner != "" && !strings.EqualFold(filter.Owner, doc.Owner) {
		return false
	}
	if filter.Q != "" && !strings.Contains(strings.ToLower(doc.Name), strings.ToLower(filter.Q)) {
		return false
	}
	return true
}
