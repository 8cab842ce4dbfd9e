package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ryantriananda/fms/domain"
	"github.com/ryantriananda/fms/pkg/log"
)

//go:generate mockery --name=repository --exported --with-expecter
type repository interface {
	Create(context.Context, *domain.Document) error
	Find(context.Context, *domain.ListDocumentsFilter) ([]*domain.Document, error)
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	Update(context.Context, *domain.Document) error
}

type ServiceDeps struct {
	Repository repository

	Validator *validator.Validate
	Logger    log.Logger
}

// Service derives expiry statuses of documents. Day counts and severity
// labels are view functions of the stored expiry date and the injected
// clock; nothing derived is ever persisted.
type Service struct {
	repo repository

	validator *validator.Validate
	logger    log.Logger

	TimeNow func() time.Time
}

// NewService returns service struct
func NewService(deps ServiceDeps) *Service {
	return &Service{
		deps.Repository,
		deps.Validator,
		deps.Logger,
		time.Now,
	}
}

func (s *Service) Create(ctx context.Context, doc *domain.Document) error {
	if doc.Name == "" {
		return fmt.Errorf("document name is required")
	}
	if doc.ExpiryDate.IsZero() {
		return fmt.Errorf("%w: expiry date is required", ErrInvalidInput)
	}

	now := s.TimeNow()
	doc.ID = uuid.New().String()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	return s.repo.Create(ctx, doc)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	if id == "" {
		return nil, ErrDocumentIDEmptyParam
	}
	return s.repo.GetByID(ctx, id)
}

// GetStatus returns the document's current classification against the
// given threshold table.
func (s *Service) GetStatus(ctx context.Context, id string, table domain.ThresholdTable) (*domain.DocumentStatus, error) {
	doc, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.status(*doc, table)
}

// ListStatuses classifies every document matching the filter. Classification
// of each document is independent, so the work fans out concurrently.
func (s *Service) ListStatuses(ctx context.Context, filter *domain.ListDocumentsFilter, table domain.ThresholdTable) ([]*domain.DocumentStatus, error) {
	if filter != nil {
		if err := s.validator.Struct(filter); err != nil {
			return nil, fmt.Errorf("invalid list documents filter: %w", err)
		}
	}
	if err := ValidateTable(table); err != nil {
		return nil, err
	}

	docs, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	statuses := make([]*domain.DocumentStatus, len(docs))
	eg, _ := errgroup.WithContext(ctx)
	for i, doc := range docs {
		i, doc := i, doc
		eg.Go(func() error {
			status, err := s.status(*doc, table)
			if err != nil {
				return fmt.Errorf("classifying document %q: %w", doc.ID, err)
			}
			statuses[i] = status
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return statuses, nil
}

func (s *Service) status(doc domain.Document, table domain.ThresholdTable) (*domain.DocumentStatus, error) {
	daysRemaining, err := DaysUntil(doc.ExpiryDate, s.TimeNow())
	if err != nil {
		return nil, err
	}
	classification, err := Classify(daysRemaining, table)
	if err != nil {
		return nil, err
	}

	return &domain.DocumentStatus{
		Document:       doc,
		DaysRemaining:  daysRemaining,
		Classification: classification,
	}, nil
}
