package reminder_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/suite"

	"github.com/ryantriananda/fms/core/reminder"
	"github.com/ryantriananda/fms/domain"
	"github.com/ryantriananda/fms/pkg/log"
)

type fakeDocumentRepository struct {
	mu        sync.Mutex
	documents map[string]*domain.Document
}

func newFakeDocumentRepository() *fakeDocumentRepository {
	return &fakeDocumentRepository{documents: map[string]*domain.Document{}}
}

func (r *fakeDocumentRepository) Create(_ context.Context, doc *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *doc
	r.documents[doc.ID] = &copied
	return nil
}

func (r *fakeDocumentRepository) GetByID(_ context.Context, id string) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.documents[id]
	if !ok {
		return nil, reminder.ErrDocumentNotFound
	}
	copied := *doc
	return &copied, nil
}

func (r *fakeDocumentRepository) Update(_ context.Context, doc *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.documents[doc.ID]; !ok {
		return reminder.ErrDocumentNotFound
	}
	copied := *doc
	r.documents[doc.ID] = &copied
	return nil
}

func (r *fakeDocumentRepository) Find(_ context.Context, filter *domain.ListDocumentsFilter) ([]*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Document
	for _, doc := range r.documents {
		if filter != nil && len(filter.Kinds) > 0 {
			match := false
			for _, k := range filter.Kinds {
				if k == string(doc.Kind) {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		copied := *doc
		result = append(result, &copied)
	}
	return result, nil
}

type ReminderServiceTestSuite struct {
	suite.Suite

	repo    *fakeDocumentRepository
	service *reminder.Service

	now time.Time
}

func TestReminderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReminderServiceTestSuite))
}

func (s *ReminderServiceTestSuite) SetupTest() {
	s.repo = newFakeDocumentRepository()
	s.now = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	s.service = reminder.NewService(reminder.ServiceDeps{
		Repository: s.repo,
		Validator:  validator.New(),
		Logger:     log.NewCtxLogger("error", nil),
	})
	s.service.TimeNow = func() time.Time { return s.now }
}

func (s *ReminderServiceTestSuite) createDocument(name string, kind domain.DocumentKind, expiryInDays int) *domain.Document {
	doc := &domain.Document{
		Name:       name,
		Kind:       kind,
		Owner:      "fleet.admin@example.com",
		ExpiryDate: s.now.AddDate(0, 0, expiryInDays),
	}
	s.Require().NoError(s.service.Create(context.Background(), doc))
	return doc
}

func (s *ReminderServiceTestSuite) TestCreate() {
	doc := s.createDocument("STNK B 1234 XYZ", domain.DocumentKindLegal, 45)
	s.NotEmpty(doc.ID)

	s.Run("zero expiry date", func() {
		err := s.service.Create(context.Background(), &domain.Document{Name: "x"})
		s.ErrorIs(err, reminder.ErrInvalidInput)
	})
}

func (s *ReminderServiceTestSuite) TestGetStatus() {
	expired := s.createDocument("Building permit", domain.DocumentKindLegal, -5)

	status, err := s.service.GetStatus(context.Background(), expired.ID, reminder.FineThresholds())
	s.Require().NoError(err)

	s.Equal(-5, status.DaysRemaining)
	s.Equal(reminder.LabelExpired, status.Classification.Label)

	s.Run("status follows the clock without any write", func() {
		fresh := s.createDocument("Vehicle tax", domain.DocumentKindLegal, 35)

		status, err := s.service.GetStatus(context.Background(), fresh.ID, reminder.FineThresholds())
		s.Require().NoError(err)
		s.Equal(reminder.LabelAttention, status.Classification.Label)

		// a week later the same document classifies one bucket tighter
		s.now = s.now.AddDate(0, 0, 7)
		status, err = s.service.GetStatus(context.Background(), fresh.ID, reminder.FineThresholds())
		s.Require().NoError(err)
		s.Equal(28, status.DaysRemaining)
		s.Equal(reminder.LabelUrgent, status.Classification.Label)
	})

	s.Run("unknown document", func() {
		_, err := s.service.GetStatus(context.Background(), "missing", reminder.FineThresholds())
		s.ErrorIs(err, reminder.ErrDocumentNotFound)
	})

	s.Run("empty id", func() {
		_, err := s.service.GetStatus(context.Background(), "", reminder.FineThresholds())
		s.ErrorIs(err, reminder.ErrDocumentIDEmptyParam)
	})
}

func (s *ReminderServiceTestSuite) TestListStatuses() {
	s.createDocument("STNK B 1234 XYZ", domain.DocumentKindLegal, -2)
	s.createDocument("KIR B 1234 XYZ", domain.DocumentKindLegal, 20)
	s.createDocument("Genset service", domain.DocumentKindMaintenance, 120)

	s.Run("classifies all matching documents", func() {
		statuses, err := s.service.ListStatuses(context.Background(), &domain.ListDocumentsFilter{
			Kinds: []string{string(domain.DocumentKindLegal)},
		}, reminder.FineThresholds())
		s.Require().NoError(err)
		s.Require().Len(statuses, 2)

		labels := map[string]string{}
		for _, st := range statuses {
			labels[st.Document.Name] = st.Classification.Label
		}
		s.Equal(reminder.LabelExpired, labels["STNK B 1234 XYZ"])
		s.Equal(reminder.LabelUrgent, labels["KIR B 1234 XYZ"])
	})

	s.Run("coarse table for the same documents", func() {
		statuses, err := s.service.ListStatuses(context.Background(), nil, reminder.CoarseThresholds())
		s.Require().NoError(err)
		s.Require().Len(statuses, 3)
		for _, st := range statuses {
			if st.Document.Name == "Genset service" {
				s.Equal(reminder.LabelSafe, st.Classification.Label)
			}
		}
	})

	s.Run("invalid table", func() {
		_, err := s.service.ListStatuses(context.Background(), nil, domain.ThresholdTable{})
		s.ErrorIs(err, reminder.ErrInvalidThresholds)
	})
}
