package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	settlement "adsettle/internal/settlement/domain"
)

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

// Now returns current time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// SettlementReplaced is emitted after a whole-record replacement.
type SettlementReplaced struct {
	SettlementID string
	Month        settlement.MonthKey
	OccurredAt   time.Time
}

// ReplacePublisher emits settlement replaced events.
type ReplacePublisher interface {
	PublishSettlementReplaced(ctx context.Context, event SettlementReplaced) error
}

// SettlementService handles settlement record use cases. Edits follow the
// edit-session model: the caller loads a full record, mutates a local copy
// and submits the whole object. Replace is last-write-wins; conflicting
// concurrent editors are not detected.
type SettlementService struct {
	repo      settlement.Repository
	publisher ReplacePublisher
	clock     Clock
}

// NewSettlementService constructs the service.
func NewSettlementService(repo settlement.Repository, publisher ReplacePublisher, clock Clock) (*SettlementService, error) {
	if repo == nil {
		return nil, errors.New("settlement service: nil repository")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &SettlementService{repo: repo, publisher: publisher, clock: clock}, nil
}

// Create validates and stores a new record, assigning an id when absent.
func (s *SettlementService) Create(ctx context.Context, record *settlement.SettlementRecord) (*settlement.SettlementRecord, error) {
	if record == nil {
		return nil, settlement.ErrNilRecord
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := s.clock.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	if err := record.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Get returns one record by id.
func (s *SettlementService) Get(ctx context.Context, id string) (*settlement.SettlementRecord, error) {
	if id == "" {
		return nil, settlement.ErrEmptyID
	}
	return s.repo.GetByID(ctx, id)
}

// ListMonth returns the records of one month.
func (s *SettlementService) ListMonth(ctx context.Context, month settlement.MonthKey) ([]*settlement.SettlementRecord, error) {
	if _, err := settlement.ParseMonthKey(month.String()); err != nil {
		return nil, err
	}
	return s.repo.ListByMonth(ctx, month)
}

// Replace overwrites the stored record with the submitted one.
func (s *SettlementService) Replace(ctx context.Context, record *settlement.SettlementRecord) (*settlement.SettlementRecord, error) {
	if record == nil {
		return nil, settlement.ErrNilRecord
	}
	existing, err := s.repo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = s.clock.Now()
	if err := record.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Replace(ctx, record); err != nil {
		return nil, err
	}
	if s.publisher != nil {
		if err := s.publisher.PublishSettlementReplaced(ctx, SettlementReplaced{
			SettlementID: record.ID,
			Month:        record.Month,
			OccurredAt:   record.UpdatedAt,
		}); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// Delete removes a record.
func (s *SettlementService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return settlement.ErrEmptyID
	}
	return s.repo.Delete(ctx, id)
}
