package application

import (
	"context"
	"errors"

	settlement "adsettle/internal/settlement/domain"
)

// DeliveryCostProvider supplies the per-unit delivery cost with VAT. The
// constant is owned and versioned outside the core; implementations must
// resolve the current value on every call so a mid-session change is
// reflected in all subsequent calculations.
type DeliveryCostProvider interface {
	DeliveryCostWithVat(ctx context.Context) (float64, error)
}

// SummaryService computes month summaries over stored settlements.
type SummaryService struct {
	repo    settlement.Repository
	pricing DeliveryCostProvider
}

// NewSummaryService constructs the service.
func NewSummaryService(repo settlement.Repository, pricing DeliveryCostProvider) (*SummaryService, error) {
	if repo == nil {
		return nil, errors.New("summary service: nil repository")
	}
	if pricing == nil {
		return nil, errors.New("summary service: nil delivery cost provider")
	}
	return &SummaryService{repo: repo, pricing: pricing}, nil
}

// MonthSummary recomputes the summary for one reporting month from the
// currently stored records.
func (s *SummaryService) MonthSummary(ctx context.Context, month settlement.MonthKey) (settlement.Summary, error) {
	if _, err := settlement.ParseMonthKey(month.String()); err != nil {
		return settlement.Summary{}, err
	}
	deliveryCost, err := s.pricing.DeliveryCostWithVat(ctx)
	if err != nil {
		return settlement.Summary{}, err
	}
	records, err := s.repo.ListByMonth(ctx, month)
	if err != nil {
		return settlement.Summary{}, err
	}
	return settlement.BuildSummary(month, records, deliveryCost), nil
}

// ComputeOne derives the monetary fields of a single record with the current
// delivery cost constant.
func (s *SummaryService) ComputeOne(ctx context.Context, record *settlement.SettlementRecord) (settlement.Computed, error) {
	deliveryCost, err := s.pricing.DeliveryCostWithVat(ctx)
	if err != nil {
		return settlement.Computed{}, err
	}
	return settlement.Compute(record, deliveryCost), nil
}
