package memory

import (
	"context"
	"sort"
	"sync"

	settlement "adsettle/internal/settlement/domain"
)

// SettlementRepository is an in-memory repository for settlement records.
type SettlementRepository struct {
	mu   sync.RWMutex
	data map[string]*settlement.SettlementRecord
}

// NewSettlementRepository constructs a repository.
func NewSettlementRepository() *SettlementRepository {
	return &SettlementRepository{data: make(map[string]*settlement.SettlementRecord)}
}

// Create stores a new record.
func (r *SettlementRepository) Create(ctx context.Context, record *settlement.SettlementRecord) error {
	_ = ctx
	if err := record.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	r.data[record.ID] = cloneRecord(record)
	r.mu.Unlock()
	return nil
}

// GetByID loads one record.
func (r *SettlementRepository) GetByID(ctx context.Context, id string) (*settlement.SettlementRecord, error) {
	_ = ctx
	if id == "" {
		return nil, settlement.ErrEmptyID
	}
	r.mu.RLock()
	record := r.data[id]
	r.mu.RUnlock()
	if record == nil {
		return nil, settlement.ErrRecordNotFound
	}
	return cloneRecord(record), nil
}

// ListByMonth returns the records of one month.
func (r *SettlementRepository) ListByMonth(ctx context.Context, month settlement.MonthKey) ([]*settlement.SettlementRecord, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var records []*settlement.SettlementRecord
	for _, record := range r.data {
		if record.Month == month {
			records = append(records, cloneRecord(record))
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// Replace overwrites an existing record.
func (r *SettlementRepository) Replace(ctx context.Context, record *settlement.SettlementRecord) error {
	_ = ctx
	if err := record.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[record.ID]; !ok {
		return settlement.ErrRecordNotFound
	}
	r.data[record.ID] = cloneRecord(record)
	return nil
}

// Delete removes a record.
func (r *SettlementRepository) Delete(ctx context.Context, id string) error {
	_ = ctx
	if id == "" {
		return settlement.ErrEmptyID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return settlement.ErrRecordNotFound
	}
	delete(r.data, id)
	return nil
}

func cloneRecord(record *settlement.SettlementRecord) *settlement.SettlementRecord {
	clone := *record
	clone.Products = append([]settlement.ProductLine(nil), record.Products...)
	return &clone
}
