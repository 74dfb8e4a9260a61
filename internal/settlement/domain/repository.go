package settlement

import "context"

// Repository persists settlement records. Replace overwrites the whole
// record; there are no field-level patches.
type Repository interface {
	Create(ctx context.Context, record *SettlementRecord) error
	GetByID(ctx context.Context, id string) (*SettlementRecord, error)
	ListByMonth(ctx context.Context, month MonthKey) ([]*SettlementRecord, error)
	Replace(ctx context.Context, record *SettlementRecord) error
	Delete(ctx context.Context, id string) error
}
