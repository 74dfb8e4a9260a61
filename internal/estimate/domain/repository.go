package estimate

import "context"

// Repository persists estimate documents. Documents are immutable after
// creation; there is no update operation.
type Repository interface {
	Create(ctx context.Context, doc *EstimateDocument) error
	GetByID(ctx context.Context, id string) (*EstimateDocument, error)
	ListByMonth(ctx context.Context, month MonthKey) ([]*EstimateDocument, error)
	ListAll(ctx context.Context) ([]*EstimateDocument, error)
	Delete(ctx context.Context, id string) error
}
