package settlement

import (
	"strings"
	"time"
)

// MonthKey is the reporting month of a settlement ("2006-01").
type MonthKey string

const monthKeyLayout = "2006-01"

// ParseMonthKey validates a raw month string.
func ParseMonthKey(raw string) (MonthKey, error) {
	t, err := time.Parse(monthKeyLayout, raw)
	if err != nil {
		return "", ErrInvalidMonth
	}
	return MonthKey(t.UTC().Format(monthKeyLayout)), nil
}

// String returns the raw string for storage.
func (k MonthKey) String() string { return string(k) }

// ProductLine is one product row of a settlement. A product's expense is
// defined to be identical to its revenue, so there is no expense-side entry.
type ProductLine struct {
	Name      string `json:"name"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

// SettlementRecord is one client's monthly revenue-and-expense bundle.
// Numeric inputs are kept exactly as entered; derived values never overwrite
// them. Blank or unparseable inputs compute as zero.
type SettlementRecord struct {
	ID          string        `json:"id"`
	Label       string        `json:"label"`
	CompanyName string        `json:"companyName"`
	Month       MonthKey      `json:"month"`
	Memo        string        `json:"memo"`
	Products    []ProductLine `json:"products"`

	// Revenue inputs.
	ProcessingFee string `json:"processingFee"`
	ProcessingQty string `json:"processingQty"`
	DeliveryFee   string `json:"deliveryFee"`
	DeliveryQty   string `json:"deliveryQty"`

	// Expense input: processing cost per unit. The expense quantity is the
	// revenue-side processing quantity.
	ExpenseProcessingFee string `json:"expenseProcessingFee"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate checks the invariants required before persisting.
func (r *SettlementRecord) Validate() error {
	if r == nil {
		return ErrNilRecord
	}
	if r.ID == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(r.Label) == "" {
		return ErrEmptyLabel
	}
	if _, err := ParseMonthKey(r.Month.String()); err != nil {
		return ErrInvalidMonth
	}
	return nil
}
