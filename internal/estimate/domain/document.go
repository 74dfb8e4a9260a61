package estimate

import (
	"strings"
	"time"
)

// VATRate is the fixed value-added tax applied to supply amounts.
const VATRate = 0.1

// LineItem is one extracted estimate row.
type LineItem struct {
	Name       string   `json:"name"`
	Category   Category `json:"category"`
	Quantity   int      `json:"quantity"`
	UnitPrice  float64  `json:"unitPrice"`
	TotalPrice float64  `json:"totalPrice"`
}

// CategoryTotals holds the per-category supply sums of a document.
type CategoryTotals struct {
	Review   float64 `json:"review"`
	Product  float64 `json:"product"`
	Delivery float64 `json:"delivery"`
	Other    float64 `json:"other"`
}

// Add accumulates an amount into the matching bucket.
func (t *CategoryTotals) Add(category Category, amount float64) {
	switch category {
	case CategoryReview:
		t.Review += amount
	case CategoryProduct:
		t.Product += amount
	case CategoryDelivery:
		t.Delivery += amount
	default:
		t.Other += amount
	}
}

// Amount returns the bucket value for a category.
func (t CategoryTotals) Amount(category Category) float64 {
	switch category {
	case CategoryReview:
		return t.Review
	case CategoryProduct:
		return t.Product
	case CategoryDelivery:
		return t.Delivery
	default:
		return t.Other
	}
}

// Sum returns the total across all four buckets.
func (t CategoryTotals) Sum() float64 {
	return t.Review + t.Product + t.Delivery + t.Other
}

// CompanyInfo identifies the counterpart company on an estimate.
type CompanyInfo struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// AgencyInfo identifies the issuing agency on an estimate.
type AgencyInfo struct {
	Name           string `json:"name"`
	Representative string `json:"representative"`
	Phone          string `json:"phone"`
}

// EstimateDocument is the normalized result of one extracted vendor estimate.
// It is created once at extraction time and immutable afterwards.
// Invariant: SupplyAmount equals Totals.Sum(); VatAmount and TotalAmount are
// derived from SupplyAmount and never stored independently.
type EstimateDocument struct {
	ID           string         `json:"id"`
	FileName     string         `json:"fileName"`
	Company      CompanyInfo    `json:"company"`
	Agency       AgencyInfo     `json:"agency"`
	IssuedAt     *time.Time     `json:"issuedAt,omitempty"`
	Month        MonthKey       `json:"month"`
	Items        []LineItem     `json:"items"`
	Totals       CategoryTotals `json:"categoryTotals"`
	SupplyAmount float64        `json:"supplyAmount"`
	VatAmount    float64        `json:"vatAmount"`
	TotalAmount  float64        `json:"totalAmount"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// RecomputeAmounts re-derives the supply/VAT/total amounts from the category
// totals. Call after the item list changes.
func (d *EstimateDocument) RecomputeAmounts() {
	d.SupplyAmount = d.Totals.Sum()
	d.VatAmount = d.SupplyAmount * VATRate
	d.TotalAmount = d.SupplyAmount + d.VatAmount
}

// Validate checks the invariants required before persisting.
func (d *EstimateDocument) Validate() error {
	if d == nil {
		return ErrNilDocument
	}
	if d.ID == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(d.FileName) == "" {
		return ErrEmptyFileName
	}
	return nil
}
