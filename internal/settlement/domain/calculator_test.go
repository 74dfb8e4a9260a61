package settlement

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeRevenueAndExpense(t *testing.T) {
	record := &SettlementRecord{
		ID:            "stl-1",
		Label:         "6월 정산",
		Month:         "2025-06",
		ProcessingFee: "1,000",
		ProcessingQty: "10",
		DeliveryFee:   "500",
		DeliveryQty:   "4",
	}

	c := Compute(record, 2750)

	if c.ProcessingSupply != 10000 {
		t.Fatalf("expected processing supply 10000, got %v", c.ProcessingSupply)
	}
	if !almostEqual(c.ProcessingTotal, 11000) {
		t.Fatalf("expected processing total 11000, got %v", c.ProcessingTotal)
	}
	if !almostEqual(c.ProcessingFeeVat, 1100) {
		t.Fatalf("expected vat-inclusive fee 1100, got %v", c.ProcessingFeeVat)
	}
	if c.DeliverySupply != 2000 {
		t.Fatalf("expected delivery supply 2000, got %v", c.DeliverySupply)
	}
	if c.TotalSupply != 12000 {
		t.Fatalf("expected total supply 12000, got %v", c.TotalSupply)
	}
	if !almostEqual(c.TotalWithVat, 13200) {
		t.Fatalf("expected total with vat 13200, got %v", c.TotalWithVat)
	}
	if c.ExpenseDeliveryTotal != 11000 {
		t.Fatalf("expected delivery expense 11000, got %v", c.ExpenseDeliveryTotal)
	}
	if c.TotalExpense != 11000 {
		t.Fatalf("expected total expense 11000, got %v", c.TotalExpense)
	}
	if c.NetMargin != 1000 {
		t.Fatalf("expected net margin 1000, got %v", c.NetMargin)
	}
	if !almostEqual(c.MarginRatio, 1000.0/12000.0) {
		t.Fatalf("expected margin ratio %v, got %v", 1000.0/12000.0, c.MarginRatio)
	}
}

func TestComputeProducts(t *testing.T) {
	record := &SettlementRecord{
		ID:    "stl-1",
		Label: "정산",
		Month: "2025-06",
		Products: []ProductLine{
			{Name: "샘플 A", Quantity: "3", UnitPrice: "10,000"},
			{Name: "샘플 B", Quantity: "2", UnitPrice: "₩5,000"},
		},
	}

	c := Compute(record, 0)

	if c.ProductSupply != 40000 {
		t.Fatalf("expected product supply 40000, got %v", c.ProductSupply)
	}
	if !almostEqual(c.ProductTotal, 44000) {
		t.Fatalf("expected product total 44000, got %v", c.ProductTotal)
	}
	// Product expense mirrors product revenue by definition.
	if c.ExpenseProductTotal != c.ProductSupply {
		t.Fatalf("expected product expense %v, got %v", c.ProductSupply, c.ExpenseProductTotal)
	}
	if c.NetMargin != 0 {
		t.Fatalf("expected zero margin on product-only record, got %v", c.NetMargin)
	}
}

func TestComputeExpenseProcessingUsesRevenueQty(t *testing.T) {
	record := &SettlementRecord{
		ID:                   "stl-1",
		Label:                "정산",
		Month:                "2025-06",
		ProcessingFee:        "1000",
		ProcessingQty:        "10",
		ExpenseProcessingFee: "800",
	}

	c := Compute(record, 0)
	if c.ExpenseProcessingTotal != 8000 {
		t.Fatalf("expected processing expense 8000, got %v", c.ExpenseProcessingTotal)
	}
	if c.NetMargin != 2000 {
		t.Fatalf("expected net margin 2000, got %v", c.NetMargin)
	}
}

func TestComputeMalformedInputsAreZero(t *testing.T) {
	record := &SettlementRecord{
		ID:            "stl-1",
		Label:         "정산",
		Month:         "2025-06",
		ProcessingFee: "abc",
		ProcessingQty: "10",
		DeliveryFee:   "",
		DeliveryQty:   "4",
	}

	c := Compute(record, 2750)
	if c.TotalSupply != 0 {
		t.Fatalf("expected zero supply, got %v", c.TotalSupply)
	}
	if c.MarginRatio != 0 {
		t.Fatalf("expected zero margin ratio when supply is zero, got %v", c.MarginRatio)
	}
	if c.ExpenseDeliveryTotal != 11000 {
		t.Fatalf("expected delivery expense from quantity, got %v", c.ExpenseDeliveryTotal)
	}
}

func TestComputeNilRecord(t *testing.T) {
	c := Compute(nil, 2750)
	if c != (Computed{}) {
		t.Fatalf("expected zero computed for nil record, got %+v", c)
	}
}
