package estimate

import (
	"testing"
	"time"
)

func TestCategoryTotalsAddAndSum(t *testing.T) {
	var totals CategoryTotals
	totals.Add(CategoryReview, 50000)
	totals.Add(CategoryProduct, 30000)
	totals.Add(CategoryDelivery, 20000)
	totals.Add(CategoryOther, 10000)
	totals.Add(Category("unknown"), 5000)

	if totals.Review != 50000 {
		t.Fatalf("expected review 50000, got %v", totals.Review)
	}
	if totals.Other != 15000 {
		t.Fatalf("expected unknown amounts in other, got %v", totals.Other)
	}
	if got := totals.Sum(); got != 115000 {
		t.Fatalf("expected sum 115000, got %v", got)
	}
	if got := totals.Amount(CategoryDelivery); got != 20000 {
		t.Fatalf("expected delivery 20000, got %v", got)
	}
}

func TestRecomputeAmounts(t *testing.T) {
	doc := &EstimateDocument{}
	doc.Totals.Add(CategoryReview, 100000)
	doc.Totals.Add(CategoryProduct, 200000)
	doc.RecomputeAmounts()

	if doc.SupplyAmount != 300000 {
		t.Fatalf("expected supply 300000, got %v", doc.SupplyAmount)
	}
	if doc.VatAmount != 30000 {
		t.Fatalf("expected vat 30000, got %v", doc.VatAmount)
	}
	if doc.TotalAmount != 330000 {
		t.Fatalf("expected total 330000, got %v", doc.TotalAmount)
	}
}

func TestDocumentValidate(t *testing.T) {
	var nilDoc *EstimateDocument
	if err := nilDoc.Validate(); err != ErrNilDocument {
		t.Fatalf("expected ErrNilDocument, got %v", err)
	}
	doc := &EstimateDocument{FileName: "estimate.xlsx"}
	if err := doc.Validate(); err != ErrEmptyID {
		t.Fatalf("expected ErrEmptyID, got %v", err)
	}
	doc = &EstimateDocument{ID: "doc-1", FileName: "  "}
	if err := doc.Validate(); err != ErrEmptyFileName {
		t.Fatalf("expected ErrEmptyFileName, got %v", err)
	}
	doc = &EstimateDocument{ID: "doc-1", FileName: "estimate.xlsx"}
	if err := doc.Validate(); err != nil {
		t.Fatalf("expected valid document, got %v", err)
	}
}

func TestMonthKeyOrdering(t *testing.T) {
	january := NewMonthKey(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC))
	june := NewMonthKey(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))

	if january != "2025-01" {
		t.Fatalf("expected 2025-01, got %s", january)
	}
	if !january.Before(june) {
		t.Fatalf("expected january before june")
	}
	if !june.Before(MonthKeyUnspecified) {
		t.Fatalf("expected real month before unspecified")
	}
	if MonthKeyUnspecified.Before(january) {
		t.Fatalf("expected unspecified to sort last")
	}
}

func TestNewMonthKeyZeroTime(t *testing.T) {
	if got := NewMonthKey(time.Time{}); got != MonthKeyUnspecified {
		t.Fatalf("expected unspecified for zero time, got %s", got)
	}
}

func TestParseMonthKey(t *testing.T) {
	if _, err := ParseMonthKey("2025-13"); err == nil {
		t.Fatalf("expected error for invalid month")
	}
	got, err := ParseMonthKey("2025-06")
	if err != nil {
		t.Fatalf("parse month: %v", err)
	}
	if got != "2025-06" {
		t.Fatalf("expected 2025-06, got %s", got)
	}
	sentinel, err := ParseMonthKey("unspecified")
	if err != nil {
		t.Fatalf("parse sentinel: %v", err)
	}
	if sentinel != MonthKeyUnspecified {
		t.Fatalf("expected sentinel, got %s", sentinel)
	}
}
