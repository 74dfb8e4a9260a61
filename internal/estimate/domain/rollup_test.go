package estimate

import "testing"

func docWithTotals(id string, month MonthKey, review, product, delivery, other float64) *EstimateDocument {
	doc := &EstimateDocument{ID: id, FileName: id + ".xlsx", Month: month}
	doc.Totals = CategoryTotals{Review: review, Product: product, Delivery: delivery, Other: other}
	doc.RecomputeAmounts()
	return doc
}

func TestBuildMonthRollupsGroupsByMonth(t *testing.T) {
	docs := []*EstimateDocument{
		docWithTotals("a", "2025-06", 100000, 0, 0, 0),
		docWithTotals("b", "2025-06", 50000, 30000, 0, 0),
		docWithTotals("c", "2025-05", 0, 0, 20000, 0),
	}

	rollups := BuildMonthRollups(docs)
	if len(rollups) != 2 {
		t.Fatalf("expected 2 rollups, got %d", len(rollups))
	}
	if rollups[0].Month != "2025-06" {
		t.Fatalf("expected most recent month first, got %s", rollups[0].Month)
	}
	june := rollups[0]
	if len(june.Documents) != 2 {
		t.Fatalf("expected 2 documents in june, got %d", len(june.Documents))
	}
	if june.Review.Supply != 150000 {
		t.Fatalf("expected review supply 150000, got %v", june.Review.Supply)
	}
	if june.Product.Supply != 30000 {
		t.Fatalf("expected product supply 30000, got %v", june.Product.Supply)
	}
	if june.All.Supply != 180000 {
		t.Fatalf("expected all supply 180000, got %v", june.All.Supply)
	}
	if june.All.Vat != 18000 {
		t.Fatalf("expected all vat 18000, got %v", june.All.Vat)
	}
	if june.All.Total != 198000 {
		t.Fatalf("expected all total 198000, got %v", june.All.Total)
	}
}

func TestBuildMonthRollupsUnspecifiedLast(t *testing.T) {
	docs := []*EstimateDocument{
		docWithTotals("a", MonthKeyUnspecified, 10000, 0, 0, 0),
		docWithTotals("b", "2025-01", 20000, 0, 0, 0),
		docWithTotals("c", "2025-07", 30000, 0, 0, 0),
	}

	rollups := BuildMonthRollups(docs)
	if len(rollups) != 3 {
		t.Fatalf("expected 3 rollups, got %d", len(rollups))
	}
	if rollups[0].Month != "2025-07" || rollups[1].Month != "2025-01" {
		t.Fatalf("unexpected month order: %s, %s", rollups[0].Month, rollups[1].Month)
	}
	if rollups[2].Month != MonthKeyUnspecified {
		t.Fatalf("expected unspecified bucket last, got %s", rollups[2].Month)
	}
}

func TestBuildMonthRollupsSkipsNilAndEmptyMonth(t *testing.T) {
	docs := []*EstimateDocument{
		nil,
		docWithTotals("a", "", 10000, 0, 0, 0),
	}
	rollups := BuildMonthRollups(docs)
	if len(rollups) != 1 {
		t.Fatalf("expected 1 rollup, got %d", len(rollups))
	}
	if rollups[0].Month != MonthKeyUnspecified {
		t.Fatalf("expected empty month to bucket as unspecified, got %s", rollups[0].Month)
	}
}

func TestBuildMonthRollupsEmptyInput(t *testing.T) {
	if rollups := BuildMonthRollups(nil); len(rollups) != 0 {
		t.Fatalf("expected no rollups, got %d", len(rollups))
	}
}
