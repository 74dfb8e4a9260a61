package estimate

import "sort"

// AmountSet is a supply/VAT/total triple.
// Invariant: Vat = Supply * VATRate, Total = Supply + Vat.
type AmountSet struct {
	Supply float64 `json:"supply"`
	Vat    float64 `json:"vat"`
	Total  float64 `json:"total"`
}

func newAmountSet(supply float64) AmountSet {
	vat := supply * VATRate
	return AmountSet{Supply: supply, Vat: vat, Total: supply + vat}
}

// MonthRollup aggregates the estimate documents of one month bucket.
// Every field is recomputed from the current membership; rollups are never
// patched incrementally.
type MonthRollup struct {
	Month     MonthKey            `json:"month"`
	Documents []*EstimateDocument `json:"documents"`
	Review    AmountSet           `json:"review"`
	Product   AmountSet           `json:"product"`
	Delivery  AmountSet           `json:"delivery"`
	Other     AmountSet           `json:"other"`
	All       AmountSet           `json:"all"`
}

// BuildMonthRollups groups documents by month bucket and computes per-category
// and overall totals for each bucket. Buckets are ordered most recent first,
// with the unspecified bucket last.
func BuildMonthRollups(documents []*EstimateDocument) []MonthRollup {
	byMonth := make(map[MonthKey][]*EstimateDocument)
	for _, doc := range documents {
		if doc == nil {
			continue
		}
		month := doc.Month
		if month == "" {
			month = MonthKeyUnspecified
		}
		byMonth[month] = append(byMonth[month], doc)
	}

	rollups := make([]MonthRollup, 0, len(byMonth))
	for month, docs := range byMonth {
		rollups = append(rollups, buildRollup(month, docs))
	}
	sort.Slice(rollups, func(i, j int) bool {
		if rollups[i].Month == MonthKeyUnspecified {
			return false
		}
		if rollups[j].Month == MonthKeyUnspecified {
			return true
		}
		return rollups[j].Month.Before(rollups[i].Month)
	})
	return rollups
}

func buildRollup(month MonthKey, docs []*EstimateDocument) MonthRollup {
	var totals CategoryTotals
	for _, doc := range docs {
		totals.Review += doc.Totals.Review
		totals.Product += doc.Totals.Product
		totals.Delivery += doc.Totals.Delivery
		totals.Other += doc.Totals.Other
	}
	return MonthRollup{
		Month:     month,
		Documents: docs,
		Review:    newAmountSet(totals.Review),
		Product:   newAmountSet(totals.Product),
		Delivery:  newAmountSet(totals.Delivery),
		Other:     newAmountSet(totals.Other),
		All:       newAmountSet(totals.Sum()),
	}
}
