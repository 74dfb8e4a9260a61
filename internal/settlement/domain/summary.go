package settlement

// SummaryRow is the per-settlement line of a month summary.
type SummaryRow struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	CompanyName string   `json:"companyName"`
	Supply      float64  `json:"supply"`
	WithVat     float64  `json:"withVat"`
	Expense     float64  `json:"expense"`
	NetMargin   float64  `json:"netMargin"`
	MarginRatio float64  `json:"marginRatio"`
	Computed    Computed `json:"computed"`
}

// Overview is the rollup across all settlements of a month.
type Overview struct {
	Supply    float64 `json:"supply"`
	WithVat   float64 `json:"withVat"`
	Vat       float64 `json:"vat"`
	Expense   float64 `json:"expense"`
	NetMargin float64 `json:"netMargin"`
}

// Summary combines the overview with the per-settlement rows of one month.
type Summary struct {
	Month    MonthKey     `json:"month"`
	Rows     []SummaryRow `json:"rows"`
	Overview Overview     `json:"overview"`
	// Skipped counts records that could not be summarized. One bad record
	// does not abort the month rollup.
	Skipped int `json:"skipped"`
}

// BuildSummary recomputes the month summary from the given records.
// Nil records are skipped and reported via Summary.Skipped.
func BuildSummary(month MonthKey, records []*SettlementRecord, deliveryCostWithVat float64) Summary {
	summary := Summary{Month: month}
	for _, record := range records {
		if record == nil {
			summary.Skipped++
			continue
		}
		computed := Compute(record, deliveryCostWithVat)
		summary.Rows = append(summary.Rows, SummaryRow{
			ID:          record.ID,
			Label:       record.Label,
			CompanyName: record.CompanyName,
			Supply:      computed.TotalSupply,
			WithVat:     computed.TotalWithVat,
			Expense:     computed.TotalExpense,
			NetMargin:   computed.NetMargin,
			MarginRatio: computed.MarginRatio,
			Computed:    computed,
		})
		summary.Overview.Supply += computed.TotalSupply
		summary.Overview.WithVat += computed.TotalWithVat
		summary.Overview.Vat += computed.TotalWithVat - computed.TotalSupply
		summary.Overview.Expense += computed.TotalExpense
		summary.Overview.NetMargin += computed.NetMargin
	}
	return summary
}
