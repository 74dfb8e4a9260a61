package interfaces

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"adsettle/internal/observability/metrics"
	settlementapp "adsettle/internal/settlement/application"
	settlement "adsettle/internal/settlement/domain"
)

// ExportHandler serves month summary exports (xlsx, pdf) and the raw
// settlement CSV export.
type ExportHandler struct {
	summaries *settlementapp.SummaryService
	service   *settlementapp.SettlementService
}

// NewExportHandler constructs a handler.
func NewExportHandler(summaries *settlementapp.SummaryService, service *settlementapp.SettlementService) (*ExportHandler, error) {
	if summaries == nil {
		return nil, errors.New("export handler: nil summary service")
	}
	if service == nil {
		return nil, errors.New("export handler: nil settlement service")
	}
	return &ExportHandler{summaries: summaries, service: service}, nil
}

// ServeHTTP handles GET /api/v1/exports/{summary.xlsx|summary.pdf|settlements.csv}.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	month, err := settlement.ParseMonthKey(r.URL.Query().Get("month"))
	if err != nil {
		http.Error(w, "month is required as YYYY-MM", http.StatusBadRequest)
		return
	}

	switch r.URL.Path {
	case "/api/v1/exports/summary.xlsx":
		h.exportSummary(w, r, month, "xlsx")
	case "/api/v1/exports/summary.pdf":
		h.exportSummary(w, r, month, "pdf")
	case "/api/v1/exports/settlements.csv":
		h.exportCSV(w, r, month)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *ExportHandler) exportSummary(w http.ResponseWriter, r *http.Request, month settlement.MonthKey, format string) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveExport(format, result, time.Since(start))
	}()

	summary, err := h.summaries.MonthSummary(r.Context(), month)
	if err != nil {
		result = metrics.ResultError
		respondSettlementError(w, err)
		return
	}

	var payload []byte
	var contentType string
	switch format {
	case "xlsx":
		payload, err = BuildSummaryXLSX(summary)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		payload, err = BuildSummaryPDF(summary)
		contentType = "application/pdf"
	}
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export render error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=summary-%s.%s", month, format))
	_, _ = w.Write(payload)
}

func (h *ExportHandler) exportCSV(w http.ResponseWriter, r *http.Request, month settlement.MonthKey) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveExport("csv", result, time.Since(start))
	}()

	records, err := h.service.ListMonth(r.Context(), month)
	if err != nil {
		result = metrics.ResultError
		respondSettlementError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=settlements-%s.csv", month))
	writer := csv.NewWriter(w)
	// Raw inputs are exported exactly as entered.
	_ = writer.Write([]string{
		"id",
		"label",
		"company",
		"month",
		"processing_fee",
		"processing_qty",
		"delivery_fee",
		"delivery_qty",
		"expense_processing_fee",
		"supply",
		"expense",
		"net_margin",
	})
	for _, record := range records {
		computed, err := h.summaries.ComputeOne(r.Context(), record)
		if err != nil {
			result = metrics.ResultError
			respondSettlementError(w, err)
			return
		}
		_ = writer.Write([]string{
			record.ID,
			record.Label,
			record.CompanyName,
			record.Month.String(),
			record.ProcessingFee,
			record.ProcessingQty,
			record.DeliveryFee,
			record.DeliveryQty,
			record.ExpenseProcessingFee,
			formatFloat(computed.TotalSupply),
			formatFloat(computed.TotalExpense),
			formatFloat(computed.NetMargin),
		})
	}
	writer.Flush()
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
