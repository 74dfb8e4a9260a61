package interfaces

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	settlement "adsettle/internal/settlement/domain"
)

// BuildSummaryXLSX renders a month summary workbook: an overview sheet and a
// per-settlement rows sheet.
func BuildSummaryXLSX(summary settlement.Summary) ([]byte, error) {
	f := excelize.NewFile()
	overviewSheet := "overview"
	rowsSheet := "settlements"
	f.SetSheetName("Sheet1", overviewSheet)
	if _, err := f.NewSheet(rowsSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(overviewSheet, "A1", "Month Settlement Summary")
	_ = f.SetCellValue(overviewSheet, "A3", "Month")
	_ = f.SetCellValue(overviewSheet, "B3", summary.Month.String())
	_ = f.SetCellValue(overviewSheet, "A4", "Supply")
	_ = f.SetCellValue(overviewSheet, "B4", summary.Overview.Supply)
	_ = f.SetCellValue(overviewSheet, "A5", "VAT")
	_ = f.SetCellValue(overviewSheet, "B5", summary.Overview.Vat)
	_ = f.SetCellValue(overviewSheet, "A6", "Total (with VAT)")
	_ = f.SetCellValue(overviewSheet, "B6", summary.Overview.WithVat)
	_ = f.SetCellValue(overviewSheet, "A7", "Expense")
	_ = f.SetCellValue(overviewSheet, "B7", summary.Overview.Expense)
	_ = f.SetCellValue(overviewSheet, "A8", "Net Margin")
	_ = f.SetCellValue(overviewSheet, "B8", summary.Overview.NetMargin)
	_ = f.SetCellValue(overviewSheet, "A9", "Settlements")
	_ = f.SetCellValue(overviewSheet, "B9", len(summary.Rows))

	headers := []string{"Label", "Company", "Supply", "Total (with VAT)", "Expense", "Net Margin", "Margin Ratio"}
	for i, header := range headers {
		cellRef, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(rowsSheet, cellRef, header)
	}
	for i, row := range summary.Rows {
		values := []any{row.Label, row.CompanyName, row.Supply, row.WithVat, row.Expense, row.NetMargin, row.MarginRatio}
		for j, value := range values {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			_ = f.SetCellValue(rowsSheet, cellRef, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildSummaryPDF renders a minimal PDF for a month summary.
func BuildSummaryPDF(summary settlement.Summary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Month Settlement Summary")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Month: %s", summary.Month))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Supply: %.0f", summary.Overview.Supply))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("VAT: %.0f", summary.Overview.Vat))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total (with VAT): %.0f", summary.Overview.WithVat))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Expense: %.0f", summary.Overview.Expense))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Net Margin: %.0f", summary.Overview.NetMargin))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(45, 6, "Label", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Supply", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Expense", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Net Margin", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Ratio", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, row := range summary.Rows {
		pdf.CellFormat(45, 6, row.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.0f", row.Supply), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.0f", row.Expense), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.0f", row.NetMargin), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", row.MarginRatio), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
