package application

import (
	"strings"
	"time"

	"github.com/google/uuid"

	estimate "adsettle/internal/estimate/domain"
	"adsettle/internal/numeric"
)

// Fixed layout of the vendor estimate sheet (zero-based row/column offsets).
const (
	rowIssueDate = 1
	colIssueDate = 5

	rowCompanyName   = 4
	colCompanyName   = 0
	colAgencyName    = 3
	rowContact       = 5
	colContact       = 1
	colAgencyRep     = 5
	rowCompanyPhone  = 6
	colCompanyPhone  = 1
	rowCompanyEmail  = 7
	colCompanyEmail  = 1
	colAgencyPhone   = 5
	rowItemsStart    = 13
	colItemName      = 0
	colItemQuantity  = 3
	colItemUnitPrice = 4
	colItemTotal     = 5
)

// Spreadsheet date serials count days from 1899-12-30; Unix day zero is
// serial 25569.
const (
	dateSerialEpochDays = 25569
	secondsPerDay       = 86400
)

// Rows after the trailer marker are never line items.
var trailerMarkers = []string{"이하여백", "이하 여백"}

// Summary rows repeat amounts already carried by the items above them and
// must be skipped to avoid double counting.
var summaryMarkers = []string{"소계", "부가세", "합계"}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

// Now returns current time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// IDGenerator mints document identifiers.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random UUID identifiers.
type UUIDGenerator struct{}

// NewID returns a fresh UUID string.
func (UUIDGenerator) NewID() string { return uuid.NewString() }

// ExtractService turns raw workbook rows into estimate documents.
type ExtractService struct {
	ids   IDGenerator
	clock Clock
}

// NewExtractService constructs the service.
func NewExtractService(ids IDGenerator, clock Clock) *ExtractService {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &ExtractService{ids: ids, clock: clock}
}

// Extract builds a normalized document from the raw cell rows of one sheet.
// The transform is total over its input: short or ragged rows yield empty
// fields, not errors.
func (s *ExtractService) Extract(fileName string, rows [][]string) (*estimate.EstimateDocument, error) {
	if strings.TrimSpace(fileName) == "" {
		return nil, estimate.ErrEmptyFileName
	}

	doc := &estimate.EstimateDocument{
		ID:       s.ids.NewID(),
		FileName: fileName,
		Company: estimate.CompanyInfo{
			Name:    cell(rows, rowCompanyName, colCompanyName),
			Contact: cell(rows, rowContact, colContact),
			Phone:   cell(rows, rowCompanyPhone, colCompanyPhone),
			Email:   cell(rows, rowCompanyEmail, colCompanyEmail),
		},
		Agency: estimate.AgencyInfo{
			Name:           cell(rows, rowCompanyName, colAgencyName),
			Representative: cell(rows, rowContact, colAgencyRep),
			Phone:          cell(rows, rowCompanyEmail, colAgencyPhone),
		},
		Month:     estimate.MonthKeyUnspecified,
		CreatedAt: s.clock.Now(),
	}

	if issuedAt, ok := parseDateSerial(cell(rows, rowIssueDate, colIssueDate)); ok {
		doc.IssuedAt = &issuedAt
		doc.Month = estimate.NewMonthKey(issuedAt)
	}

	for i := rowItemsStart; i < len(rows); i++ {
		name := cell(rows, i, colItemName)
		if name == "" {
			continue
		}
		if containsAny(name, trailerMarkers) {
			break
		}
		if containsAny(name, summaryMarkers) {
			continue
		}
		totalPrice := numeric.Coerce(cell(rows, i, colItemTotal))
		if totalPrice == 0 {
			continue
		}
		item := estimate.LineItem{
			Name:       name,
			Category:   estimate.Classify(name),
			Quantity:   numeric.CoerceInt(cell(rows, i, colItemQuantity)),
			UnitPrice:  numeric.Coerce(cell(rows, i, colItemUnitPrice)),
			TotalPrice: totalPrice,
		}
		doc.Items = append(doc.Items, item)
		doc.Totals.Add(item.Category, item.TotalPrice)
	}

	doc.RecomputeAmounts()
	return doc, nil
}

func cell(rows [][]string, row, col int) string {
	if row >= len(rows) {
		return ""
	}
	if col >= len(rows[row]) {
		return ""
	}
	return strings.TrimSpace(rows[row][col])
}

func containsAny(name string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

// parseDateSerial converts a spreadsheet day serial into a calendar instant.
// Non-numeric or non-positive serials report false.
func parseDateSerial(raw string) (time.Time, bool) {
	serial := numeric.Coerce(raw)
	if serial <= 0 {
		return time.Time{}, false
	}
	seconds := (serial - dateSerialEpochDays) * secondsPerDay
	return time.Unix(int64(seconds), 0).UTC(), true
}
