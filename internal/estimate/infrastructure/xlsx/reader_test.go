package xlsx

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	estimate "adsettle/internal/estimate/domain"
)

func workbookBytes(t *testing.T, cells map[string]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for ref, value := range cells {
		if err := f.SetCellValue(sheet, ref, value); err != nil {
			t.Fatalf("set cell %s: %v", ref, err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestReadRows(t *testing.T) {
	data := workbookBytes(t, map[string]string{
		"A1": "견적서",
		"A5": "취향의발견",
		"B3": "중간",
	})

	rows, err := NewReader().ReadRows("estimate.xlsx", data)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) < 5 {
		t.Fatalf("expected at least 5 rows, got %d", len(rows))
	}
	if rows[0][0] != "견적서" {
		t.Fatalf("expected A1 content, got %q", rows[0][0])
	}
	if rows[4][0] != "취향의발견" {
		t.Fatalf("expected A5 content, got %q", rows[4][0])
	}
}

func TestReadRowsRejectsExtension(t *testing.T) {
	_, err := NewReader().ReadRows("estimate.csv", nil)
	if !errors.Is(err, estimate.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestReadRowsExtensionCaseInsensitive(t *testing.T) {
	data := workbookBytes(t, map[string]string{"A1": "x"})
	if _, err := NewReader().ReadRows("ESTIMATE.XLSX", data); err != nil {
		t.Fatalf("expected upper-case extension accepted, got %v", err)
	}
}

func TestReadRowsCorruptPayload(t *testing.T) {
	_, err := NewReader().ReadRows("estimate.xlsx", []byte("not a zip"))
	if !errors.Is(err, estimate.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}
