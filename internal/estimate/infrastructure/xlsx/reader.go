// Package xlsx decodes uploaded estimate workbooks into raw sheet rows.
package xlsx

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	estimate "adsettle/internal/estimate/domain"
)

// Reader opens single-sheet xlsx workbooks. Files with any other extension
// are rejected before parsing.
type Reader struct{}

// NewReader constructs a reader.
func NewReader() *Reader { return &Reader{} }

// ReadRows returns the cell rows of the first sheet.
func (r *Reader) ReadRows(fileName string, data []byte) ([][]string, error) {
	if !strings.EqualFold(filepath.Ext(fileName), ".xlsx") {
		return nil, estimate.ErrUnsupportedFormat
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", estimate.ErrParse, err)
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", estimate.ErrParse)
	}
	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", estimate.ErrParse, err)
	}
	return rows, nil
}
