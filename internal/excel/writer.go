// Package excel persists extraction rows as an XLSX workbook.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jmendezr85/pdf-extractor-excel/internal/pipeline"
)

// DefaultSheetName is used when the caller leaves the sheet name empty.
const DefaultSheetName = "Datos"

// Writer turns ordered rows into a spreadsheet: one header row, one data row
// per page, columns being the union of the row columns in first-seen order.
type Writer struct{}

// NewWriter creates a Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteRows writes rows to an XLSX file at path under the given sheet name.
// Rows may carry differing column sets; missing values become empty cells.
func (w *Writer) WriteRows(rows []pipeline.Row, path, sheetName string) error {
	if path == "" {
		return fmt.Errorf("output path cannot be empty")
	}
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	headers := unionColumns(rows)

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("error al escribir Excel: %w", err)
	}
	f.SetActiveSheet(index)
	// Drop the default sheet unless it is the target.
	if sheetName != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("error al escribir Excel: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("error al escribir Excel: %w", err)
		}
	}

	for r, row := range rows {
		for c, h := range headers {
			value, ok := row.Values[h]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("error al escribir Excel: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("error al escribir Excel: %w", err)
			}
		}
	}

	// Widen columns so the long Spanish headers stay readable.
	for i, h := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		width := float64(len([]rune(h))) + 4
		if width < 12 {
			width = 12
		}
		if width > 50 {
			width = 50
		}
		_ = f.SetColWidth(sheetName, col, col, width)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("error al escribir Excel: %w", err)
	}
	return nil
}

// unionColumns merges the column lists of all rows, keeping first-seen order.
func unionColumns(rows []pipeline.Row) []string {
	var headers []string
	seen := make(map[string]struct{})
	for _, row := range rows {
		for _, col := range row.Columns {
			if _, ok := seen[col]; ok {
				continue
			}
			seen[col] = struct{}{}
			headers = append(headers, col)
		}
	}
	return headers
}
