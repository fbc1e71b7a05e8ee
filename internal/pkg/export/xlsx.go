// Package export renders tabular data as XLSX workbooks.
package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Column describes one column of a sheet.
type Column struct {
	Header string
	Width  float64
	// Money applies a two-decimal number format to the column.
	Money bool
}

// Sheet is one worksheet with a header row followed by data rows.
type Sheet struct {
	Name    string
	Columns []Column
	Rows    [][]any
	// Totals, when set, is written after the data rows in bold.
	Totals []any
}

// WriteXLSX writes the sheets as a workbook to w.
func WriteXLSX(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("export: no sheets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1F4E78"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	moneyFmt := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return fmt.Errorf("creating money style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &moneyFmt})
	if err != nil {
		return fmt.Errorf("creating total style: %w", err)
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sh.Name); err != nil {
				return fmt.Errorf("renaming sheet %s: %w", sh.Name, err)
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", sh.Name, err)
		}
		if err := writeSheet(f, sh, headerStyle, moneyStyle, totalStyle); err != nil {
			return fmt.Errorf("writing sheet %s: %w", sh.Name, err)
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing Excel file: %w", err)
	}
	return nil
}

// XLSXBytes is WriteXLSX into a buffer.
func XLSXBytes(sheets ...Sheet) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sheets...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sh Sheet, headerStyle, moneyStyle, totalStyle int) error {
	for c, col := range sh.Columns {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(sh.Name, cell, col.Header); err != nil {
			return err
		}
		if col.Width > 0 {
			name, _ := excelize.ColumnNumberToName(c + 1)
			if err := f.SetColWidth(sh.Name, name, name, col.Width); err != nil {
				return err
			}
		}
	}
	if len(sh.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(sh.Columns), 1)
		if err := f.SetCellStyle(sh.Name, "A1", last, headerStyle); err != nil {
			return err
		}
		if err := f.SetPanes(sh.Name, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return err
		}
	}

	rowNum := 2
	for _, row := range sh.Rows {
		if err := writeRow(f, sh, rowNum, row, moneyStyle); err != nil {
			return err
		}
		rowNum++
	}
	if sh.Totals != nil {
		if err := writeRow(f, sh, rowNum, sh.Totals, totalStyle); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sh Sheet, rowNum int, row []any, moneyStyle int) error {
	for c, v := range row {
		cell, _ := excelize.CoordinatesToCellName(c+1, rowNum)
		if err := f.SetCellValue(sh.Name, cell, v); err != nil {
			return err
		}
		if c < len(sh.Columns) && sh.Columns[c].Money {
			if err := f.SetCellStyle(sh.Name, cell, cell, moneyStyle); err != nil {
				return err
			}
		}
	}
	return nil
}
