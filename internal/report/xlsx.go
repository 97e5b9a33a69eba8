package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Progress"

var xlsxHeader = []interface{}{"Category", "Result", "Score", "Total", "Percent", "Date"}

// WriteXLSX writes the rows as a single-sheet workbook
func WriteXLSX(w io.Writer, rows []Row, generated time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "F1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		values := []interface{}{row.Category, row.Status(), "", "", "", ""}
		if row.Attempted && row.Date != nil {
			values = []interface{}{
				row.Category,
				row.Status(),
				row.Score,
				row.Total,
				fmt.Sprintf("%.0f%%", row.Percent),
				row.Date.UTC().Format("2006-01-02 15:04"),
			}
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	footer, err := excelize.CoordinatesToCellName(1, len(rows)+3)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, footer, "Generated "+generated.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to write footer: %w", err)
	}

	if err := f.SetColWidth(sheetName, "A", "B", 18); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "F", "F", 18); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
