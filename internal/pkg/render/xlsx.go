package render

import (
	"fmt"
	"io"

	"github.com/ougirez/profitability/internal/domain"
	"github.com/xuri/excelize/v2"
)

const valuesSheet = "Values"

var valuesHeader = []string{"Indicator", "Year", "Value"}

// ValuesXLSX writes rows as a spreadsheet with one line per value.
func ValuesXLSX(w io.Writer, rows []*domain.ValueRow) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", closeErr)
		}
	}()

	if err = f.SetSheetName("Sheet1", valuesSheet); err != nil {
		return fmt.Errorf("SetSheetName: %w", err)
	}

	for i, header := range valuesHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err = f.SetCellValue(valuesSheet, cell, header); err != nil {
			return fmt.Errorf("SetCellValue, cell-%s: %w", cell, err)
		}
	}
	if err = f.SetColWidth(valuesSheet, "A", "A", 32); err != nil {
		return fmt.Errorf("SetColWidth: %w", err)
	}

	for i, r := range rows {
		line := i + 2
		values := []interface{}{r.IndicatorTitle, r.Year, r.Value.InexactFloat64()}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, line)
			if err = f.SetCellValue(valuesSheet, cell, v); err != nil {
				return fmt.Errorf("SetCellValue, cell-%s: %w", cell, err)
			}
		}
	}

	if err = f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}

	return nil
}
