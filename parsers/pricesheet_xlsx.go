// pricebook/parsers/pricesheet_xlsx.go
package parsers

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParsePriceSheetXLSX reads the same distributor export re-saved as a
// workbook (some reps mail it that way). The first sheet is mapped through
// the identical layout rules as the CSV path.
func ParsePriceSheetXLSX(r io.Reader) (*ParsedSheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("price sheet is empty")
	}

	sheet := &ParsedSheet{}
	for i, row := range rows {
		cols := make([]string, len(row))
		for j, c := range row {
			cols[j] = strings.TrimSpace(c)
		}
		if len(cols) == 0 {
			continue
		}
		mapLine(sheet, cols, strings.Join(cols, ","), i+1)
	}
	return sheet, nil
}
