// pricebook/parsers/pricesheet_parser.go
package parsers

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pricebook/model"
)

// productMarker is the record type code product rows carry in column 0;
// every other code is a header/footer/summary row.
const productMarker = "P"

// ParsedSheet is the full result of one scan: every product row that
// mapped, every row that failed to map, and the count of silently skipped
// non-product/incomplete rows. A scan never aborts early.
type ParsedSheet struct {
	Records []model.RawRecord
	Errors  []model.ParseError
	Skipped int
}

// layoutSpec maps positional columns to named fields for one of the two
// export layouts. -1 marks a column the layout does not carry.
type layoutSpec struct {
	layout     model.RowLayout
	minColumns int

	sku, caseQty, splitQty, packSize   int
	brand, description, manufacturerNo int
	casePrice, eachPrice, perWeight    int
	categoryText                       int
}

var purchaseOrderLayout = layoutSpec{
	layout:     model.LayoutPurchaseOrder,
	minColumns: 9,
	sku:        1, caseQty: 2, splitQty: 3, packSize: 4,
	brand: 5, description: 6, manufacturerNo: 7,
	casePrice: 8, eachPrice: 9, perWeight: 10,
	categoryText: 11,
}

var purchaseHistoryLayout = layoutSpec{
	layout:     model.LayoutPurchaseHistory,
	minColumns: 17,
	sku:        1, caseQty: 4, splitQty: 5, packSize: 7,
	brand: 8, description: 9, manufacturerNo: 10,
	casePrice: 14, eachPrice: 15, perWeight: 16,
	categoryText: 18,
}

// detectLayout picks the layout from the column count. The purchase-history
// export is the wide one (20+ columns); anything narrower is read as a
// purchase-order export.
func detectLayout(cols []string) layoutSpec {
	if len(cols) >= 20 {
		return purchaseHistoryLayout
	}
	return purchaseOrderLayout
}

// SplitLine splits one raw CSV text line into trimmed fields, honoring
// double-quote-enclosed fields with embedded commas and "" escapes. It
// never fails: an unterminated quote consumes the rest of the line.
func SplitLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inQuotes:
			if c == '"' {
				if i+1 < len(line) && line[i+1] == '"' {
					cur.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				cur.WriteByte(c)
			}
		case c == '"':
			inQuotes = true
		case c == ',':
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	fields = append(fields, strings.TrimSpace(cur.String()))
	return fields
}

// ParsePriceSheet scans a decoded vendor CSV export. Header/footer rows and
// rows missing both SKU and description are skipped without being counted
// as errors; rows that cannot be mapped are collected as parse errors with
// their line number and raw text.
func ParsePriceSheet(r io.Reader) (*ParsedSheet, error) {
	decoded, err := DecodeVendorText(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read price sheet: %w", err)
	}

	sheet := &ParsedSheet{}
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	line := 0
	sawAny := false
	for scanner.Scan() {
		line++
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		sawAny = true
		mapLine(sheet, SplitLine(raw), raw, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read price sheet: %w", err)
	}
	if !sawAny {
		return nil, fmt.Errorf("price sheet is empty")
	}
	return sheet, nil
}

// mapLine maps one tokenized row into the sheet. Shared by the CSV and
// XLSX paths.
func mapLine(sheet *ParsedSheet, cols []string, raw string, line int) {
	if len(cols) == 0 || strings.TrimSpace(cols[0]) != productMarker {
		sheet.Skipped++
		return
	}

	spec := detectLayout(cols)
	if len(cols) < spec.minColumns {
		sheet.Errors = append(sheet.Errors, model.ParseError{
			LineNumber: line,
			RawText:    raw,
			Message:    fmt.Sprintf("product row has %d columns, %s layout needs at least %d", len(cols), spec.layout, spec.minColumns),
		})
		return
	}

	get := func(idx int) string {
		if idx >= 0 && idx < len(cols) {
			return strings.TrimSpace(cols[idx])
		}
		return ""
	}
	getFloat := func(idx int) float64 {
		v, _ := strconv.ParseFloat(get(idx), 64)
		return v
	}

	rec := model.RawRecord{
		Layout:         spec.layout,
		RecordType:     get(0),
		VendorSKU:      get(spec.sku),
		CaseQty:        getFloat(spec.caseQty),
		SplitQty:       getFloat(spec.splitQty),
		PackSizeText:   get(spec.packSize),
		Brand:          get(spec.brand),
		Description:    get(spec.description),
		ManufacturerNo: get(spec.manufacturerNo),
		CasePriceRaw:   get(spec.casePrice),
		EachPriceRaw:   get(spec.eachPrice),
		PerWeightRaw:   get(spec.perWeight),
		CategoryText:   get(spec.categoryText),
		LineNumber:     line,
	}

	// A product row with neither SKU nor description is a gap, not an error.
	if rec.VendorSKU == "" && rec.Description == "" {
		sheet.Skipped++
		return
	}

	sheet.Records = append(sheet.Records, rec)
}
