// pricebook/valuation/handler.go
package valuation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"pricebook/config"
	"pricebook/database"
	"pricebook/model"
)

// DetailRow is one catalog item's on-hand value.
type DetailRow struct {
	VendorSKU     string  `json:"vendorSku"`
	ProductName   string  `json:"productName"`
	Category      string  `json:"category"`
	Unit          string  `json:"unit"`
	StockQuantity float64 `json:"stockQuantity"`
	CostPerUnit   float64 `json:"costPerUnit"`
	CasePrice     float64 `json:"casePrice"`
	TotalValue    float64 `json:"totalValue"`
}

// Group aggregates on-hand value per category.
type Group struct {
	Category   string      `json:"category"`
	DetailRows []DetailRow `json:"detailRows"`
	TotalValue float64     `json:"totalValue"`
}

// GetValuationHandler returns the on-hand inventory value grouped by
// category.
func GetValuationHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID := r.URL.Query().Get("merchantId")
		if merchantID == "" {
			merchantID = config.GetConfig().DefaultMerchantID
		}

		results, err := runValuation(conn, merchantID)
		if err != nil {
			http.Error(w, "Failed to get inventory valuation: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(results)
	}
}

func quoteAll(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ExportValuationCSVHandler writes the valuation report as CSV.
func ExportValuationCSVHandler(conn *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID := r.URL.Query().Get("merchantId")
		if merchantID == "" {
			merchantID = config.GetConfig().DefaultMerchantID
		}

		results, err := runValuation(conn, merchantID)
		if err != nil {
			http.Error(w, "Failed to get inventory valuation for export: "+err.Error(), http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		buf.Write([]byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM

		header := []string{"category", "vendor_sku", "product_name", "stock_quantity", "unit", "cost_per_unit", "total_value"}
		buf.WriteString(strings.Join(header, ",") + "\r\n")

		for _, group := range results {
			for _, row := range group.DetailRows {
				record := []string{
					quoteAll(group.Category),
					quoteAll(row.VendorSKU),
					quoteAll(row.ProductName),
					quoteAll(fmt.Sprintf("%.2f", row.StockQuantity)),
					quoteAll(row.Unit),
					quoteAll(fmt.Sprintf("%.4f", row.CostPerUnit)),
					quoteAll(fmt.Sprintf("%.2f", row.TotalValue)),
				}
				buf.WriteString(strings.Join(record, ",") + "\r\n")
			}
		}

		filename := fmt.Sprintf("valuation_%s.csv", merchantID)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
		w.Write(buf.Bytes())
	}
}

func runValuation(conn *sqlx.DB, merchantID string) ([]Group, error) {
	items, err := database.GetAllCatalogItems(conn, merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog items: %w", err)
	}

	resultGroups := make(map[string]*Group)
	for _, item := range items {
		row := toDetailRow(item)

		cat := item.Category
		if cat == "" {
			cat = "Other"
		}
		group, ok := resultGroups[cat]
		if !ok {
			group = &Group{Category: cat}
			resultGroups[cat] = group
		}
		group.DetailRows = append(group.DetailRows, row)
		group.TotalValue += row.TotalValue
	}

	finalResult := make([]Group, 0, len(resultGroups))
	for _, group := range resultGroups {
		sort.Slice(group.DetailRows, func(i, j int) bool {
			return group.DetailRows[i].ProductName < group.DetailRows[j].ProductName
		})
		finalResult = append(finalResult, *group)
	}
	sort.Slice(finalResult, func(i, j int) bool {
		return finalResult[i].Category < finalResult[j].Category
	})

	return finalResult, nil
}

func toDetailRow(item model.CatalogItem) DetailRow {
	// Stock is counted in cases; a case's content value is cost-per-unit
	// times the case's content units.
	caseValue := item.CostPerUnit * item.CasePackUnits
	return DetailRow{
		VendorSKU:     item.VendorSKU,
		ProductName:   item.ProductName,
		Category:      item.Category,
		Unit:          item.Unit,
		StockQuantity: item.StockQuantity,
		CostPerUnit:   item.CostPerUnit,
		CasePrice:     item.CasePrice,
		TotalValue:    item.StockQuantity * caseValue,
	}
}
