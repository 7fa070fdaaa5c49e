// pricebook/catalog/handler.go
package catalog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"pricebook/config"
	"pricebook/database"
	"pricebook/model"
)

func writeJsonError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func merchantFromQuery(r *http.Request) string {
	merchantID := r.URL.Query().Get("merchantId")
	if merchantID == "" {
		merchantID = config.GetConfig().DefaultMerchantID
	}
	return merchantID
}

// ListItemsHandler returns a merchant's catalog, optionally filtered by
// category and a name prefix.
func ListItemsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queryParams := r.URL.Query()
		merchantID := merchantFromQuery(r)
		categoryFilter := queryParams.Get("category")
		nameFilter := queryParams.Get("name")

		items, err := database.GetFilteredCatalogItems(db, merchantID, categoryFilter, nameFilter)
		if err != nil {
			log.Printf("Error fetching filtered catalog items: %v", err)
			writeJsonError(w, "Failed to list catalog items.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]interface{}{
			"items": items,
			"count": len(items),
		}); err != nil {
			log.Printf("Error encoding catalog items to JSON: %v", err)
		}
	}
}

// UpdateItemHandler applies an operator edit to one catalog item.
func UpdateItemHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var item model.CatalogItem
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			writeJsonError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if item.ID == 0 {
			writeJsonError(w, "Item id is required", http.StatusBadRequest)
			return
		}

		if err := database.UpdateCatalogItem(db, &item); err != nil {
			log.Printf("Error updating catalog item %d: %v", item.ID, err)
			writeJsonError(w, "Failed to update catalog item: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Catalog item updated."})
	}
}

// ExportHandler writes the merchant's full catalog as a CSV backup.
func ExportHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID := merchantFromQuery(r)

		items, err := database.GetAllCatalogItems(db, merchantID)
		if err != nil {
			writeJsonError(w, "Failed to get catalog for export", http.StatusInternalServerError)
			return
		}

		now := time.Now()
		fileName := fmt.Sprintf("catalog_backup_%s_%s.csv", merchantID, now.Format("20060102_150405"))
		fileName = url.PathEscape(fileName)

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+fileName)
		w.Write([]byte{0xEF, 0xBB, 0xBF})

		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()

		headers := []string{"vendor_sku", "product_name", "brand", "manufacturer_no", "category",
			"pack_count", "pack_size", "unit", "case_pack_units", "case_price", "cost_per_unit",
			"stock_quantity", "vendor_code"}
		if err := csvWriter.Write(headers); err != nil {
			log.Printf("Failed to write CSV header: %v", err)
		}

		for _, item := range items {
			record := []string{
				item.VendorSKU,
				item.ProductName,
				item.Brand,
				item.ManufacturerNo,
				item.Category,
				strconv.FormatFloat(item.PackCount, 'f', -1, 64),
				strconv.FormatFloat(item.PackSize, 'f', -1, 64),
				item.Unit,
				strconv.FormatFloat(item.CasePackUnits, 'f', -1, 64),
				strconv.FormatFloat(item.CasePrice, 'f', 2, 64),
				strconv.FormatFloat(item.CostPerUnit, 'f', 4, 64),
				strconv.FormatFloat(item.StockQuantity, 'f', 2, 64),
				item.VendorCode,
			}
			if err := csvWriter.Write(record); err != nil {
				log.Printf("Failed to write catalog row to CSV (SKU: %s): %v", item.VendorSKU, err)
			}
		}
	}
}
