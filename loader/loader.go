// pricebook/loader/loader.go
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"pricebook/database"
	"pricebook/model"
	"pricebook/parsers"
)

// InitDatabase applies the schema and, when a catalog backup is configured
// and present, restores it into an empty catalog.
func InitDatabase(db *sqlx.DB, backupPath, merchantID string) error {
	log.Println("Applying database schema...")
	if err := applySchema(db); err != nil {
		return fmt.Errorf("failed to apply schema.sql: %w", err)
	}
	log.Println("Schema applied successfully.")

	if backupPath == "" {
		return nil
	}
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		log.Printf("WARN: %s not found, skipping catalog restore.", backupPath)
		return nil
	}

	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM catalog_items WHERE merchant_id = ?`, merchantID); err != nil {
		return fmt.Errorf("failed to count catalog items: %w", err)
	}
	if count > 0 {
		log.Printf("Catalog already has %d items for merchant %s, skipping restore.", count, merchantID)
		return nil
	}

	log.Printf("Restoring catalog backup %s...", backupPath)
	restored, err := RestoreCatalogBackup(db, backupPath, merchantID)
	if err != nil {
		return fmt.Errorf("failed to restore %s: %w", backupPath, err)
	}
	log.Printf("Restored %d catalog items from backup.", restored)
	return nil
}

// applySchema reads and executes schema.sql.
func applySchema(db *sqlx.DB) error {
	schemaBytes, err := os.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("could not read schema.sql: %w", err)
	}
	_, err = db.Exec(string(schemaBytes))
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// RestoreCatalogBackup loads a catalog backup CSV (the format the catalog
// export endpoint writes) and upserts every row for one merchant.
func RestoreCatalogBackup(db *sqlx.DB, path, merchantID string) (restored int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open file %s: %w", path, err)
	}
	defer f.Close()

	decoded, err := parsers.DecodeVendorText(f)
	if err != nil {
		return 0, fmt.Errorf("could not decode file %s: %w", path, err)
	}

	r := csv.NewReader(decoded)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return 0, fmt.Errorf("backup file is empty")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read backup header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, colName := range header {
		colIndex[strings.TrimSpace(colName)] = i
	}
	if _, ok := colIndex["vendor_sku"]; !ok {
		return 0, fmt.Errorf("required header not found: vendor_sku")
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			log.Printf("Rolling back catalog restore due to error: %v", err)
			tx.Rollback()
		} else {
			err = tx.Commit()
			if err != nil {
				log.Printf("Error committing catalog restore: %v", err)
			}
		}
	}()

	line := 1
	for {
		line++
		row, readErr := r.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			log.Printf("WARN: Error reading backup row %d (skipping): %v", line, readErr)
			continue
		}

		get := func(name string) string {
			if idx, ok := colIndex[name]; ok && idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}
		getFloat := func(name string) float64 {
			v, _ := strconv.ParseFloat(get(name), 64)
			return v
		}

		sku := get("vendor_sku")
		if sku == "" {
			continue
		}

		item := model.CatalogItem{
			MerchantID:     merchantID,
			VendorCode:     get("vendor_code"),
			VendorSKU:      sku,
			ProductName:    get("product_name"),
			Brand:          get("brand"),
			ManufacturerNo: get("manufacturer_no"),
			Category:       get("category"),
			PackCount:      getFloat("pack_count"),
			PackSize:       getFloat("pack_size"),
			Unit:           get("unit"),
			CasePackUnits:  getFloat("case_pack_units"),
			CasePrice:      getFloat("case_price"),
			CostPerUnit:    getFloat("cost_per_unit"),
			StockQuantity:  getFloat("stock_quantity"),
		}

		existing, getErr := database.GetCatalogItemBySKU(tx, merchantID, sku)
		if getErr != nil {
			err = getErr
			return restored, err
		}
		if existing != nil {
			item.ID = existing.ID
			if updErr := database.UpdateCatalogItem(tx, &item); updErr != nil {
				err = updErr
				return restored, err
			}
		} else {
			if insErr := database.InsertCatalogItem(tx, &item); insErr != nil {
				err = insErr
				return restored, err
			}
		}
		restored++
	}

	return restored, nil
}
