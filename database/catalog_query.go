// pricebook/database/catalog_query.go
package database

import (
	"database/sql"
	"fmt"
	"strings"

	"pricebook/model"
)

type DBTX interface {
	Get(dest interface{}, query string, args ...interface{}) error
	Select(dest interface{}, query string, args ...interface{}) error
	NamedExec(query string, arg interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Rebind(query string) string
	Exec(query string, args ...interface{}) (sql.Result, error)
	Prepare(query string) (*sql.Stmt, error)
}

const catalogColumns = `
	id, merchant_id, vendor_code, vendor_sku, product_name, brand,
	manufacturer_no, category, pack_count, pack_size, unit,
	case_pack_units, case_price, cost_per_unit, stock_quantity
`

// GetCatalogItemBySKU looks a catalog item up by its vendor SKU within one
// merchant. Returns nil when no item exists.
func GetCatalogItemBySKU(dbtx DBTX, merchantID, vendorSKU string) (*model.CatalogItem, error) {
	var item model.CatalogItem
	query := `SELECT ` + catalogColumns + ` FROM catalog_items WHERE merchant_id = ? AND vendor_sku = ?`
	err := dbtx.Get(&item, query, merchantID, vendorSKU)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog item by sku %s: %w", vendorSKU, err)
	}
	return &item, nil
}

// GetCatalogItemByName matches on the display name, case-insensitively.
func GetCatalogItemByName(dbtx DBTX, merchantID, name string) (*model.CatalogItem, error) {
	var item model.CatalogItem
	query := `SELECT ` + catalogColumns + ` FROM catalog_items
WHERE merchant_id = ? AND LOWER(TRIM(product_name)) = LOWER(TRIM(?)) LIMIT 1`
	err := dbtx.Get(&item, query, merchantID, name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog item by name %s: %w", name, err)
	}
	return &item, nil
}

// GetCatalogItemBySKUOrName is the duplicate lookup the importer uses: SKU
// match first, then the name fallback.
func GetCatalogItemBySKUOrName(dbtx DBTX, merchantID, vendorSKU, name string) (*model.CatalogItem, error) {
	if vendorSKU != "" {
		item, err := GetCatalogItemBySKU(dbtx, merchantID, vendorSKU)
		if err != nil || item != nil {
			return item, err
		}
	}
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}
	return GetCatalogItemByName(dbtx, merchantID, name)
}

const insertCatalogItemQuery = `
INSERT INTO catalog_items (
    merchant_id, vendor_code, vendor_sku, product_name, brand,
    manufacturer_no, category, pack_count, pack_size, unit,
    case_pack_units, case_price, cost_per_unit, stock_quantity
) VALUES (
    :merchant_id, :vendor_code, :vendor_sku, :product_name, :brand,
    :manufacturer_no, :category, :pack_count, :pack_size, :unit,
    :case_pack_units, :case_price, :cost_per_unit, :stock_quantity
)`

func InsertCatalogItem(dbtx DBTX, item *model.CatalogItem) error {
	res, err := dbtx.NamedExec(insertCatalogItemQuery, item)
	if err != nil {
		return fmt.Errorf("failed to insert catalog item %s: %w", item.VendorSKU, err)
	}
	if id, err := res.LastInsertId(); err == nil {
		item.ID = id
	}
	return nil
}

const updateCatalogItemQuery = `
UPDATE catalog_items SET
    vendor_code = :vendor_code, product_name = :product_name, brand = :brand,
    manufacturer_no = :manufacturer_no, category = :category,
    pack_count = :pack_count, pack_size = :pack_size, unit = :unit,
    case_pack_units = :case_pack_units, case_price = :case_price,
    cost_per_unit = :cost_per_unit, stock_quantity = :stock_quantity
WHERE id = :id`

func UpdateCatalogItem(dbtx DBTX, item *model.CatalogItem) error {
	_, err := dbtx.NamedExec(updateCatalogItemQuery, item)
	if err != nil {
		return fmt.Errorf("failed to update catalog item %d: %w", item.ID, err)
	}
	return nil
}

// UpdateStockQuantity sets the stock count on one item.
func UpdateStockQuantity(dbtx DBTX, id int64, quantity float64) error {
	_, err := dbtx.Exec(`UPDATE catalog_items SET stock_quantity = ? WHERE id = ?`, quantity, id)
	if err != nil {
		return fmt.Errorf("failed to update stock for item %d: %w", id, err)
	}
	return nil
}

// GetFilteredCatalogItems lists a merchant's catalog, optionally narrowed
// by category and a name prefix.
func GetFilteredCatalogItems(dbtx DBTX, merchantID, categoryFilter, nameFilter string) ([]model.CatalogItem, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_items`
	mustConditions := []string{"merchant_id = ?"}
	args := []interface{}{merchantID}

	if categoryFilter != "" {
		mustConditions = append(mustConditions, "category = ?")
		args = append(args, categoryFilter)
	}
	if nameFilter != "" {
		mustConditions = append(mustConditions, "product_name LIKE ?")
		args = append(args, nameFilter+"%")
	}

	query += " WHERE " + strings.Join(mustConditions, " AND ") + " ORDER BY product_name"

	var items []model.CatalogItem
	err := dbtx.Select(&items, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []model.CatalogItem{}, nil
		}
		return nil, fmt.Errorf("failed to select filtered catalog items: %w", err)
	}
	if items == nil {
		items = []model.CatalogItem{}
	}
	return items, nil
}

func GetAllCatalogItems(dbtx DBTX, merchantID string) ([]model.CatalogItem, error) {
	return GetFilteredCatalogItems(dbtx, merchantID, "", "")
}
