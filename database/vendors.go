// pricebook/database/vendors.go
package database

import (
	"fmt"

	"pricebook/model"
)

func GetAllVendors(dbtx DBTX) ([]model.Vendor, error) {
	var vendors []model.Vendor
	err := dbtx.Select(&vendors, "SELECT vendor_code, vendor_name FROM vendors ORDER BY vendor_code")
	if err != nil {
		return nil, fmt.Errorf("failed to get all vendors: %w", err)
	}
	if vendors == nil {
		vendors = []model.Vendor{}
	}
	return vendors, nil
}

// GetVendorMap returns vendor code -> vendor name.
func GetVendorMap(dbtx DBTX) (map[string]string, error) {
	vendors, err := GetAllVendors(dbtx)
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor list for map: %w", err)
	}
	vendorMap := make(map[string]string)
	for _, v := range vendors {
		vendorMap[v.VendorCode] = v.VendorName
	}
	return vendorMap, nil
}

func CreateVendor(dbtx DBTX, code, name string) error {
	const q = `INSERT INTO vendors (vendor_code, vendor_name) VALUES (?, ?)`
	_, err := dbtx.Exec(q, code, name)
	if err != nil {
		return fmt.Errorf("CreateVendor failed: %w", err)
	}
	return nil
}

func UpsertVendor(dbtx DBTX, code, name string) error {
	const q = `
		INSERT INTO vendors (vendor_code, vendor_name)
		VALUES (?, ?)
		ON CONFLICT(vendor_code) DO UPDATE SET
			vendor_name = excluded.vendor_name
	`
	_, err := dbtx.Exec(q, code, name)
	if err != nil {
		return fmt.Errorf("UpsertVendor (Code: %s, Name: %s) failed: %w", code, name, err)
	}
	return nil
}

func DeleteVendor(dbtx DBTX, code string) error {
	const q = `DELETE FROM vendors WHERE vendor_code = ?`
	_, err := dbtx.Exec(q, code)
	if err != nil {
		return fmt.Errorf("failed to delete vendor with code %s: %w", code, err)
	}
	return nil
}
