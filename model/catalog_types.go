// pricebook/model/catalog_types.go
package model

type CatalogItem struct {
	ID             int64   `db:"id" json:"id"`
	MerchantID     string  `db:"merchant_id" json:"merchantId"`
	VendorCode     string  `db:"vendor_code" json:"vendorCode"`
	VendorSKU      string  `db:"vendor_sku" json:"vendorSku"`
	ProductName    string  `db:"product_name" json:"productName"`
	Brand          string  `db:"brand" json:"brand"`
	ManufacturerNo string  `db:"manufacturer_no" json:"manufacturerNo"`
	Category       string  `db:"category" json:"category"`
	PackCount      float64 `db:"pack_count" json:"packCount"`
	PackSize       float64 `db:"pack_size" json:"packSize"`
	Unit           string  `db:"unit" json:"unit"`
	CasePackUnits  float64 `db:"case_pack_units" json:"casePackUnits"`
	CasePrice      float64 `db:"case_price" json:"casePrice"`
	CostPerUnit    float64 `db:"cost_per_unit" json:"costPerUnit"`
	StockQuantity  float64 `db:"stock_quantity" json:"stockQuantity"`
}

type Vendor struct {
	VendorCode string `db:"vendor_code" json:"vendorCode"`
	VendorName string `db:"vendor_name" json:"vendorName"`
}

type ImportBatch struct {
	BatchID       string `db:"batch_id" json:"batchId"`
	MerchantID    string `db:"merchant_id" json:"merchantId"`
	VendorCode    string `db:"vendor_code" json:"vendorCode"`
	FileName      string `db:"file_name" json:"fileName"`
	ImportedCount int    `db:"imported_count" json:"importedCount"`
	UpdatedCount  int    `db:"updated_count" json:"updatedCount"`
	SkippedCount  int    `db:"skipped_count" json:"skippedCount"`
	ErrorCount    int    `db:"error_count" json:"errorCount"`
	ImportedAt    string `db:"imported_at" json:"importedAt"`
}
