// pricebook/model/import_types.go
package model

// RowLayout identifies which column layout a price-sheet line follows.
// The distributor exports two incompatible formats: the compact
// purchase-order form and the wide purchase-history form. The layout is
// decided once at parse time and carried on the record.
type RowLayout int

const (
	LayoutPurchaseOrder RowLayout = iota
	LayoutPurchaseHistory
)

func (l RowLayout) String() string {
	if l == LayoutPurchaseHistory {
		return "purchase_history"
	}
	return "purchase_order"
}

// RawRecord is one product data row of a vendor price sheet, mapped from
// positional columns but otherwise unnormalized.
type RawRecord struct {
	Layout         RowLayout `json:"layout"`
	RecordType     string    `json:"recordType"`
	VendorSKU      string    `json:"vendorSku"`
	CaseQty        float64   `json:"caseQty"`
	SplitQty       float64   `json:"splitQty"`
	PackSizeText   string    `json:"packSizeText"`
	Brand          string    `json:"brand"`
	Description    string    `json:"description"`
	ManufacturerNo string    `json:"manufacturerNo"`
	CasePriceRaw   string    `json:"casePriceRaw"`
	EachPriceRaw   string    `json:"eachPriceRaw"`
	PerWeightRaw   string    `json:"perWeightRaw"`
	CategoryText   string    `json:"categoryText"`
	LineNumber     int       `json:"lineNumber"`
}

// ParseError is a row that threw during mapping/normalization. Parse errors
// never abort the scan; they are collected and returned with the successes.
type ParseError struct {
	LineNumber int    `json:"lineNumber"`
	RawText    string `json:"rawText"`
	Message    string `json:"message"`
}

// DuplicateMode is the operator's per-duplicate decision.
type DuplicateMode string

const (
	DuplicateReplace DuplicateMode = "replace"
	DuplicateSum     DuplicateMode = "sum"
	DuplicateSkip    DuplicateMode = "skip"
)

// ImportDecision resolves one duplicate SKU at commit time.
type ImportDecision struct {
	Mode         DuplicateMode `json:"mode"`
	EnrichFields []string      `json:"enrichFields"`
}

// StagedItem is one previewed row: the proposed catalog entry plus
// duplicate/enrichment metadata for the operator.
type StagedItem struct {
	Index            int         `json:"index"`
	Item             CatalogItem `json:"item"`
	IsAvgWeight      bool        `json:"isAvgWeight"`
	IsDuplicate      bool        `json:"isDuplicate"`
	ExistingID       int64       `json:"existingId,omitempty"`
	ExistingName     string      `json:"existingName,omitempty"`
	ExistingStock    float64     `json:"existingStock,omitempty"`
	EnrichableFields []string    `json:"enrichableFields,omitempty"`
	UnitMismatch     bool        `json:"unitMismatch,omitempty"`
}

// RowResult is the outcome of committing one selected row. One row's
// failure never aborts the batch.
type RowResult struct {
	Index       int     `json:"index"`
	VendorSKU   string  `json:"vendorSku"`
	ProductName string  `json:"productName"`
	Status      string  `json:"status"` // "created", "updated", "skipped", "error"
	Message     string  `json:"message,omitempty"`
	StockBefore float64 `json:"stockBefore"`
	StockAfter  float64 `json:"stockAfter"`
}
