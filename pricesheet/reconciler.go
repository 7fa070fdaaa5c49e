// pricebook/pricesheet/reconciler.go
package pricesheet

import (
	"strings"

	"pricebook/category"
	"pricebook/database"
	"pricebook/model"
	"pricebook/parsers"
	"pricebook/pricing"
	"pricebook/units"
)

// Field names the operator can opt in to backfill on a duplicate.
const (
	FieldBrand          = "brand"
	FieldManufacturerNo = "manufacturerNo"
	FieldCategory       = "category"
	FieldPackCount      = "packCount"
	FieldPackSize       = "packSize"
	FieldUnit           = "unit"
	FieldCasePackUnits  = "casePackUnits"
	FieldCasePrice      = "casePrice"
	FieldCostPerUnit    = "costPerUnit"
)

// BuildCatalogItem normalizes one raw row into the catalog entry it would
// create: pack/size parsed, prices resolved, category assigned.
func BuildCatalogItem(rec model.RawRecord, merchantID, vendorCode string) (model.CatalogItem, units.PackSize) {
	ps := units.ParsePackSize(rec.PackSizeText)
	resolved := pricing.Resolve(
		pricing.ParsePrice(rec.CasePriceRaw),
		pricing.ParsePrice(rec.EachPriceRaw),
		pricing.ParsePrice(rec.PerWeightRaw),
		rec.CaseQty,
		ps,
	)

	name := rec.Description
	if name == "" {
		name = rec.Brand
	}

	return model.CatalogItem{
		MerchantID:     merchantID,
		VendorCode:     vendorCode,
		VendorSKU:      rec.VendorSKU,
		ProductName:    name,
		Brand:          rec.Brand,
		ManufacturerNo: rec.ManufacturerNo,
		Category:       category.Classify(rec.Brand, rec.Description, rec.CategoryText),
		PackCount:      float64(ps.PackCount),
		PackSize:       ps.SizeValue,
		Unit:           ps.Unit,
		CasePackUnits:  ps.TotalUnits,
		CasePrice:      resolved.CasePrice,
		CostPerUnit:    resolved.CostPerUnit,
		StockQuantity:  rec.CaseQty,
	}, ps
}

// Stage runs the duplicate check for every parsed row and computes which
// fields could be enriched on the existing entry.
func Stage(dbtx database.DBTX, sheet *parsers.ParsedSheet, merchantID, vendorCode string) ([]model.StagedItem, error) {
	staged := make([]model.StagedItem, 0, len(sheet.Records))
	for i, rec := range sheet.Records {
		item, ps := BuildCatalogItem(rec, merchantID, vendorCode)

		s := model.StagedItem{
			Index:       i,
			Item:        item,
			IsAvgWeight: ps.IsAvgWeight,
		}

		existing, err := database.GetCatalogItemBySKUOrName(dbtx, merchantID, item.VendorSKU, item.ProductName)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			s.IsDuplicate = true
			s.ExistingID = existing.ID
			s.ExistingName = existing.ProductName
			s.ExistingStock = existing.StockQuantity
			s.EnrichableFields, s.UnitMismatch = EnrichableFields(existing, &item)
		}

		staged = append(staged, s)
	}
	return staged, nil
}

func missingStr(s string) bool  { return strings.TrimSpace(s) == "" }
func missingNum(v float64) bool { return v <= 0 }

// EnrichableFields lists the fields of an existing entry a new row could
// backfill: blank/zero on the existing side and present on the new side.
// A unit disagreement is always surfaced even when neither side is blank;
// it is a data-quality problem the operator must see.
func EnrichableFields(existing, proposed *model.CatalogItem) ([]string, bool) {
	var fields []string

	if missingStr(existing.Brand) && !missingStr(proposed.Brand) {
		fields = append(fields, FieldBrand)
	}
	if missingStr(existing.ManufacturerNo) && !missingStr(proposed.ManufacturerNo) {
		fields = append(fields, FieldManufacturerNo)
	}
	if missingStr(existing.Category) && !missingStr(proposed.Category) {
		fields = append(fields, FieldCategory)
	}
	if missingNum(existing.PackCount) && !missingNum(proposed.PackCount) {
		fields = append(fields, FieldPackCount)
	}
	if missingNum(existing.PackSize) && !missingNum(proposed.PackSize) {
		fields = append(fields, FieldPackSize)
	}
	if missingNum(existing.CasePackUnits) && !missingNum(proposed.CasePackUnits) {
		fields = append(fields, FieldCasePackUnits)
	}
	if missingNum(existing.CasePrice) && !missingNum(proposed.CasePrice) {
		fields = append(fields, FieldCasePrice)
	}
	if missingNum(existing.CostPerUnit) && !missingNum(proposed.CostPerUnit) {
		fields = append(fields, FieldCostPerUnit)
	}

	unitMismatch := false
	if missingStr(existing.Unit) && !missingStr(proposed.Unit) {
		fields = append(fields, FieldUnit)
	} else if !missingStr(existing.Unit) && !missingStr(proposed.Unit) &&
		!strings.EqualFold(strings.TrimSpace(existing.Unit), strings.TrimSpace(proposed.Unit)) {
		fields = append(fields, FieldUnit)
		unitMismatch = true
	}

	return fields, unitMismatch
}

// ApplyEnrichment fills the opted-in fields on the existing entry.
// Enrichment only ever fills an empty/zero field; a populated field is
// never overwritten, mismatch or not.
func ApplyEnrichment(existing *model.CatalogItem, proposed *model.CatalogItem, fields []string) {
	for _, f := range fields {
		switch f {
		case FieldBrand:
			if missingStr(existing.Brand) {
				existing.Brand = proposed.Brand
			}
		case FieldManufacturerNo:
			if missingStr(existing.ManufacturerNo) {
				existing.ManufacturerNo = proposed.ManufacturerNo
			}
		case FieldCategory:
			if missingStr(existing.Category) {
				existing.Category = proposed.Category
			}
		case FieldPackCount:
			if missingNum(existing.PackCount) {
				existing.PackCount = proposed.PackCount
			}
		case FieldPackSize:
			if missingNum(existing.PackSize) {
				existing.PackSize = proposed.PackSize
			}
		case FieldUnit:
			if missingStr(existing.Unit) {
				existing.Unit = proposed.Unit
			}
		case FieldCasePackUnits:
			if missingNum(existing.CasePackUnits) {
				existing.CasePackUnits = proposed.CasePackUnits
			}
		case FieldCasePrice:
			if missingNum(existing.CasePrice) {
				existing.CasePrice = proposed.CasePrice
			}
		case FieldCostPerUnit:
			if missingNum(existing.CostPerUnit) {
				existing.CostPerUnit = proposed.CostPerUnit
			}
		}
	}
}
