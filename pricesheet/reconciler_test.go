// pricebook/pricesheet/reconciler_test.go
package pricesheet

import (
	"os"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricebook/database"
	"pricebook/model"
	"pricebook/parsers"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../schema.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)
	return db
}

func parseSheet(t *testing.T, csv string) *parsers.ParsedSheet {
	t.Helper()
	sheet, err := parsers.ParsePriceSheet(strings.NewReader(csv))
	require.NoError(t, err)
	return sheet
}

const chickenRow = "P,12345,10,0,4/10LB,BrandX,Chicken Breast,MFR1,40.00,,,M"

func TestBuildCatalogItem(t *testing.T) {
	sheet := parseSheet(t, chickenRow)
	require.Len(t, sheet.Records, 1)

	item, ps := BuildCatalogItem(sheet.Records[0], "m1", "VND")
	assert.Equal(t, "m1", item.MerchantID)
	assert.Equal(t, "VND", item.VendorCode)
	assert.Equal(t, "12345", item.VendorSKU)
	assert.Equal(t, "Chicken Breast", item.ProductName)
	assert.Equal(t, "Proteins", item.Category)
	assert.Equal(t, 4.0, item.PackCount)
	assert.Equal(t, 10.0, item.PackSize)
	assert.Equal(t, "lb", item.Unit)
	assert.Equal(t, 40.0, item.CasePackUnits)
	assert.InDelta(t, 1.00, item.CostPerUnit, 1e-9)
	assert.InDelta(t, 40.00, item.CasePrice, 1e-9)
	assert.Equal(t, 10.0, item.StockQuantity)
	assert.False(t, ps.IsAvgWeight)
}

func TestBuildCatalogItemFallsBackToBrandName(t *testing.T) {
	sheet := parseSheet(t, "P,555,1,0,1/500CT,Acme,,MFR9,12.00,,,G")
	require.Len(t, sheet.Records, 1)

	item, _ := BuildCatalogItem(sheet.Records[0], "m1", "")
	assert.Equal(t, "Acme", item.ProductName)
	assert.Equal(t, "Packaging", item.Category)
}

func TestStageFlagsDuplicates(t *testing.T) {
	db := newTestDB(t)

	existing := &model.CatalogItem{
		MerchantID: "m1", VendorSKU: "12345", ProductName: "Chicken Breast",
		Unit: "lb", StockQuantity: 3,
	}
	require.NoError(t, database.InsertCatalogItem(db, existing))

	csv := strings.Join([]string{
		chickenRow,
		"P,67890,2,0,6/12.9OZ,BrandY,Tomato Sauce,MFR2,18.00,,,C",
	}, "\n")
	staged, err := Stage(db, parseSheet(t, csv), "m1", "VND")
	require.NoError(t, err)
	require.Len(t, staged, 2)

	dup := staged[0]
	assert.True(t, dup.IsDuplicate)
	assert.Equal(t, existing.ID, dup.ExistingID)
	assert.Equal(t, "Chicken Breast", dup.ExistingName)
	assert.Equal(t, 3.0, dup.ExistingStock)
	assert.False(t, dup.UnitMismatch)

	assert.False(t, staged[1].IsDuplicate)
}

func TestStageMatchesByNameWhenSKUDiffers(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, database.InsertCatalogItem(db, &model.CatalogItem{
		MerchantID: "m1", VendorSKU: "OLD-1", ProductName: "chicken breast",
	}))

	staged, err := Stage(db, parseSheet(t, chickenRow), "m1", "VND")
	require.NoError(t, err)
	require.Len(t, staged, 1)
	assert.True(t, staged[0].IsDuplicate, "case-insensitive name match should flag a duplicate")
}

func TestStageScopesByMerchant(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, database.InsertCatalogItem(db, &model.CatalogItem{
		MerchantID: "other", VendorSKU: "12345", ProductName: "Chicken Breast",
	}))

	staged, err := Stage(db, parseSheet(t, chickenRow), "m1", "VND")
	require.NoError(t, err)
	require.Len(t, staged, 1)
	assert.False(t, staged[0].IsDuplicate, "another merchant's catalog must not match")
}

func TestEnrichableFields(t *testing.T) {
	t.Run("missing fields are listed", func(t *testing.T) {
		existing := &model.CatalogItem{Unit: "", Brand: "", CasePrice: 0, PackCount: 0}
		proposed := &model.CatalogItem{Unit: "lb", Brand: "BrandX", CasePrice: 40, PackCount: 4}

		fields, mismatch := EnrichableFields(existing, proposed)
		assert.False(t, mismatch)
		assert.Contains(t, fields, FieldUnit)
		assert.Contains(t, fields, FieldBrand)
		assert.Contains(t, fields, FieldCasePrice)
		assert.Contains(t, fields, FieldPackCount)
	})

	t.Run("unit disagreement is flagged even when populated", func(t *testing.T) {
		existing := &model.CatalogItem{Unit: "oz"}
		proposed := &model.CatalogItem{Unit: "lb"}

		fields, mismatch := EnrichableFields(existing, proposed)
		assert.True(t, mismatch)
		assert.Contains(t, fields, FieldUnit)
	})

	t.Run("matching units are not listed", func(t *testing.T) {
		existing := &model.CatalogItem{Unit: "LB"}
		proposed := &model.CatalogItem{Unit: "lb"}

		fields, mismatch := EnrichableFields(existing, proposed)
		assert.False(t, mismatch)
		assert.NotContains(t, fields, FieldUnit)
	})

	t.Run("populated fields are not listed", func(t *testing.T) {
		existing := &model.CatalogItem{Brand: "Original", CasePrice: 10}
		proposed := &model.CatalogItem{Brand: "New", CasePrice: 99}

		fields, _ := EnrichableFields(existing, proposed)
		assert.NotContains(t, fields, FieldBrand)
		assert.NotContains(t, fields, FieldCasePrice)
	})
}

func TestApplyEnrichmentNeverOverwrites(t *testing.T) {
	existing := &model.CatalogItem{Brand: "Original", ManufacturerNo: "", CasePrice: 0, Unit: "oz"}
	proposed := &model.CatalogItem{Brand: "New", ManufacturerNo: "MFR1", CasePrice: 40, Unit: "lb"}

	ApplyEnrichment(existing, proposed, []string{FieldBrand, FieldManufacturerNo, FieldCasePrice, FieldUnit})

	assert.Equal(t, "Original", existing.Brand, "populated field must not be overwritten")
	assert.Equal(t, "MFR1", existing.ManufacturerNo)
	assert.Equal(t, 40.0, existing.CasePrice)
	assert.Equal(t, "oz", existing.Unit, "mismatched but populated unit must not be overwritten")
}
