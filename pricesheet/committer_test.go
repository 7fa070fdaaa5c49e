// pricebook/pricesheet/committer_test.go
package pricesheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricebook/database"
	"pricebook/model"
)

func stageCSV(t *testing.T, db database.DBTX, csv string) []model.StagedItem {
	t.Helper()
	staged, err := Stage(db, parseSheet(t, csv), "m1", "VND")
	require.NoError(t, err)
	return staged
}

func TestCommitCreatesNewItems(t *testing.T) {
	db := newTestDB(t)
	staged := stageCSV(t, db, chickenRow)

	result, err := Commit(db, staged, CommitRequest{
		MerchantID: "m1", VendorCode: "VND", FileName: "sheet.csv",
		Selected: []int{0},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, result.Errors)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "created", result.Results[0].Status)
	assert.Equal(t, 10.0, result.Results[0].StockAfter)

	item, err := database.GetCatalogItemBySKU(db, "m1", "12345")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Chicken Breast", item.ProductName)
	assert.Equal(t, 10.0, item.StockQuantity)

	batches, err := database.GetRecentImportBatches(db, "m1", 20)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, result.BatchID, batches[0].BatchID)
	assert.Equal(t, 1, batches[0].ImportedCount)

	vendors, err := database.GetVendorMap(db)
	require.NoError(t, err)
	assert.Contains(t, vendors, "VND", "batch vendor should be auto-registered")
}

func TestCommitSkipIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	first := stageCSV(t, db, chickenRow)
	_, err := Commit(db, first, CommitRequest{MerchantID: "m1", Selected: []int{0}})
	require.NoError(t, err)

	// Second import of the same file with skip for every duplicate.
	second := stageCSV(t, db, chickenRow)
	require.True(t, second[0].IsDuplicate)

	result, err := Commit(db, second, CommitRequest{
		MerchantID: "m1",
		Selected:   []int{0},
		Resolutions: map[string]model.ImportDecision{
			"12345": {Mode: model.DuplicateSkip},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)

	item, err := database.GetCatalogItemBySKU(db, "m1", "12345")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 10.0, item.StockQuantity, "skip must leave the catalog untouched")
}

func TestCommitDuplicateModes(t *testing.T) {
	tests := []struct {
		mode      model.DuplicateMode
		wantStock float64
	}{
		{model.DuplicateReplace, 10},
		{model.DuplicateSum, 13},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			db := newTestDB(t)
			require.NoError(t, database.InsertCatalogItem(db, &model.CatalogItem{
				MerchantID: "m1", VendorSKU: "12345", ProductName: "Chicken Breast",
				Unit: "lb", StockQuantity: 3,
			}))

			staged := stageCSV(t, db, chickenRow)
			require.True(t, staged[0].IsDuplicate)

			result, err := Commit(db, staged, CommitRequest{
				MerchantID: "m1",
				Selected:   []int{0},
				Resolutions: map[string]model.ImportDecision{
					"12345": {Mode: tt.mode},
				},
			})
			require.NoError(t, err)
			assert.Equal(t, 1, result.Updated)
			require.Len(t, result.Results, 1)
			assert.Equal(t, 3.0, result.Results[0].StockBefore)
			assert.Equal(t, tt.wantStock, result.Results[0].StockAfter)

			item, err := database.GetCatalogItemBySKU(db, "m1", "12345")
			require.NoError(t, err)
			assert.Equal(t, tt.wantStock, item.StockQuantity)
		})
	}
}

func TestCommitAppliesEnrichment(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, database.InsertCatalogItem(db, &model.CatalogItem{
		MerchantID: "m1", VendorSKU: "12345", ProductName: "Chicken Breast",
		StockQuantity: 3,
	}))

	staged := stageCSV(t, db, chickenRow)
	require.Contains(t, staged[0].EnrichableFields, FieldBrand)

	_, err := Commit(db, staged, CommitRequest{
		MerchantID: "m1",
		Selected:   []int{0},
		Resolutions: map[string]model.ImportDecision{
			"12345": {Mode: model.DuplicateReplace, EnrichFields: []string{FieldBrand, FieldUnit}},
		},
	})
	require.NoError(t, err)

	item, err := database.GetCatalogItemBySKU(db, "m1", "12345")
	require.NoError(t, err)
	assert.Equal(t, "BrandX", item.Brand)
	assert.Equal(t, "lb", item.Unit)
}

func TestCommitRejectsUnexpectedDuplicate(t *testing.T) {
	db := newTestDB(t)
	staged := stageCSV(t, db, chickenRow)
	require.False(t, staged[0].IsDuplicate)

	// Another import lands between preview and commit.
	require.NoError(t, database.InsertCatalogItem(db, &model.CatalogItem{
		MerchantID: "m1", VendorSKU: "12345", ProductName: "Chicken Breast",
		StockQuantity: 99,
	}))

	result, err := Commit(db, staged, CommitRequest{MerchantID: "m1", Selected: []int{0}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Errors)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "error", result.Results[0].Status)
	assert.Contains(t, result.Results[0].Message, "already exists")

	item, err := database.GetCatalogItemBySKU(db, "m1", "12345")
	require.NoError(t, err)
	assert.Equal(t, 99.0, item.StockQuantity, "colliding row must not overwrite")
}

func TestCommitDefaultsMissingResolutionToSkip(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, database.InsertCatalogItem(db, &model.CatalogItem{
		MerchantID: "m1", VendorSKU: "12345", ProductName: "Chicken Breast",
		StockQuantity: 5,
	}))

	staged := stageCSV(t, db, chickenRow)
	result, err := Commit(db, staged, CommitRequest{MerchantID: "m1", Selected: []int{0}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
}

func TestCommitRowFailureDoesNotAbortBatch(t *testing.T) {
	db := newTestDB(t)
	csv := strings.Join([]string{
		chickenRow,
		"P,67890,2,0,6/12.9OZ,BrandY,Tomato Sauce,MFR2,18.00,,,C",
	}, "\n")
	staged := stageCSV(t, db, csv)

	result, err := Commit(db, staged, CommitRequest{
		MerchantID: "m1",
		Selected:   []int{5, 0, 1}, // first index is out of range
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Errors)
	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Results, 3)
	assert.Equal(t, "error", result.Results[0].Status)
	assert.Equal(t, "created", result.Results[1].Status)
	assert.Equal(t, "created", result.Results[2].Status)
}
