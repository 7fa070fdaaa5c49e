// pricebook/database/import_batches.go
package database

import (
	"fmt"

	"pricebook/model"
)

const insertImportBatchQuery = `
INSERT INTO import_batches (
    batch_id, merchant_id, vendor_code, file_name,
    imported_count, updated_count, skipped_count, error_count, imported_at
) VALUES (
    :batch_id, :merchant_id, :vendor_code, :file_name,
    :imported_count, :updated_count, :skipped_count, :error_count, :imported_at
)`

func InsertImportBatch(dbtx DBTX, batch *model.ImportBatch) error {
	_, err := dbtx.NamedExec(insertImportBatchQuery, batch)
	if err != nil {
		return fmt.Errorf("failed to insert import batch %s: %w", batch.BatchID, err)
	}
	return nil
}

func GetRecentImportBatches(dbtx DBTX, merchantID string, limit int) ([]model.ImportBatch, error) {
	if limit <= 0 {
		limit = 20
	}
	var batches []model.ImportBatch
	err := dbtx.Select(&batches, `
SELECT batch_id, merchant_id, vendor_code, file_name,
       imported_count, updated_count, skipped_count, error_count, imported_at
FROM import_batches WHERE merchant_id = ?
ORDER BY imported_at DESC LIMIT ?`, merchantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select import batches: %w", err)
	}
	if batches == nil {
		batches = []model.ImportBatch{}
	}
	return batches, nil
}
