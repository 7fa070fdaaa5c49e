// pricebook/pricesheet/committer.go
package pricesheet

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pricebook/database"
	"pricebook/model"
)

// CommitRequest is the operator's selection: which staged rows to apply and
// how each duplicate SKU is resolved.
type CommitRequest struct {
	MerchantID  string
	VendorCode  string
	FileName    string
	Selected    []int
	Resolutions map[string]model.ImportDecision
}

// CommitResult reports every row's outcome independently plus aggregate
// counts. One row's failure never aborts the batch.
type CommitResult struct {
	BatchID  string            `json:"batchId"`
	Results  []model.RowResult `json:"results"`
	Imported int               `json:"imported"`
	Updated  int               `json:"updated"`
	Skipped  int               `json:"skipped"`
	Errors   int               `json:"errors"`
}

// Commit applies the selected rows, one transaction per row. Duplicate rows
// are only mutated when the operator chose replace or sum; a row flagged
// new at preview time that collides at commit time is rejected, not
// overwritten.
func Commit(db *sqlx.DB, staged []model.StagedItem, req CommitRequest) (*CommitResult, error) {
	result := &CommitResult{BatchID: uuid.NewString()}

	for _, idx := range req.Selected {
		if idx < 0 || idx >= len(staged) {
			result.Results = append(result.Results, model.RowResult{
				Index:   idx,
				Status:  "error",
				Message: "selected row index out of range",
			})
			result.Errors++
			continue
		}

		row := staged[idx]
		res := commitRow(db, row, req)
		switch res.Status {
		case "created":
			result.Imported++
		case "updated":
			result.Updated++
		case "skipped":
			result.Skipped++
		default:
			result.Errors++
		}
		result.Results = append(result.Results, res)
	}

	batch := &model.ImportBatch{
		BatchID:       result.BatchID,
		MerchantID:    req.MerchantID,
		VendorCode:    req.VendorCode,
		FileName:      req.FileName,
		ImportedCount: result.Imported,
		UpdatedCount:  result.Updated,
		SkippedCount:  result.Skipped,
		ErrorCount:    result.Errors,
		ImportedAt:    time.Now().Format(time.RFC3339),
	}
	if err := database.InsertImportBatch(db, batch); err != nil {
		log.Printf("WARN: Failed to record import batch %s: %v", result.BatchID, err)
	}

	registerVendor(db, req.VendorCode)

	return result, nil
}

// registerVendor adds an unseen vendor code to the vendor master so the
// list stays complete without manual registration. The code doubles as the
// name until the operator renames it.
func registerVendor(db *sqlx.DB, vendorCode string) {
	if vendorCode == "" {
		return
	}
	known, err := database.GetVendorMap(db)
	if err != nil {
		log.Printf("WARN: Failed to read vendor master: %v", err)
		return
	}
	if _, ok := known[vendorCode]; ok {
		return
	}
	if err := database.CreateVendor(db, vendorCode, vendorCode); err != nil {
		log.Printf("WARN: Failed to register vendor %s: %v", vendorCode, err)
	}
}

func commitRow(db *sqlx.DB, row model.StagedItem, req CommitRequest) model.RowResult {
	res := model.RowResult{
		Index:       row.Index,
		VendorSKU:   row.Item.VendorSKU,
		ProductName: row.Item.ProductName,
	}

	tx, err := db.Beginx()
	if err != nil {
		res.Status = "error"
		res.Message = "failed to start transaction: " + err.Error()
		return res
	}
	defer tx.Rollback()

	// The preview's duplicate flag can be stale: another import for the
	// same merchant may have landed since. Re-check inside the row's
	// transaction and report rather than overwrite.
	existing, err := database.GetCatalogItemBySKUOrName(tx, req.MerchantID, row.Item.VendorSKU, row.Item.ProductName)
	if err != nil {
		res.Status = "error"
		res.Message = err.Error()
		return res
	}

	if existing == nil {
		if row.IsDuplicate {
			// Flagged duplicate disappeared; import it as new.
			log.Printf("WARN: Staged duplicate %s no longer exists, creating fresh entry.", row.Item.VendorSKU)
		}
		item := row.Item
		if err := database.InsertCatalogItem(tx, &item); err != nil {
			res.Status = "error"
			res.Message = err.Error()
			return res
		}
		if err := tx.Commit(); err != nil {
			res.Status = "error"
			res.Message = "failed to commit: " + err.Error()
			return res
		}
		res.Status = "created"
		res.StockAfter = item.StockQuantity
		return res
	}

	if !row.IsDuplicate {
		res.Status = "error"
		res.Message = fmt.Sprintf("item already exists (id %d)", existing.ID)
		return res
	}

	decision, ok := req.Resolutions[row.Item.VendorSKU]
	if !ok {
		decision.Mode = model.DuplicateSkip
	}

	res.StockBefore = existing.StockQuantity
	switch decision.Mode {
	case model.DuplicateReplace:
		existing.StockQuantity = row.Item.StockQuantity
	case model.DuplicateSum:
		existing.StockQuantity += row.Item.StockQuantity
	case model.DuplicateSkip:
		res.Status = "skipped"
		res.StockAfter = existing.StockQuantity
		return res
	default:
		res.Status = "error"
		res.Message = fmt.Sprintf("unknown duplicate resolution %q", decision.Mode)
		return res
	}

	ApplyEnrichment(existing, &row.Item, decision.EnrichFields)

	if err := database.UpdateCatalogItem(tx, existing); err != nil {
		res.Status = "error"
		res.Message = err.Error()
		return res
	}
	if err := tx.Commit(); err != nil {
		res.Status = "error"
		res.Message = "failed to commit: " + err.Error()
		return res
	}

	res.Status = "updated"
	res.StockAfter = existing.StockQuantity
	return res
}
