// pricebook/pricesheet/handler.go
package pricesheet

import (
	"encoding/json"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"pricebook/config"
	"pricebook/database"
	"pricebook/model"
	"pricebook/parsers"
)

// writeJsonError returns an error response as JSON.
func writeJsonError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// ImportSummary is the preview's aggregate row accounting.
type ImportSummary struct {
	Parsed      int `json:"parsed"`
	New         int `json:"new"`
	Duplicates  int `json:"duplicates"`
	ParseErrors int `json:"parseErrors"`
	Skipped     int `json:"skipped"`
}

// PreviewResponse carries the staged rows plus duplicate/enrichment
// metadata and the summary counts.
type PreviewResponse struct {
	Items       []model.StagedItem `json:"items"`
	ParseErrors []model.ParseError `json:"parseErrors"`
	Summary     ImportSummary      `json:"summary"`
}

// ImportHandler serves both operations of the price-sheet endpoint:
// action=preview parses the upload and stages it, action=import applies the
// operator's selection. Both are multipart form submissions.
func ImportHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			writeJsonError(w, "File upload error: "+err.Error(), http.StatusBadRequest)
			return
		}

		merchantID := strings.TrimSpace(r.FormValue("merchantId"))
		if merchantID == "" {
			merchantID = config.GetConfig().DefaultMerchantID
		}
		if merchantID == "" {
			writeJsonError(w, "Merchant ID is required", http.StatusBadRequest)
			return
		}
		vendorCode := strings.TrimSpace(r.FormValue("vendorCode"))

		file, header, err := r.FormFile("file")
		if err != nil {
			writeJsonError(w, "No file uploaded", http.StatusBadRequest)
			return
		}
		defer file.Close()

		sheet, err := parseUpload(file, header.Filename)
		if err != nil {
			writeJsonError(w, err.Error(), http.StatusBadRequest)
			return
		}

		staged, err := Stage(db, sheet, merchantID, vendorCode)
		if err != nil {
			log.Printf("Error staging price sheet %s: %v", header.Filename, err)
			writeJsonError(w, "Failed to check catalog for duplicates: "+err.Error(), http.StatusInternalServerError)
			return
		}

		switch r.FormValue("action") {
		case "import":
			handleImport(w, r, db, staged, merchantID, vendorCode, header.Filename)
		default:
			handlePreview(w, staged, sheet)
		}
	}
}

func parseUpload(file multipart.File, filename string) (*parsers.ParsedSheet, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		return parsers.ParsePriceSheetXLSX(file)
	}
	return parsers.ParsePriceSheet(file)
}

func handlePreview(w http.ResponseWriter, staged []model.StagedItem, sheet *parsers.ParsedSheet) {
	summary := ImportSummary{
		Parsed:      len(staged),
		ParseErrors: len(sheet.Errors),
		Skipped:     sheet.Skipped,
	}
	for _, s := range staged {
		if s.IsDuplicate {
			summary.Duplicates++
		} else {
			summary.New++
		}
	}

	parseErrors := sheet.Errors
	if parseErrors == nil {
		parseErrors = []model.ParseError{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PreviewResponse{
		Items:       staged,
		ParseErrors: parseErrors,
		Summary:     summary,
	})
}

func handleImport(w http.ResponseWriter, r *http.Request, db *sqlx.DB, staged []model.StagedItem, merchantID, vendorCode, filename string) {
	var selected []int
	if raw := r.FormValue("selected"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &selected); err != nil {
			writeJsonError(w, "Invalid selected rows: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	if len(selected) == 0 {
		writeJsonError(w, "No rows selected for import", http.StatusBadRequest)
		return
	}

	resolutions := make(map[string]model.ImportDecision)
	if raw := r.FormValue("resolutions"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &resolutions); err != nil {
			writeJsonError(w, "Invalid duplicate resolutions: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	result, err := Commit(db, staged, CommitRequest{
		MerchantID:  merchantID,
		VendorCode:  vendorCode,
		FileName:    filename,
		Selected:    selected,
		Resolutions: resolutions,
	})
	if err != nil {
		writeJsonError(w, "Import failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Printf("Import batch %s for merchant %s: %d created, %d updated, %d skipped, %d errors",
		result.BatchID, merchantID, result.Imported, result.Updated, result.Skipped, result.Errors)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// RecentBatchesHandler lists a merchant's recent import batches.
func RecentBatchesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID := r.URL.Query().Get("merchantId")
		if merchantID == "" {
			merchantID = config.GetConfig().DefaultMerchantID
		}
		batches, err := database.GetRecentImportBatches(db, merchantID, 20)
		if err != nil {
			writeJsonError(w, "Failed to get import batches: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(batches)
	}
}
