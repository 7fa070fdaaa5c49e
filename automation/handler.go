// pricebook/automation/handler.go
package automation

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"pricebook/config"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// DownloadPriceSheetHandler fetches the newest price-sheet export from the
// distributor portal into the configured import folder. The operator then
// previews/imports the file through the regular import endpoint.
func DownloadPriceSheetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			writeJSONError(w, "Failed to load configuration: "+err.Error(), http.StatusInternalServerError)
			return
		}

		if cfg.PortalUserID == "" || cfg.PortalPassword == "" {
			writeJSONError(w, "Portal user ID or password is not configured.", http.StatusBadRequest)
			return
		}

		saveDir := cfg.ImportFolderPath
		if saveDir == "" {
			saveDir = os.TempDir()
			log.Printf("No import folder configured, using temp folder: %s", saveDir)
		}

		log.Println("Starting distributor portal automation...")
		filePath, err := DownloadPriceSheet(cfg.PortalURL, cfg.PortalUserID, cfg.PortalPassword, saveDir)
		if err != nil {
			log.Printf("Automation Error: %v", err)
			writeJSONError(w, "Portal download error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		if filePath == "NO_DATA" {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{
				"status":  "no_data",
				"message": "The portal has no new export available.",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":   "success",
			"message":  "Price sheet downloaded.",
			"filePath": filePath,
		})
	}
}
