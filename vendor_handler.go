// pricebook/vendor_handler.go
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"pricebook/database"
)

// ListVendorsHandler returns the distributor master.
func ListVendorsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendors, err := database.GetAllVendors(db)
		if err != nil {
			log.Printf("Error getting all vendors: %v", err)
			writeJSONError(w, "Failed to list vendors.", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(vendors)
	}
}

// CreateVendorHandler registers a distributor. Re-posting an existing code
// updates its display name.
func CreateVendorHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input struct {
			Code string `json:"code"`
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeJSONError(w, "Invalid request body.", http.StatusBadRequest)
			return
		}
		if input.Code == "" || input.Name == "" {
			writeJSONError(w, "Vendor code and name are required.", http.StatusBadRequest)
			return
		}

		if err := database.UpsertVendor(db, input.Code, input.Name); err != nil {
			log.Printf("Error creating vendor (Code: %s): %v", input.Code, err)
			writeJSONError(w, "Failed to create vendor.", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"message": "Vendor created."})
	}
}

// DeleteVendorHandler removes a distributor.
func DeleteVendorHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimPrefix(r.URL.Path, "/api/vendors/delete/")
		if code == "" {
			writeJSONError(w, "Vendor code to delete is required.", http.StatusBadRequest)
			return
		}

		if err := database.DeleteVendor(db, code); err != nil {
			log.Printf("Error deleting vendor (Code: %s): %v", code, err)
			writeJSONError(w, "Failed to delete vendor.", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"message": "Vendor deleted."})
	}
}
