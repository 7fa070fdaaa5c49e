// pricebook/routes.go
package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"pricebook/automation"
	"pricebook/catalog"
	"pricebook/pricesheet"
	"pricebook/valuation"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB) {

	mux.HandleFunc("/api/pricesheet/import", pricesheet.ImportHandler(dbConn))
	mux.HandleFunc("/api/pricesheet/batches", pricesheet.RecentBatchesHandler(dbConn))
	mux.HandleFunc("/api/pricesheet/portal_download", automation.DownloadPriceSheetHandler())

	mux.HandleFunc("/api/catalog/list", catalog.ListItemsHandler(dbConn))
	mux.HandleFunc("/api/catalog/update", catalog.UpdateItemHandler(dbConn))
	mux.HandleFunc("/api/catalog/export", catalog.ExportHandler(dbConn))

	mux.HandleFunc("/api/valuation", valuation.GetValuationHandler(dbConn))
	mux.HandleFunc("/api/valuation/export_csv", valuation.ExportValuationCSVHandler(dbConn))

	mux.HandleFunc("/api/vendors/list", ListVendorsHandler(dbConn))
	mux.HandleFunc("/api/vendors/create", CreateVendorHandler(dbConn))
	mux.HandleFunc("/api/vendors/delete/", DeleteVendorHandler(dbConn))

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			GetConfigHandler()(w, r)
		case http.MethodPost:
			SaveConfigHandler()(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
}
