// pricebook/main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"pricebook/config"
	"pricebook/loader"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: No .env file found, using environment as-is.")
	}

	dbPath := os.Getenv("PRICEBOOK_DB")
	if dbPath == "" {
		dbPath = "./pricebook.db"
	}

	log.Println("Connecting to database...")
	dbConn, err := sqlx.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()
	log.Println("Database connection successful.")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("WARN: Failed to load config file: %v. Using defaults.", err)
	}

	if err := loader.InitDatabase(dbConn, cfg.CatalogBackupPath, cfg.DefaultMerchantID); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	log.Println("Database initialization complete.")

	mux := http.NewServeMux()
	SetupRoutes(mux, dbConn)

	addr := os.Getenv("PRICEBOOK_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("Starting server on http://localhost%s", addr)

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server start error: %v", err)
	}
}
