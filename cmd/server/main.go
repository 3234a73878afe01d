package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"warungku/analytics/internal/analytics"
	"warungku/analytics/internal/api"
	"warungku/analytics/internal/config"
	"warungku/analytics/internal/database"
	"warungku/analytics/internal/migrations"
	"warungku/analytics/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Bootstraps the schema when the POS backend has not created it yet;
	// never alters existing tables.
	migrations.Run(db)

	service := analytics.NewService(store.New(db))
	handler := api.New(service, cfg.Secret, cfg.CORSOrigins)

	log.Printf("WarungKu analytics service starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
