package main

import (
	"log"

	"github.com/joho/godotenv"

	"warungku/analytics/internal/config"
	"warungku/analytics/internal/database"
	"warungku/analytics/internal/migrations"
	"warungku/analytics/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	migrations.Run(db)
	if err := seed.Demo(db); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("demo data ready")
}
