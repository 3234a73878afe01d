package migrations

import (
	"log"

	"github.com/jmoiron/sqlx"
)

// Run creates the POS schema when it is absent. The tables belong to the POS
// backend; this only bootstraps a fresh database so the service (and the seed
// tool) can run against an empty file.
func Run(db *sqlx.DB) {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS products (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            category TEXT NOT NULL DEFAULT '',
            price INTEGER NOT NULL,
            stock INTEGER NOT NULL DEFAULT 0,
            createdAt DATETIME DEFAULT CURRENT_TIMESTAMP,
            updatedAt DATETIME DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS transactions (
            id TEXT PRIMARY KEY,
            total INTEGER NOT NULL,
            discount INTEGER NOT NULL DEFAULT 0,
            customerName TEXT NOT NULL DEFAULT '',
            paymentMethod TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'completed',
            amountPaid INTEGER NOT NULL DEFAULT 0,
            change INTEGER NOT NULL DEFAULT 0,
            createdAt DATETIME DEFAULT CURRENT_TIMESTAMP,
            updatedAt DATETIME DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS transaction_items (
            id TEXT PRIMARY KEY,
            transactionId TEXT NOT NULL,
            productId TEXT NOT NULL,
            name TEXT NOT NULL,
            price INTEGER NOT NULL,
            qty INTEGER NOT NULL,
            subtotal INTEGER NOT NULL,
            FOREIGN KEY(transactionId) REFERENCES transactions(id),
            FOREIGN KEY(productId) REFERENCES products(id)
        );`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}
}
