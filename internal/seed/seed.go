// Package seed fills an empty database with plausible demo data for local
// development. It never touches a database that already has products.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const sqliteTime = "2006-01-02 15:04:05"

var demoCatalog = []struct {
	name     string
	category string
	price    int64
	stock    int64
}{
	{"Indomie Goreng", "Makanan", 3500, 120},
	{"Teh Botol Sosro 350ml", "Minuman", 5000, 48},
	{"Beras Premium 5kg", "Sembako", 72000, 15},
	{"Minyak Goreng 1L", "Sembako", 18000, 30},
	{"Gula Pasir 1kg", "Sembako", 16500, 25},
	{"Kopi Kapal Api Sachet", "Minuman", 1500, 200},
	{"Sabun Lifebuoy", "Kebersihan", 4500, 40},
	{"Shampo Sachet", "Kebersihan", 1000, 150},
	{"Telur Ayam 1kg", "Sembako", 28000, 20},
	{"Aqua 600ml", "Minuman", 4000, 60},
	{"Kerupuk Udang", "Makanan", 8000, 0},
	{"Rokok Surya 12", "Lainnya", 32000, 10},
}

var paymentMethods = []string{"CASH", "CASH", "QRIS", "TRANSFER", ""}

// Demo seeds a demo catalog plus roughly six weeks of sales history so the
// forecast and report endpoints return something interesting out of the box.
func Demo(db *sqlx.DB) error {
	var existing int
	if err := db.Get(&existing, `SELECT COUNT(*) FROM products`); err != nil {
		return fmt.Errorf("inspect products: %w", err)
	}
	if existing > 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	type demoProduct struct {
		id    string
		name  string
		price int64
	}
	products := make([]demoProduct, 0, len(demoCatalog))

	for _, entry := range demoCatalog {
		id := uuid.NewString()
		createdAt := now.AddDate(0, -3, 0).Format(sqliteTime)
		_, err := db.Exec(
			`INSERT INTO products (id, name, category, price, stock, createdAt, updatedAt)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, entry.name, entry.category, entry.price, entry.stock, createdAt, createdAt)
		if err != nil {
			return fmt.Errorf("insert product %s: %w", entry.name, err)
		}
		products = append(products, demoProduct{id: id, name: entry.name, price: entry.price})
	}

	for daysAgo := 45; daysAgo >= 0; daysAgo-- {
		for n := rng.Intn(4); n > 0; n-- {
			txID := uuid.NewString()
			createdAt := now.AddDate(0, 0, -daysAgo).
				Add(-time.Duration(rng.Intn(12)) * time.Hour).
				Format(sqliteTime)

			var total int64
			lines := 1 + rng.Intn(3)
			for l := 0; l < lines; l++ {
				p := products[rng.Intn(len(products))]
				qty := int64(1 + rng.Intn(5))
				subtotal := qty * p.price
				_, err := db.Exec(
					`INSERT INTO transaction_items (id, transactionId, productId, name, price, qty, subtotal)
                     VALUES (?, ?, ?, ?, ?, ?, ?)`,
					uuid.NewString(), txID, p.id, p.name, p.price, qty, subtotal)
				if err != nil {
					return fmt.Errorf("insert transaction item: %w", err)
				}
				total += subtotal
			}

			var discount int64
			if rng.Intn(5) == 0 {
				discount = 500 * int64(1+rng.Intn(4))
			}
			method := paymentMethods[rng.Intn(len(paymentMethods))]
			paid := total - discount

			_, err := db.Exec(
				`INSERT INTO transactions (id, total, discount, customerName, paymentMethod, status, amountPaid, change, createdAt, updatedAt)
                 VALUES (?, ?, ?, '', ?, 'completed', ?, 0, ?, ?)`,
				txID, total, discount, method, paid, createdAt, createdAt)
			if err != nil {
				return fmt.Errorf("insert transaction: %w", err)
			}
		}
	}

	return nil
}
