// Package store implements the transaction store over the POS SQLite
// database. It is strictly read-only: every method is a SELECT.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"warungku/analytics/domain"
	"warungku/analytics/internal/analytics"
)

// sqliteTime is the layout the POS backend stores timestamps in.
const sqliteTime = "2006-01-02 15:04:05"

// SQLite reads products, transactions and transaction items via sqlx.
type SQLite struct {
	db *sqlx.DB
}

// New wraps an open database handle.
func New(db *sqlx.DB) *SQLite {
	return &SQLite{db: db}
}

var _ analytics.Store = (*SQLite)(nil)

// FetchCatalog returns every product in the catalog, in insertion order.
func (s *SQLite) FetchCatalog(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := s.db.SelectContext(ctx, &products,
		`SELECT id, name, category, price, stock, createdAt, updatedAt
           FROM products
          ORDER BY createdAt, id`)
	if err != nil {
		return nil, fmt.Errorf("%w: select products: %v", analytics.ErrUnavailable, err)
	}
	return products, nil
}

// FetchLineItems returns the line items of all transactions created at or
// after since. The join carries the parent transaction's timestamp so callers
// never need a second lookup to window an item.
func (s *SQLite) FetchLineItems(ctx context.Context, since time.Time) ([]domain.TransactionItem, error) {
	var items []domain.TransactionItem
	err := s.db.SelectContext(ctx, &items,
		`SELECT ti.id, ti.transactionId, ti.productId, ti.name, ti.price, ti.qty, ti.subtotal,
                t.createdAt AS soldAt
           FROM transaction_items ti
           JOIN transactions t ON t.id = ti.transactionId
          WHERE t.createdAt >= ?`,
		since.UTC().Format(sqliteTime))
	if err != nil {
		return nil, fmt.Errorf("%w: select transaction items: %v", analytics.ErrUnavailable, err)
	}
	return items, nil
}

// FetchTransactions returns transactions created in [start, end).
func (s *SQLite) FetchTransactions(ctx context.Context, start, end time.Time) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	err := s.db.SelectContext(ctx, &transactions,
		`SELECT id, total, discount, customerName, paymentMethod, status, amountPaid, change,
                createdAt, updatedAt
           FROM transactions
          WHERE createdAt >= ? AND createdAt < ?`,
		start.UTC().Format(sqliteTime), end.UTC().Format(sqliteTime))
	if err != nil {
		return nil, fmt.Errorf("%w: select transactions: %v", analytics.ErrUnavailable, err)
	}
	return transactions, nil
}

// CountItems returns how many line items belong to one transaction.
func (s *SQLite) CountItems(ctx context.Context, transactionID string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM transaction_items WHERE transactionId = ?`, transactionID)
	if err != nil {
		return 0, fmt.Errorf("%w: count transaction items: %v", analytics.ErrUnavailable, err)
	}
	return count, nil
}
