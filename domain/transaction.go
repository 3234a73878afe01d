package domain

// Transaction is one completed sale. Timestamps stay as the raw text SQLite
// hands back; the aggregation layer parses them and skips rows it cannot read.
type Transaction struct {
	ID            string `db:"id" json:"id"`
	Total         int64  `db:"total" json:"total"`
	Discount      int64  `db:"discount" json:"discount"`
	CustomerName  string `db:"customerName" json:"customerName"`
	PaymentMethod string `db:"paymentMethod" json:"paymentMethod"`
	Status        string `db:"status" json:"status"`
	AmountPaid    int64  `db:"amountPaid" json:"amountPaid"`
	Change        int64  `db:"change" json:"change"`
	CreatedAt     string `db:"createdAt" json:"createdAt"`
	UpdatedAt     string `db:"updatedAt" json:"updatedAt"`
}

// TransactionItem is one line of a sale with the product name and price
// snapshotted at sale time. SoldAt is the parent transaction's timestamp,
// joined in by the store so the forecaster can window items without a second
// lookup.
type TransactionItem struct {
	ID            string `db:"id" json:"id"`
	TransactionID string `db:"transactionId" json:"transactionId"`
	ProductID     string `db:"productId" json:"productId"`
	Name          string `db:"name" json:"name"`
	Price         int64  `db:"price" json:"price"`
	Qty           int64  `db:"qty" json:"qty"`
	Subtotal      int64  `db:"subtotal" json:"subtotal"`
	SoldAt        string `db:"soldAt" json:"soldAt"`
}
