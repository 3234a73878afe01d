package domain

import "time"

// ExcerptLimit caps how many transactions a PeriodSummary carries for display.
const ExcerptLimit = 50

// TransactionSummary is one excerpt row: just enough to print a line in the
// monthly report table.
type TransactionSummary struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	PaymentMethod string    `json:"paymentMethod"`
	ItemCount     int       `json:"itemCount"`
	Total         int64     `json:"total"`
}

// PeriodSummary aggregates one calendar month of sales. Transactions holds at
// most ExcerptLimit rows, newest first; Truncated tells the presentation layer
// to render a "showing N of M" notice. SkippedRecords counts source rows whose
// timestamp could not be parsed.
type PeriodSummary struct {
	Year             int                  `json:"year"`
	Month            int                  `json:"month"`
	TotalRevenue     int64                `json:"totalRevenue"`
	TotalDiscount    int64                `json:"totalDiscount"`
	TransactionCount int                  `json:"transactionCount"`
	Transactions     []TransactionSummary `json:"transactions"`
	Truncated        bool                 `json:"truncated"`
	SkippedRecords   int                  `json:"skippedRecords"`
}
