package analytics

import (
	"fmt"
	"sort"
	"time"

	"warungku/analytics/domain"
)

// fallbackPaymentMethod is reported when a transaction was stored without a
// payment method. The POS write path has always treated empty as cash.
const fallbackPaymentMethod = "CASH"

// Timestamp layouts seen in the shared SQLite file: the SQLite default, the
// Sequelize millisecond form, and RFC 3339.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999 -07:00",
	"2006-01-02 15:04:05.999",
	time.RFC3339,
}

// MonthRange resolves a year/month pair into the half-open UTC range
// [first of month, first of next month). December rolls into January of the
// following year.
func MonthRange(year, month int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month must be between 1 and 12, got %d", ErrInvalidArgument, month)
	}
	if year < 2000 || year > 2100 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: year must be between 2000 and 2100, got %d", ErrInvalidArgument, year)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), nil
}

// SummarizePeriod reduces one calendar month of transactions into totals plus
// a newest-first excerpt of at most domain.ExcerptLimit rows. Rows whose
// timestamp cannot be parsed are skipped and counted, never fatal. Item counts
// on the excerpt are left at zero; the service fills them from the store.
func SummarizePeriod(year, month int, transactions []domain.Transaction) domain.PeriodSummary {
	summary := domain.PeriodSummary{
		Year:         year,
		Month:        month,
		Transactions: []domain.TransactionSummary{},
	}

	type datedTransaction struct {
		tx domain.Transaction
		at time.Time
	}

	dated := make([]datedTransaction, 0, len(transactions))
	for _, tx := range transactions {
		at, err := parseTimestamp(tx.CreatedAt)
		if err != nil {
			summary.SkippedRecords++
			continue
		}
		summary.TotalRevenue += tx.Total
		summary.TotalDiscount += tx.Discount
		summary.TransactionCount++
		dated = append(dated, datedTransaction{tx: tx, at: at})
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].at.After(dated[j].at)
	})

	if len(dated) > domain.ExcerptLimit {
		summary.Truncated = true
		dated = dated[:domain.ExcerptLimit]
	}

	for _, d := range dated {
		method := d.tx.PaymentMethod
		if method == "" {
			method = fallbackPaymentMethod
		}
		summary.Transactions = append(summary.Transactions, domain.TransactionSummary{
			ID:            d.tx.ID,
			CreatedAt:     d.at,
			PaymentMethod: method,
			Total:         d.tx.Total,
		})
	}

	return summary
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}
