package analytics

import (
	"context"
	"fmt"
	"time"

	"warungku/analytics/domain"
)

// Store is the read side of the POS database. Implementations wrap transport
// failures in ErrUnavailable so callers can tell "store down" from "no rows".
type Store interface {
	// FetchCatalog returns every product currently in the catalog.
	FetchCatalog(ctx context.Context) ([]domain.Product, error)

	// FetchLineItems returns the line items of all transactions created at or
	// after since, each carrying its parent transaction's timestamp.
	FetchLineItems(ctx context.Context, since time.Time) ([]domain.TransactionItem, error)

	// FetchTransactions returns transactions created in [start, end).
	FetchTransactions(ctx context.Context, start, end time.Time) ([]domain.Transaction, error)

	// CountItems returns how many line items belong to one transaction.
	CountItems(ctx context.Context, transactionID string) (int, error)
}

// Service wires the pure computations to a transaction store. Each call owns
// its working set; the service itself holds no mutable state.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService constructs a Service reading from store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// ForecastStock estimates days-until-empty for every catalog product from the
// sales of the trailing windowDays days.
func (s *Service) ForecastStock(ctx context.Context, windowDays int) ([]domain.StockForecast, error) {
	if windowDays <= 0 {
		return nil, fmt.Errorf("%w: window must be a positive number of days, got %d", ErrInvalidArgument, windowDays)
	}

	products, err := s.store.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	if len(products) == 0 {
		return []domain.StockForecast{}, nil
	}

	since := s.now().AddDate(0, 0, -windowDays)
	items, err := s.store.FetchLineItems(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("fetch line items: %w", err)
	}

	return BuildForecasts(products, items, windowDays)
}

// AggregatePeriod summarizes the calendar month given by year and month.
func (s *Service) AggregatePeriod(ctx context.Context, year, month int) (domain.PeriodSummary, error) {
	start, end, err := MonthRange(year, month)
	if err != nil {
		return domain.PeriodSummary{}, err
	}

	transactions, err := s.store.FetchTransactions(ctx, start, end)
	if err != nil {
		return domain.PeriodSummary{}, fmt.Errorf("fetch transactions: %w", err)
	}

	summary := SummarizePeriod(year, month, transactions)
	for i := range summary.Transactions {
		count, err := s.store.CountItems(ctx, summary.Transactions[i].ID)
		if err != nil {
			return domain.PeriodSummary{}, fmt.Errorf("count items for transaction %s: %w", summary.Transactions[i].ID, err)
		}
		summary.Transactions[i].ItemCount = count
	}

	return summary, nil
}
