package analytics

import (
	"fmt"
	"math"
	"sort"

	"warungku/analytics/domain"
)

const (
	// noEstimate sorts products without a depletion signal after every
	// finite estimate.
	noEstimate = int64(math.MaxInt64)

	// maxEstimate caps quotients too large for int64 while still sorting
	// ahead of products with no signal at all.
	maxEstimate = noEstimate - 1
)

// BuildForecasts turns a product catalog and the line items sold in the last
// windowDays days into one forecast per product, ordered most-urgent first.
// Line items referencing products missing from the catalog are ignored.
func BuildForecasts(products []domain.Product, items []domain.TransactionItem, windowDays int) ([]domain.StockForecast, error) {
	if windowDays <= 0 {
		return nil, fmt.Errorf("%w: window must be a positive number of days, got %d", ErrInvalidArgument, windowDays)
	}

	soldByProduct := make(map[string]int64, len(products))
	for _, item := range items {
		soldByProduct[item.ProductID] += item.Qty
	}

	forecasts := make([]domain.StockForecast, 0, len(products))
	for _, p := range products {
		totalSold := soldByProduct[p.ID]
		avg := float64(totalSold) / float64(windowDays)

		var daysRemaining *int64
		switch {
		case avg > 0:
			quotient := math.Floor(float64(p.Stock) / avg)
			d := maxEstimate
			if quotient < float64(maxEstimate) {
				d = int64(quotient)
			}
			daysRemaining = &d
		case p.Stock == 0:
			// Already empty and no sales to measure velocity: still urgent.
			d := int64(0)
			daysRemaining = &d
		}

		forecasts = append(forecasts, domain.StockForecast{
			ProductID:              p.ID,
			Name:                   p.Name,
			CurrentStock:           p.Stock,
			TotalSold:              totalSold,
			AvgDailySales:          math.Round(avg*100) / 100,
			EstimatedDaysRemaining: daysRemaining,
			Status:                 classifyStatus(daysRemaining),
		})
	}

	// Stable keeps catalog order for ties, including between two products
	// with no estimate at all.
	sort.SliceStable(forecasts, func(i, j int) bool {
		return sortDays(forecasts[i]) < sortDays(forecasts[j])
	})

	return forecasts, nil
}

func sortDays(f domain.StockForecast) int64 {
	if f.EstimatedDaysRemaining == nil {
		return noEstimate
	}
	return *f.EstimatedDaysRemaining
}

func classifyStatus(daysRemaining *int64) string {
	if daysRemaining == nil {
		return domain.StatusSafe
	}
	switch {
	case *daysRemaining <= 3:
		return domain.StatusCritical
	case *daysRemaining <= 7:
		return domain.StatusWarning
	default:
		return domain.StatusSafe
	}
}
