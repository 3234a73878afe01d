package domain

// Stock status tiers. The wire tokens are the Indonesian labels the WarungKu
// client has always rendered; the constants carry neutral names.
const (
	StatusSafe     = "Aman"
	StatusWarning  = "Waspada"
	StatusCritical = "Kritis"
)

// StockForecast estimates when one product runs out at its recent sale rate.
// EstimatedDaysRemaining is nil when the product had no sales in the window
// but still has stock: there is no velocity to extrapolate from.
//
// The totalSoldLast30Days key is historical: the dashboard reads that exact
// name whatever window was requested.
type StockForecast struct {
	ProductID              string  `json:"productId"`
	Name                   string  `json:"name"`
	CurrentStock           int64   `json:"currentStock"`
	TotalSold              int64   `json:"totalSoldLast30Days"`
	AvgDailySales          float64 `json:"avgDailySales"`
	EstimatedDaysRemaining *int64  `json:"estimatedDaysRemaining"`
	Status                 string  `json:"status"`
}
