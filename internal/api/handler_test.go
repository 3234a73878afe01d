package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"warungku/analytics/domain"
	"warungku/analytics/internal/analytics"
)

const testSecret = "test_secret"

type stubStore struct {
	products     []domain.Product
	items        []domain.TransactionItem
	transactions []domain.Transaction
	fail         bool
}

func (s *stubStore) FetchCatalog(ctx context.Context) ([]domain.Product, error) {
	if s.fail {
		return nil, fmt.Errorf("%w: no such file", analytics.ErrUnavailable)
	}
	return s.products, nil
}

func (s *stubStore) FetchLineItems(ctx context.Context, since time.Time) ([]domain.TransactionItem, error) {
	if s.fail {
		return nil, fmt.Errorf("%w: no such file", analytics.ErrUnavailable)
	}
	return s.items, nil
}

func (s *stubStore) FetchTransactions(ctx context.Context, start, end time.Time) ([]domain.Transaction, error) {
	if s.fail {
		return nil, fmt.Errorf("%w: no such file", analytics.ErrUnavailable)
	}
	return s.transactions, nil
}

func (s *stubStore) CountItems(ctx context.Context, transactionID string) (int, error) {
	if s.fail {
		return 0, fmt.Errorf("%w: no such file", analytics.ErrUnavailable)
	}
	return 2, nil
}

func newTestServer(t *testing.T, store analytics.Store) *httptest.Server {
	t.Helper()
	handler := New(analytics.NewService(store), testSecret, []string{"http://localhost:5173"})
	server := httptest.NewServer(handler.Router())
	t.Cleanup(server.Close)
	return server
}

func bearerToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func get(t *testing.T, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) (bool, json.RawMessage) {
	t.Helper()
	defer resp.Body.Close()
	var body struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body.Success, body.Data
}

func TestHealth_NoAuthRequired(t *testing.T) {
	server := newTestServer(t, &stubStore{})
	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestPredictStock_RequiresToken(t *testing.T) {
	server := newTestServer(t, &stubStore{})
	resp := get(t, server.URL+"/api/predict-stock", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
	success, _ := decodeEnvelope(t, resp)
	if success {
		t.Error("expected success=false in error envelope")
	}
}

func TestPredictStock_OK(t *testing.T) {
	store := &stubStore{
		products: []domain.Product{{ID: "a", Name: "Beras", Stock: 10}},
		items:    []domain.TransactionItem{{ProductID: "a", Qty: 15}},
	}
	server := newTestServer(t, store)

	resp := get(t, server.URL+"/api/predict-stock?days=30", bearerToken(t))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	success, data := decodeEnvelope(t, resp)
	if !success {
		t.Error("expected success=true")
	}

	var forecasts []domain.StockForecast
	if err := json.Unmarshal(data, &forecasts); err != nil {
		t.Fatalf("decode forecasts: %v", err)
	}
	if len(forecasts) != 1 {
		t.Fatalf("expected 1 forecast, got %d", len(forecasts))
	}
	if forecasts[0].AvgDailySales != 0.5 {
		t.Errorf("expected avgDailySales 0.5, got %v", forecasts[0].AvgDailySales)
	}
}

// The dashboard reads these exact keys; renaming any of them blanks a column
// in the shipped client.
func TestPredictStock_WireKeys(t *testing.T) {
	store := &stubStore{
		products: []domain.Product{{ID: "a", Name: "Beras", Stock: 10}},
		items:    []domain.TransactionItem{{ProductID: "a", Qty: 15}},
	}
	server := newTestServer(t, store)

	resp := get(t, server.URL+"/api/predict-stock?days=30", bearerToken(t))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	_, data := decodeEnvelope(t, resp)

	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		t.Fatalf("decode rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	for _, key := range []string{
		"productId", "name", "currentStock", "totalSoldLast30Days",
		"avgDailySales", "estimatedDaysRemaining", "status",
	} {
		if _, ok := rows[0][key]; !ok {
			t.Errorf("missing wire key %q", key)
		}
	}
	if got := string(rows[0]["totalSoldLast30Days"]); got != "15" {
		t.Errorf("expected totalSoldLast30Days 15, got %s", got)
	}
	if got := string(rows[0]["status"]); got != `"Aman"` {
		t.Errorf("expected status token Aman, got %s", got)
	}
}

func TestPredictStock_BadWindow(t *testing.T) {
	server := newTestServer(t, &stubStore{})
	token := bearerToken(t)

	for _, query := range []string{"?days=abc", "?days=0", "?days=-5"} {
		resp := get(t, server.URL+"/api/predict-stock"+query, token)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", query, resp.StatusCode)
		}
	}
}

func TestPredictStock_StoreDown(t *testing.T) {
	server := newTestServer(t, &stubStore{fail: true})
	resp := get(t, server.URL+"/api/predict-stock", bearerToken(t))
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", resp.StatusCode)
	}
}

func TestMonthlyReport_OK(t *testing.T) {
	store := &stubStore{
		transactions: []domain.Transaction{
			{ID: "t1", Total: 25000, Discount: 1000, CreatedAt: "2024-03-10 09:30:00"},
		},
	}
	server := newTestServer(t, store)

	resp := get(t, server.URL+"/api/report?year=2024&month=3", bearerToken(t))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	_, data := decodeEnvelope(t, resp)

	var summary domain.PeriodSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.TotalRevenue != 25000 || summary.TransactionCount != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if summary.Transactions[0].ItemCount != 2 {
		t.Errorf("expected item count from store, got %d", summary.Transactions[0].ItemCount)
	}
}

func TestMonthlyReport_BadPeriod(t *testing.T) {
	server := newTestServer(t, &stubStore{})
	token := bearerToken(t)

	for _, query := range []string{"?year=2024&month=13", "?year=2024&month=0", "?year=abc&month=3", "?month=3"} {
		resp := get(t, server.URL+"/api/report"+query, token)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", query, resp.StatusCode)
		}
	}
}

func TestExportMonthlyReport_ReturnsWorkbook(t *testing.T) {
	store := &stubStore{
		transactions: []domain.Transaction{
			{ID: "t1", Total: 25000, CreatedAt: "2024-03-10 09:30:00"},
		},
	}
	server := newTestServer(t, store)

	resp := get(t, server.URL+"/api/report/export?year=2024&month=3", bearerToken(t))
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type %q", got)
	}
	if got := resp.Header.Get("Content-Disposition"); got != `attachment; filename="Laporan_WarungKu_2024_03.xlsx"` {
		t.Errorf("unexpected disposition %q", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	server := newTestServer(t, &stubStore{})

	req, _ := http.NewRequest(http.MethodOptions, server.URL+"/api/report", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("expected origin echoed, got %q", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("expected credentials allowed, got %q", got)
	}

	// Unknown origins get no CORS headers.
	req, _ = http.NewRequest(http.MethodOptions, server.URL+"/api/report", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS header for unknown origin, got %q", got)
	}
}

// Responses must vary on Origin so a shared cache never replays one origin's
// CORS grant to another.
func TestCORS_VaryOrigin(t *testing.T) {
	server := newTestServer(t, &stubStore{})

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/predict-stock", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Authorization", "Bearer "+bearerToken(t))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	found := false
	for _, v := range resp.Header.Values("Vary") {
		if strings.Contains(v, "Origin") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected Vary: Origin, got %v", resp.Header.Values("Vary"))
	}
}
