package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"

	"warungku/analytics/internal/analytics"
	"warungku/analytics/internal/report"
)

// sessionCookie is the httpOnly cookie the POS backend sets at login. The
// bearer header wins when both are present.
const sessionCookie = "wk_session"

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	service *analytics.Service
	secret  string
	origins []string
}

// New constructs a Handler.
func New(service *analytics.Service, secret string, origins []string) *Handler {
	return &Handler{service: service, secret: secret, origins: origins}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", h.health)

	r.Route("/api", func(api chi.Router) {
		api.Use(h.authMiddleware)
		api.Get("/predict-stock", h.predictStock)
		api.Get("/report", h.monthlyReport)
		api.Get("/report/export", h.exportMonthlyReport)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Middleware

// authMiddleware validates the HS256 tokens the POS backend issues at login,
// from the Authorization header or the session cookie.
func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var tokenString string
		header := r.Header.Get("Authorization")
		if strings.HasPrefix(strings.ToLower(header), "bearer ") {
			tokenString = strings.TrimSpace(header[len("Bearer "):])
		} else if cookie, err := r.Cookie(sessionCookie); err == nil {
			tokenString = cookie.Value
		}
		if tokenString == "" {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(h.secret), nil
		})
		if err != nil || !token.Valid {
			respondError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Analytics handlers

func (h *Handler) predictStock(w http.ResponseWriter, r *http.Request) {
	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "days must be an integer")
			return
		}
		days = parsed
	}

	forecasts, err := h.service.ForecastStock(r.Context(), days)
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, envelope{Success: true, Data: forecasts})
}

func (h *Handler) monthlyReport(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parsePeriod(w, r)
	if !ok {
		return
	}

	summary, err := h.service.AggregatePeriod(r.Context(), year, month)
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, envelope{Success: true, Data: summary})
}

func (h *Handler) exportMonthlyReport(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parsePeriod(w, r)
	if !ok {
		return
	}

	summary, err := h.service.AggregatePeriod(r.Context(), year, month)
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	workbook, err := report.BuildWorkbook(summary)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to build report workbook")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(year, month)))
	// Headers are out the door; a mid-stream write failure cannot be reported.
	_ = workbook.Write(w)
}

func parsePeriod(w http.ResponseWriter, r *http.Request) (year, month int, ok bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "year must be an integer")
		return 0, 0, false
	}
	month, err = strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "month must be an integer")
		return 0, 0, false
	}
	return year, month, true
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, analytics.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, analytics.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
