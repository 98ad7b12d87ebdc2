package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jordanhw/honeywatch/internal/models"
	"github.com/jordanhw/honeywatch/internal/services"
	pkghttp "github.com/jordanhw/honeywatch/pkg/http"
)

// AnalyticsServiceInterface defines the interface for analytical queries
type AnalyticsServiceInterface interface {
	LoginStats(ctx context.Context, timeRange models.TimeRange) (map[string]models.AttemptBucket, error)
	AddressReputation(ctx context.Context, address string) (*services.ReputationReport, error)
	ExportAll(ctx context.Context) (*services.ExportDump, error)
}

// AnalyticsHandler handles analytics and export HTTP requests
type AnalyticsHandler struct {
	service AnalyticsServiceInterface
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(service AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// LoginStatsResponse keys per-outcome buckets by attempt status
type LoginStatsResponse struct {
	TimeRange string                          `json:"timeRange"`
	Stats     map[string]models.AttemptBucket `json:"stats"`
}

// LoginStats handles GET /api/analytics/login-stats?timeRange={1h|24h|7d}
func (h *AnalyticsHandler) LoginStats(w http.ResponseWriter, r *http.Request) {
	timeRange := models.ParseTimeRange(r.URL.Query().Get("timeRange"))

	stats, err := h.service.LoginStats(r.Context(), timeRange)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, LoginStatsResponse{
		TimeRange: string(timeRange),
		Stats:     stats,
	})
}

// AddressReputation handles GET /api/analytics/ip-reputation/{address}
func (h *AnalyticsHandler) AddressReputation(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	if address == "" {
		pkghttp.WriteBadRequest(w, "address is required")
		return
	}

	report, err := h.service.AddressReputation(r.Context(), address)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "No reputation record for this address")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, report)
}

// ExportAll handles GET /api/export/all-logs (research/debug use only)
func (h *AnalyticsHandler) ExportAll(w http.ResponseWriter, r *http.Request) {
	dump, err := h.service.ExportAll(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, dump)
}
