package handlers_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jordanhw/honeywatch/internal/geo"
	"github.com/jordanhw/honeywatch/internal/handlers"
	"github.com/jordanhw/honeywatch/internal/models"
	"github.com/jordanhw/honeywatch/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStats_DefaultsToDay(t *testing.T) {
	mockAnalytics := &handlers.MockAnalyticsService{
		LoginStatsFunc: func(ctx context.Context, timeRange models.TimeRange) (map[string]models.AttemptBucket, error) {
			assert.Equal(t, models.TimeRangeDay, timeRange)
			return map[string]models.AttemptBucket{
				"success": {Count: 2, UniqueSourceAddresses: 1, UniqueUsernames: 1},
			}, nil
		},
	}

	handler := handlers.NewAnalyticsHandler(mockAnalytics)
	req := handlers.NewTestRequest(t, "GET", "/api/analytics/login-stats", nil)

	w := httptest.NewRecorder()
	handler.LoginStats(w, req)

	var resp handlers.LoginStatsResponse
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "24h", resp.TimeRange)
	assert.Equal(t, 2, resp.Stats["success"].Count)
}

func TestLoginStats_TimeRangeQuery(t *testing.T) {
	tests := []struct {
		query string
		want  models.TimeRange
	}{
		{"1h", models.TimeRangeHour},
		{"24h", models.TimeRangeDay},
		{"7d", models.TimeRangeWeek},
		{"30d", models.TimeRangeDay}, // unrecognized falls back to the default
		{"", models.TimeRangeDay},
	}

	for _, tt := range tests {
		t.Run("timeRange="+tt.query, func(t *testing.T) {
			var got models.TimeRange
			mockAnalytics := &handlers.MockAnalyticsService{
				LoginStatsFunc: func(ctx context.Context, timeRange models.TimeRange) (map[string]models.AttemptBucket, error) {
					got = timeRange
					return map[string]models.AttemptBucket{}, nil
				},
			}

			handler := handlers.NewAnalyticsHandler(mockAnalytics)
			req := handlers.NewTestRequest(t, "GET", "/api/analytics/login-stats?timeRange="+tt.query, nil)

			w := httptest.NewRecorder()
			handler.LoginStats(w, req)

			assert.Equal(t, 200, w.Code)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoginStats_ServiceFailure(t *testing.T) {
	mockAnalytics := &handlers.MockAnalyticsService{
		LoginStatsFunc: func(ctx context.Context, timeRange models.TimeRange) (map[string]models.AttemptBucket, error) {
			return nil, models.ErrInternalServer
		},
	}

	handler := handlers.NewAnalyticsHandler(mockAnalytics)
	req := handlers.NewTestRequest(t, "GET", "/api/analytics/login-stats", nil)

	w := httptest.NewRecorder()
	handler.LoginStats(w, req)

	handlers.AssertErrorResponse(t, w, 500, "internal_error")
}

func TestAddressReputation_Found(t *testing.T) {
	mockAnalytics := &handlers.MockAnalyticsService{
		AddressReputationFunc: func(ctx context.Context, address string) (*services.ReputationReport, error) {
			assert.Equal(t, "203.0.113.7", address)
			return &services.ReputationReport{
				IPReputation: models.IPReputation{
					Address:          "203.0.113.7",
					ReputationScore:  85,
					TotalLogins:      3,
					FailedLogins:     2,
					SuccessfulLogins: 1,
					FirstSeen:        time.Now().UTC(),
				},
				Location: &geo.Location{Country: "NL"},
			}, nil
		},
	}

	handler := handlers.NewAnalyticsHandler(mockAnalytics)
	req := handlers.NewTestRequest(t, "GET", "/api/analytics/ip-reputation/203.0.113.7", nil)
	req = handlers.WithChiRouteContext(req, map[string]string{"address": "203.0.113.7"})

	w := httptest.NewRecorder()
	handler.AddressReputation(w, req)

	var resp services.ReputationReport
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "203.0.113.7", resp.Address)
	assert.Equal(t, 85, resp.ReputationScore)
	require.NotNil(t, resp.Location)
	assert.Equal(t, "NL", resp.Location.Country)
}

func TestAddressReputation_Unknown(t *testing.T) {
	mockAnalytics := &handlers.MockAnalyticsService{
		AddressReputationFunc: func(ctx context.Context, address string) (*services.ReputationReport, error) {
			return nil, models.ErrNotFound
		},
	}

	handler := handlers.NewAnalyticsHandler(mockAnalytics)
	req := handlers.NewTestRequest(t, "GET", "/api/analytics/ip-reputation/198.51.100.9", nil)
	req = handlers.WithChiRouteContext(req, map[string]string{"address": "198.51.100.9"})

	w := httptest.NewRecorder()
	handler.AddressReputation(w, req)

	handlers.AssertErrorResponse(t, w, 404, "not_found")
}

func TestAddressReputation_MissingParam(t *testing.T) {
	handler := handlers.NewAnalyticsHandler(&handlers.MockAnalyticsService{})
	req := handlers.NewTestRequest(t, "GET", "/api/analytics/ip-reputation/", nil)
	req = handlers.WithChiRouteContext(req, map[string]string{})

	w := httptest.NewRecorder()
	handler.AddressReputation(w, req)

	handlers.AssertErrorResponse(t, w, 400, "bad_request")
}

func TestExportAll(t *testing.T) {
	mockAnalytics := &handlers.MockAnalyticsService{
		ExportAllFunc: func(ctx context.Context) (*services.ExportDump, error) {
			return &services.ExportDump{
				Sessions:      []models.Session{{SessionID: "sess-1"}},
				LoginAttempts: []models.LoginAttempt{{AttemptID: 1}},
				Events:        []models.EventRecord{{LogID: 1}},
				IPReputation:  []models.IPReputation{{Address: "203.0.113.7"}},
			}, nil
		},
	}

	handler := handlers.NewAnalyticsHandler(mockAnalytics)
	req := handlers.NewTestRequest(t, "GET", "/api/export/all-logs", nil)

	w := httptest.NewRecorder()
	handler.ExportAll(w, req)

	var resp services.ExportDump
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Len(t, resp.Sessions, 1)
	assert.Len(t, resp.LoginAttempts, 1)
	assert.Len(t, resp.Events, 1)
	assert.Len(t, resp.IPReputation, 1)
}

func TestExportAll_ServiceFailure(t *testing.T) {
	mockAnalytics := &handlers.MockAnalyticsService{
		ExportAllFunc: func(ctx context.Context) (*services.ExportDump, error) {
			return nil, models.ErrInternalServer
		},
	}

	handler := handlers.NewAnalyticsHandler(mockAnalytics)
	req := handlers.NewTestRequest(t, "GET", "/api/export/all-logs", nil)

	w := httptest.NewRecorder()
	handler.ExportAll(w, req)

	handlers.AssertErrorResponse(t, w, 500, "internal_error")
}
