package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/jordanhw/honeywatch/internal/models"
	"github.com/jordanhw/honeywatch/internal/services"
	pkghttp "github.com/jordanhw/honeywatch/pkg/http"
	"github.com/stretchr/testify/assert"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	contentType := w.Header().Get("Content-Type")
	assert.Equal(t, "application/json", contentType, "Content-Type should be application/json")

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks that response is a valid error response
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode error response")
	assert.Equal(t, expectedError, resp.Error, "Error code mismatch")
	assert.NotEmpty(t, resp.Message, "Error message should not be empty")
}

// WithChiRouteContext injects chi URL parameters that would normally be
// extracted by the router from the URL path
func WithChiRouteContext(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	LoginFunc func(ctx context.Context, in services.LoginInput) (*services.LoginResult, error)
}

func (m *MockAuthService) Login(ctx context.Context, in services.LoginInput) (*services.LoginResult, error) {
	if m.LoginFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.LoginFunc(ctx, in)
}

// MockEventService implements EventServiceInterface for testing
type MockEventService struct {
	RecordFunc      func(ctx context.Context, in services.EventInput, sourceAddress string) (*models.EventRecord, error)
	RecordBatchFunc func(ctx context.Context, inputs []services.EventInput, sourceAddress string) (int, int, error)
}

func (m *MockEventService) Record(ctx context.Context, in services.EventInput, sourceAddress string) (*models.EventRecord, error) {
	if m.RecordFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.RecordFunc(ctx, in, sourceAddress)
}

func (m *MockEventService) RecordBatch(ctx context.Context, inputs []services.EventInput, sourceAddress string) (int, int, error) {
	if m.RecordBatchFunc == nil {
		return 0, 0, models.ErrInternalServer
	}
	return m.RecordBatchFunc(ctx, inputs, sourceAddress)
}

// MockAnalyticsService implements AnalyticsServiceInterface for testing
type MockAnalyticsService struct {
	LoginStatsFunc        func(ctx context.Context, timeRange models.TimeRange) (map[string]models.AttemptBucket, error)
	AddressReputationFunc func(ctx context.Context, address string) (*services.ReputationReport, error)
	ExportAllFunc         func(ctx context.Context) (*services.ExportDump, error)
}

func (m *MockAnalyticsService) LoginStats(ctx context.Context, timeRange models.TimeRange) (map[string]models.AttemptBucket, error) {
	if m.LoginStatsFunc == nil {
		return map[string]models.AttemptBucket{}, nil
	}
	return m.LoginStatsFunc(ctx, timeRange)
}

func (m *MockAnalyticsService) AddressReputation(ctx context.Context, address string) (*services.ReputationReport, error) {
	if m.AddressReputationFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.AddressReputationFunc(ctx, address)
}

func (m *MockAnalyticsService) ExportAll(ctx context.Context) (*services.ExportDump, error) {
	if m.ExportAllFunc == nil {
		return &services.ExportDump{}, nil
	}
	return m.ExportAllFunc(ctx)
}
