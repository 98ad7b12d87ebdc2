package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jordanhw/honeywatch/internal/models"
	"github.com/jordanhw/honeywatch/internal/services"
	pkghttp "github.com/jordanhw/honeywatch/pkg/http"
)

// EventServiceInterface defines the interface for telemetry ingest
type EventServiceInterface interface {
	Record(ctx context.Context, in services.EventInput, sourceAddress string) (*models.EventRecord, error)
	RecordBatch(ctx context.Context, inputs []services.EventInput, sourceAddress string) (logged, failed int, err error)
}

// EventHandler handles behavioral telemetry HTTP requests
type EventHandler struct {
	service  EventServiceInterface
	ipConfig *pkghttp.IPConfig
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(service EventServiceInterface, ipConfig *pkghttp.IPConfig) *EventHandler {
	return &EventHandler{service: service, ipConfig: ipConfig}
}

// EventRequest represents a single telemetry event submission
type EventRequest struct {
	Timestamp  *time.Time      `json:"timestamp"`
	SessionID  string          `json:"sessionId" validate:"required"`
	EventType  string          `json:"eventType" validate:"required"`
	EventData  json.RawMessage `json:"eventData"`
	DeviceInfo *DeviceInfoDTO  `json:"deviceInfo"`
}

// EventResponse echoes the assigned log id back to the instrumentation
type EventResponse struct {
	LogID     int64     `json:"logId"`
	EventType string    `json:"eventType"`
	Timestamp time.Time `json:"timestamp"`
}

// BatchRequest represents the request body for batched events
type BatchRequest struct {
	Events []EventRequest `json:"events" validate:"required"`
}

// BatchResponse reports per-batch ingest counts
type BatchResponse struct {
	EventsLogged int `json:"eventsLogged"`
	FailedEvents int `json:"failedEvents"`
}

// RecordEvent handles POST /api/log/event
func (h *EventHandler) RecordEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	sourceAddress := pkghttp.ExtractClientIP(r, h.ipConfig)
	record, err := h.service.Record(r.Context(), toEventInput(req), sourceAddress)
	if err != nil {
		if errors.Is(err, models.ErrBadRequest) {
			pkghttp.WriteBadRequest(w, "Missing required fields")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, EventResponse{
		LogID:     record.LogID,
		EventType: record.EventType,
		Timestamp: record.Timestamp,
	})
}

// RecordBatch handles POST /api/log/batch. Malformed entries are counted and
// skipped; they never abort the rest of the batch.
func (h *EventHandler) RecordBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if req.Events == nil {
		pkghttp.WriteBadRequest(w, "events is required")
		return
	}

	inputs := make([]services.EventInput, 0, len(req.Events))
	for _, e := range req.Events {
		inputs = append(inputs, toEventInput(e))
	}

	sourceAddress := pkghttp.ExtractClientIP(r, h.ipConfig)
	logged, failed, err := h.service.RecordBatch(r.Context(), inputs, sourceAddress)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, BatchResponse{
		EventsLogged: logged,
		FailedEvents: failed,
	})
}

func toEventInput(req EventRequest) services.EventInput {
	in := services.EventInput{
		Timestamp: req.Timestamp,
		SessionID: req.SessionID,
		EventType: req.EventType,
		EventData: req.EventData,
	}
	if req.DeviceInfo != nil {
		in.Device = services.DeviceInfo{
			Fingerprint: req.DeviceInfo.Fingerprint,
			Browser:     req.DeviceInfo.Browser,
			Screen:      req.DeviceInfo.Screen,
			Timezone:    req.DeviceInfo.Timezone,
			Referrer:    req.DeviceInfo.Referrer,
			CurrentURL:  req.DeviceInfo.CurrentURL,
		}
	}
	return in
}
