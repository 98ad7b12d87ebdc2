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

// AuthServiceInterface defines the interface for the login flow
type AuthServiceInterface interface {
	Login(ctx context.Context, in services.LoginInput) (*services.LoginResult, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	service  AuthServiceInterface
	ipConfig *pkghttp.IPConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service AuthServiceInterface, ipConfig *pkghttp.IPConfig) *AuthHandler {
	return &AuthHandler{service: service, ipConfig: ipConfig}
}

// DeviceInfoDTO is the client-reported device envelope
type DeviceInfoDTO struct {
	Fingerprint string `json:"fingerprint"`
	Browser     string `json:"browser"`
	Screen      string `json:"screen"`
	Timezone    string `json:"timezone"`
	Referrer    string `json:"referrer"`
	CurrentURL  string `json:"currentUrl"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username   string         `json:"username" validate:"required"`
	Secret     string         `json:"secret" validate:"required"`
	DeviceInfo *DeviceInfoDTO `json:"deviceInfo"`
	SessionID  string         `json:"sessionId"`
	RememberMe bool           `json:"rememberMe"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	UserID       string    `json:"userId"`
	Username     string    `json:"username"`
	SessionToken string    `json:"sessionToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	SessionID    string    `json:"sessionId"`
}

// LoginFailedResponse is the generic invalid-credentials response with the
// advisory remaining-attempts hint
type LoginFailedResponse struct {
	Error             string `json:"error"`
	Message           string `json:"message"`
	AttemptsRemaining int    `json:"attemptsRemaining"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	in := services.LoginInput{
		Username:      req.Username,
		Secret:        req.Secret,
		SessionID:     req.SessionID,
		UserAgent:     r.Header.Get("User-Agent"),
		SourceAddress: pkghttp.ExtractClientIP(r, h.ipConfig),
		RememberMe:    req.RememberMe,
	}
	if req.DeviceInfo != nil {
		in.DeviceFingerprint = req.DeviceInfo.Fingerprint
	}

	result, err := h.service.Login(r.Context(), in)
	if err != nil {
		if errors.Is(err, models.ErrBadRequest) {
			pkghttp.WriteBadRequest(w, "Missing required fields")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	if !result.Authenticated {
		// Generic indication regardless of whether the username was known
		pkghttp.WriteJSON(w, http.StatusUnauthorized, LoginFailedResponse{
			Error:             "invalid_credentials",
			Message:           "Invalid username or password",
			AttemptsRemaining: result.AttemptsRemaining,
		})
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, LoginResponse{
		UserID:       result.UserID,
		Username:     result.Username,
		SessionToken: result.SessionToken,
		ExpiresAt:    result.ExpiresAt,
		SessionID:    result.SessionID,
	})
}
