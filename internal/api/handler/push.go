package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Sienz16/ramadan-ku/internal/api/respond"
	"github.com/Sienz16/ramadan-ku/internal/config"
	"github.com/Sienz16/ramadan-ku/internal/push"
	"github.com/Sienz16/ramadan-ku/internal/zone"
)

// subscribeRequest accepts both the browser PushSubscription shape (nested
// keys object) and the flat shape older clients send.
type subscribeRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
	Zone   string `json:"zone"`
	City   string `json:"city"`
}

// Subscribe registers or refreshes a push subscription.
// @Summary Subscribe to prayer notifications
// @Description Registers a Web Push endpoint for a zone. Re-subscribing the same endpoint overwrites keys and zone and re-enables it.
// @Tags push
// @Accept json
// @Produce json
// @Param subscription body subscribeRequest true "Push subscription"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/v1/push/subscribe [post]
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be a JSON subscription")
		return
	}

	p256dh := req.Keys.P256dh
	if p256dh == "" {
		p256dh = req.P256dh
	}
	auth := req.Keys.Auth
	if auth == "" {
		auth = req.Auth
	}

	if req.Endpoint == "" || p256dh == "" || auth == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_FIELDS",
			"endpoint, p256dh, and auth are required")
		return
	}

	zoneCode := strings.ToUpper(req.Zone)
	if zoneCode == "" {
		zoneCode = config.DefaultZone
	}
	if zone.ByCode(zoneCode) == nil {
		respond.WriteError(w, http.StatusBadRequest, "UNKNOWN_ZONE", "Unknown zone code "+zoneCode)
		return
	}

	sub := push.Subscription{
		Endpoint: req.Endpoint,
		P256dh:   p256dh,
		Auth:     auth,
		Zone:     zoneCode,
		City:     req.City,
	}
	if err := h.store.Upsert(r.Context(), sub); err != nil {
		h.logger.Error("subscription upsert failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to save subscription")
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status": "subscribed",
		"zone":   zoneCode,
	})
}

type unsubscribeRequest struct {
	Endpoint string `json:"endpoint"`
}

// Unsubscribe removes a push subscription.
// @Summary Unsubscribe from prayer notifications
// @Description Removes the subscription row for an endpoint. Unknown endpoints succeed silently.
// @Tags push
// @Accept json
// @Produce json
// @Param request body unsubscribeRequest true "Endpoint to remove"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/v1/push/unsubscribe [post]
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req unsubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Endpoint == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_ENDPOINT", "endpoint is required")
		return
	}

	if err := h.store.Delete(r.Context(), req.Endpoint); err != nil {
		h.logger.Error("subscription delete failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to remove subscription")
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status": "unsubscribed",
	})
}

type testRequest struct {
	Endpoint string `json:"endpoint"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}

// SendTest delivers a test notification to one registered endpoint.
// @Summary Send a test notification
// @Description Delivers a test payload to a registered endpoint so users can verify background notifications work.
// @Tags push
// @Accept json
// @Produce json
// @Param request body testRequest true "Target endpoint with optional title/body"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 410 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/v1/push/test [post]
func (h *Handler) SendTest(w http.ResponseWriter, r *http.Request) {
	if h.transport == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "PUSH_DISABLED",
			"Web Push is not configured on this deployment")
		return
	}

	var req testRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Endpoint == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_ENDPOINT", "endpoint is required")
		return
	}

	sub, err := h.store.FindByEndpoint(r.Context(), req.Endpoint)
	if err != nil {
		h.logger.Error("subscription lookup failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to look up subscription")
		return
	}
	if sub == nil {
		respond.WriteError(w, http.StatusNotFound, "NOT_SUBSCRIBED", "Endpoint is not subscribed")
		return
	}

	payload, err := push.TestPayload(req.Title, req.Body)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode payload")
		return
	}

	if err := h.transport.Send(r.Context(), *sub, payload); err != nil {
		if errors.Is(err, push.ErrEndpointGone) {
			if disableErr := h.store.Disable(r.Context(), sub.Endpoint); disableErr != nil {
				h.logger.Warn("disable subscription failed", "endpoint", sub.Endpoint, "error", disableErr)
			}
			respond.WriteError(w, http.StatusGone, "ENDPOINT_GONE",
				"Push service reports this endpoint no longer exists")
			return
		}
		h.logger.Warn("test push failed", "endpoint", sub.Endpoint, "error", err)
		respond.WriteError(w, http.StatusBadGateway, "PUSH_FAILED", "Push service rejected the notification")
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status": "sent",
	})
}
