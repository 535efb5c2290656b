package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Sienz16/ramadan-ku/internal/api/respond"
	"github.com/Sienz16/ramadan-ku/internal/cache"
	"github.com/Sienz16/ramadan-ku/internal/zone"
)

// GetZones returns the full zone directory.
// @Summary List JAKIM zones
// @Description Returns every known zone code with its reference city, state, and coordinates.
// @Tags zones
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/zones [get]
func (h *Handler) GetZones(w http.ResponseWriter, r *http.Request) {
	ttl := cache.TTLZones

	if data, etag, ok := h.cache.Get(cache.ZonesKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	data, err := json.Marshal(map[string]interface{}{
		"zones": zone.Directory,
		"count": len(zone.Directory),
	})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode response")
		return
	}

	etag := h.cache.Set(cache.ZonesKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

type resolveResponse struct {
	Zone   string `json:"zone"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
	Source string `json:"source"` // explicit or nearest
}

// ResolveZone maps an explicit code or coordinates to a zone.
// @Summary Resolve a zone
// @Description An explicit zone code always wins over coordinates. Without one, the nearest directory entry by great-circle distance is returned.
// @Tags zones
// @Produce json
// @Param zone query string false "Explicit JAKIM zone code"
// @Param lat query number false "Latitude"
// @Param lng query number false "Longitude"
// @Success 200 {object} resolveResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/zones/resolve [get]
func (h *Handler) ResolveZone(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if code := strings.ToUpper(q.Get("zone")); code != "" {
		loc := zone.ByCode(code)
		if loc == nil {
			respond.WriteError(w, http.StatusNotFound, "UNKNOWN_ZONE", "Unknown zone code "+code)
			return
		}
		respond.WriteJSONObject(w, http.StatusOK, resolveResponse{
			Zone:   loc.Zone,
			City:   loc.City,
			State:  loc.State,
			Source: "explicit",
		})
		return
	}

	latStr, lngStr := q.Get("lat"), q.Get("lng")
	if latStr == "" || lngStr == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_COORDINATES",
			"Either zone or both lat and lng are required")
		return
	}

	lat, latErr := strconv.ParseFloat(latStr, 64)
	lng, lngErr := strconv.ParseFloat(lngStr, 64)
	if latErr != nil || lngErr != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_COORDINATES",
			"lat and lng must be decimal degrees")
		return
	}

	nearest := zone.Nearest(lat, lng, zone.Directory)
	if nearest == nil {
		respond.WriteError(w, http.StatusInternalServerError, "EMPTY_DIRECTORY", "Zone directory is empty")
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, resolveResponse{
		Zone:   nearest.Zone,
		City:   nearest.City,
		State:  nearest.State,
		Source: "nearest",
	})
}
