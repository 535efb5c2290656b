// Package zone resolves geographic positions and stored preferences to JAKIM
// administrative prayer-time zone codes.
package zone

import "math"

const earthRadiusKm = 6371

// Location is one row of the zone directory: a reference city with its
// coordinates and the zone code whose timing table covers it.
type Location struct {
	City      string  `json:"city"`
	State     string  `json:"state,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zone      string  `json:"zone"`
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// haversineKm is the great-circle distance between two coordinates.
func haversineKm(latA, lonA, latB, lonB float64) float64 {
	dLat := toRad(latB - latA)
	dLon := toRad(lonB - lonA)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(latA))*math.Cos(toRad(latB))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Nearest returns the directory entry closest to the given position, or nil
// for an empty candidate list. Ties keep the first minimal candidate in list
// order. Linear scan — the directory is tens of rows.
func Nearest(lat, lon float64, locations []Location) *Location {
	if len(locations) == 0 {
		return nil
	}

	nearest := &locations[0]
	nearestDistance := haversineKm(lat, lon, nearest.Latitude, nearest.Longitude)

	for i := 1; i < len(locations); i++ {
		candidate := &locations[i]
		distance := haversineKm(lat, lon, candidate.Latitude, candidate.Longitude)
		if distance < nearestDistance {
			nearest = candidate
			nearestDistance = distance
		}
	}

	return nearest
}

// Resolve maps a stored preference or position to a zone code. An explicit
// zone code always wins — a user's saved choice is never overridden by
// geolocation. Returns "" when nothing resolves.
func Resolve(explicitZone string, lat, lon float64, locations []Location) string {
	if explicitZone != "" {
		return explicitZone
	}

	if nearest := Nearest(lat, lon, locations); nearest != nil {
		return nearest.Zone
	}
	return ""
}

// ByCode looks a zone code up in the directory. Nil when unknown.
func ByCode(code string) *Location {
	for i := range Directory {
		if Directory[i].Zone == code {
			return &Directory[i]
		}
	}
	return nil
}
