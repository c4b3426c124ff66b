// Package filter narrows and orders restaurant suggestions.
package filter

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const earthRadiusKm = 6371.0

var distancePattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(km|kilometers?|m|meters?|metres?)?\b`)

// ParseDistanceKm reads a free-form distance such as "0.5km", "800 m" or
// "1,2 km". A bare number is taken as kilometres. ok is false when s holds
// no number.
func ParseDistanceKm(s string) (km float64, ok bool) {
	m := distancePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	if unit := strings.ToLower(m[2]); unit != "" && !strings.HasPrefix(unit, "k") {
		v /= 1000
	}
	return v, true
}

// HaversineKm is the great-circle distance between two points.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// FormatDistance renders km as "850m" below one kilometre and "1.2km"
// otherwise.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%dm", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1fkm", km)
}
