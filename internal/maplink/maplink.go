// Package maplink builds map deep links for a restaurant. Links need no API
// key; they open a search in the map provider.
package maplink

import (
	"net/url"
	"strconv"
	"strings"
)

// Zoom is the map zoom level used when a link is anchored to coordinates.
const Zoom = 17

const (
	googleSearchBase = "https://www.google.com/maps/search/"
	osmBase          = "https://www.openstreetmap.org/"
)

// GoogleMaps returns a Google Maps search link for name and address,
// anchored at lat/lon when both are present and non-zero.
func GoogleMaps(name, address string, lat, lon *float64) string {
	query := Query(name, address)
	if la, lo, ok := coords(lat, lon); ok {
		return googleSearchBase + Escape(query) + "/@" + la + "," + lo + "," + strconv.Itoa(Zoom) + "z"
	}
	return googleSearchBase + "?api=1&query=" + Escape(query)
}

// OpenStreetMap returns an OpenStreetMap link, a marker at lat/lon when both
// are present and non-zero, otherwise a name search.
func OpenStreetMap(name string, lat, lon *float64) string {
	if la, lo, ok := coords(lat, lon); ok {
		z := strconv.Itoa(Zoom)
		return osmBase + "?mlat=" + la + "&mlon=" + lo + "#map=" + z + "/" + la + "/" + lo
	}
	return osmBase + "search?query=" + Escape(name)
}

// Query joins a name and optional address the way both the geocoder and
// the map search expect them.
func Query(name, address string) string {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	if address == "" {
		return name
	}
	return name + ", " + address
}

// Escape percent-encodes s for use in a path segment or query value.
// Spaces become %20 in both positions.
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func coords(lat, lon *float64) (string, string, bool) {
	if lat == nil || lon == nil || *lat == 0 || *lon == 0 {
		return "", "", false
	}
	return formatCoord(*lat), formatCoord(*lon), true
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
