// Package ports is a small static registry of major ports referenced by
// statement-of-facts documents.
package ports

import (
	"math"
	"strings"
)

// Port describes one port. Coordinates are nil for unknown ports.
type Port struct {
	Name     string   `json:"name"`
	Country  string   `json:"country"`
	Timezone string   `json:"timezone"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
}

func coord(v float64) *float64 { return &v }

var registry = map[string]Port{
	"singapore": {
		Name:     "Port of Singapore",
		Country:  "Singapore",
		Timezone: "Asia/Singapore",
		Lat:      coord(1.2966),
		Lon:      coord(103.8006),
	},
	"rotterdam": {
		Name:     "Port of Rotterdam",
		Country:  "Netherlands",
		Timezone: "Europe/Amsterdam",
		Lat:      coord(51.9225),
		Lon:      coord(4.47917),
	},
	"shanghai": {
		Name:     "Port of Shanghai",
		Country:  "China",
		Timezone: "Asia/Shanghai",
		Lat:      coord(31.2304),
		Lon:      coord(121.4737),
	},
	"dubai": {
		Name:     "Port of Dubai",
		Country:  "UAE",
		Timezone: "Asia/Dubai",
		Lat:      coord(25.2697),
		Lon:      coord(55.3094),
	},
}

// Lookup returns information about a port by name. Unknown ports get a
// placeholder entry echoing the queried name with a UTC timezone.
func Lookup(name string) Port {
	if p, ok := registry[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p
	}
	return Port{Name: name, Country: "Unknown", Timezone: "UTC"}
}

// Known returns whether the registry carries the given port.
func Known(name string) bool {
	_, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// earthRadiusNM is Earth's mean radius in nautical miles.
const earthRadiusNM = 3440.065

// DistanceNM computes the great-circle distance between two coordinates in
// nautical miles.
func DistanceNM(lat1, lon1, lat2, lon2 float64) float64 {
	lat1 = lat1 * math.Pi / 180
	lon1 = lon1 * math.Pi / 180
	lat2 = lat2 * math.Pi / 180
	lon2 = lon2 * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1
	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	c := 2 * math.Asin(math.Sqrt(a))

	return c * earthRadiusNM
}
