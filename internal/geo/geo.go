// Package geo projects Black Rock City ring/clock addresses to approximate
// latitude/longitude.
//
// The city is laid out as concentric rings (Esplanade, then A..K) around a
// fixed center, with angular position given as a 12-hour clock reading. Each
// ring's radius is derived once from a calibration coordinate captured at the
// 9:00 position; a clock reading maps linearly to compass bearing (12:00 is
// north, 3:00 east) and the polar offset converts to a lat/lon delta with a
// flat-area approximation, which holds because the city spans only a few
// kilometers.
//
// Unlike the text normalizers, this package fails loudly: a bad coordinate is
// worse than a missing one, so unknown rings and malformed clock text return
// errors.
package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
)

// Center of the city (the Man).
const (
	CenterLat = 40.786959
	CenterLon = -119.202991
)

const (
	earthRadiusM   = 6371000.0
	metersPerDeg   = 111320.0
	metersPerFoot  = 0.3048
	clockSeparator = ":"
)

// LatLon is a geographic coordinate.
type LatLon struct {
	Lat float64
	Lon float64
}

// ringRefs holds the calibration coordinate for each ring, captured at the
// 9:00 position.
var ringRefs = map[string]LatLon{
	"Esplanade": {40.791876, -119.209625},
	"A":         {40.792724, -119.210704},
	"B":         {40.793335, -119.211465},
	"C":         {40.793891, -119.212184},
	"D":         {40.794464, -119.212946},
	"E":         {40.795038, -119.213724},
	"F":         {40.795960, -119.214976},
	"G":         {40.796545, -119.215717},
	"H":         {40.797089, -119.216433},
	"I":         {40.797599, -119.217095},
	"J":         {40.797985, -119.217600},
	"K":         {40.798362, -119.218090},
}

var (
	radiiOnce sync.Once
	radii     map[string]float64
)

// ringRadiiM derives each ring's radius in meters from the center to its
// calibration coordinate. Computed once, read-only afterwards.
func ringRadiiM() map[string]float64 {
	radiiOnce.Do(func() {
		radii = make(map[string]float64, len(ringRefs))
		for ring, ref := range ringRefs {
			radii[ring] = haversineM(CenterLat, CenterLon, ref.Lat, ref.Lon)
		}
	})
	return radii
}

// haversineM is the great-circle distance between two points in meters.
func haversineM(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dPhi := radians(lat2 - lat1)
	dLambda := radians(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// BearingFromClock converts a clock reading like "9:00" or "4:30" to a
// compass bearing in degrees: 12:00 -> 0, 3:00 -> 90, 6:00 -> 180, 9:00 ->
// 270, with minutes interpolated linearly. The text must be H:MM with hour
// 0-23 and minute 00-59.
func BearingFromClock(clock string) (float64, error) {
	hour, minute, err := parseClock(clock)
	if err != nil {
		return 0, err
	}
	fracHours := float64(hour%12) + float64(minute)/60.0
	return fracHours / 12.0 * 360.0, nil
}

func parseClock(clock string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(clock), clockSeparator)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock position %q: want H:MM", clock)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid clock position %q: bad hour", clock)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid clock position %q: bad minute", clock)
	}
	return hour, minute, nil
}

// RingClockToLatLon computes the approximate coordinate of a ring/clock
// address such as ("G", "7:25"). Ring is "Esplanade" or a letter A..K,
// case-insensitive.
func RingClockToLatLon(ring, clock string) (LatLon, error) {
	key := canonicalRing(ring)
	radius, ok := ringRadiiM()[key]
	if !ok {
		return LatLon{}, fmt.Errorf("unknown ring %q: want Esplanade or A..K", ring)
	}
	return project(radius, clock)
}

// ClockDistanceToLatLon computes the approximate coordinate of an open-playa
// address given as a clock angle and a radial distance from the center in
// feet, the convention artwork listings use.
func ClockDistanceToLatLon(clock string, distanceFeet float64) (LatLon, error) {
	return project(distanceFeet*metersPerFoot, clock)
}

// NormalizedLocationToLatLon parses a canonical "<Ring> & <Clock>" string,
// e.g. "G & 7:25", and projects it.
func NormalizedLocationToLatLon(normalized string) (LatLon, error) {
	parts := strings.SplitN(normalized, "&", 2)
	if len(parts) != 2 {
		return LatLon{}, fmt.Errorf("invalid normalized location %q: want \"<Ring> & <Clock>\"", normalized)
	}
	return RingClockToLatLon(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
}

func project(radiusM float64, clock string) (LatLon, error) {
	bearingDeg, err := BearingFromClock(clock)
	if err != nil {
		return LatLon{}, err
	}
	bearing := radians(bearingDeg)

	northM := radiusM * math.Cos(bearing)
	eastM := radiusM * math.Sin(bearing)

	mPerDegLat := metersPerDeg
	mPerDegLon := metersPerDeg * math.Cos(radians(CenterLat))

	return LatLon{
		Lat: CenterLat + northM/mPerDegLat,
		Lon: CenterLon + eastM/mPerDegLon,
	}, nil
}

func canonicalRing(ring string) string {
	s := strings.TrimSpace(ring)
	if strings.EqualFold(s, "esplanade") {
		return "Esplanade"
	}
	return strings.ToUpper(s)
}
