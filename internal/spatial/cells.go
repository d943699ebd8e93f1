package spatial

import (
	"fmt"

	"github.com/golang/geo/s2"
)

// Supported dashboard resolutions. Resolution n maps to s2 cell level 2n, so
// one resolution step shrinks cell area by a factor of 16, roughly matching
// the hexagon size steps the forecast data is published at.
const (
	MinResolution = 6
	MaxResolution = 9

	// NativeResolution is the resolution the demand observations and the
	// forecast cells are keyed at.
	NativeResolution = 8
)

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ValidResolution reports whether r is inside the supported range.
func ValidResolution(r int) bool {
	return r >= MinResolution && r <= MaxResolution
}

func level(resolution int) int {
	return 2 * resolution
}

// CellToken returns the cell token containing the point at the given
// resolution.
func CellToken(lat, lng float64, resolution int) string {
	ll := s2.LatLngFromDegrees(lat, lng)
	return s2.CellIDFromLatLng(ll).Parent(level(resolution)).ToToken()
}

// CellCenter decodes a cell token into the center point of the cell.
func CellCenter(token string) (Coordinate, error) {
	id := s2.CellIDFromToken(token)
	if !id.IsValid() {
		return Coordinate{}, fmt.Errorf("spatial: invalid cell token %q", token)
	}
	ll := id.LatLng()
	return Coordinate{Lat: ll.Lat.Degrees(), Lng: ll.Lng.Degrees()}, nil
}

// MeanCenter returns the average of the cell center points, used as the
// initial view coordinate for map centering. Invalid tokens are skipped;
// returns false when no valid token was given.
func MeanCenter(tokens []string) (Coordinate, bool) {
	var sumLat, sumLng float64
	n := 0
	for _, token := range tokens {
		c, err := CellCenter(token)
		if err != nil {
			continue
		}
		sumLat += c.Lat
		sumLng += c.Lng
		n++
	}
	if n == 0 {
		return Coordinate{}, false
	}
	return Coordinate{Lat: sumLat / float64(n), Lng: sumLng / float64(n)}, true
}
