// Package geo provides great-circle distance, geohash encoding and an
// in-memory spatial index over heritage objects. Nearby points share a
// geohash prefix, so a proximity search only scans the grid cells that can
// intersect the search radius instead of the whole reference set.
package geo

import (
	"math"
	"strings"
)

const base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

// Neighbor lookup tables, indexed by hash length parity (0 = even, 1 = odd).
// The geohash bit interleaving alternates longitude/latitude, so the
// adjacent cell of the last character depends on that parity.
var (
	neighborTable = map[string][2]string{
		"n": {"p0r21436x8zb9dcf5h7kjnmqesgutwvy", "bc01fg45238967deuvhjyznpkmstqrwx"},
		"s": {"14365h7k9dcfesgujnmqp0r2twvyx8zb", "238967debc01fg45kmstqrwxuvhjyznp"},
		"e": {"bc01fg45238967deuvhjyznpkmstqrwx", "p0r21436x8zb9dcf5h7kjnmqesgutwvy"},
		"w": {"238967debc01fg45kmstqrwxuvhjyznp", "14365h7k9dcfesgujnmqp0r2twvyx8zb"},
	}
	borderTable = map[string][2]string{
		"n": {"prxz", "bcfguvyz"},
		"s": {"028b", "0145hjnp"},
		"e": {"bcfguvyz", "prxz"},
		"w": {"0145hjnp", "028b"},
	}
)

// Encode converts a coordinate to a geohash of the given precision by
// bisecting the longitude and latitude ranges alternately, packing five
// bits per base32 character.
func Encode(lat, lon float64, precision int) string {
	if precision <= 0 {
		precision = 5
	}
	if precision > 12 {
		precision = 12
	}

	minLat, maxLat := -90.0, 90.0
	minLon, maxLon := -180.0, 180.0

	var hash strings.Builder
	isEven := true
	bit := 0
	ch := 0

	for hash.Len() < precision {
		if isEven {
			mid := (minLon + maxLon) / 2
			if lon >= mid {
				ch |= 1 << (4 - bit)
				minLon = mid
			} else {
				maxLon = mid
			}
		} else {
			mid := (minLat + maxLat) / 2
			if lat >= mid {
				ch |= 1 << (4 - bit)
				minLat = mid
			} else {
				maxLat = mid
			}
		}
		isEven = !isEven
		bit++
		if bit == 5 {
			hash.WriteByte(base32[ch])
			bit = 0
			ch = 0
		}
	}

	return hash.String()
}

// Decode returns the center of the cell a geohash describes.
func Decode(hash string) (lat, lon float64) {
	minLat, maxLat := -90.0, 90.0
	minLon, maxLon := -180.0, 180.0
	isEven := true

	for i := 0; i < len(hash); i++ {
		cd := strings.IndexByte(base32, hash[i])
		if cd < 0 {
			continue
		}
		for j := 4; j >= 0; j-- {
			bit := (cd >> j) & 1
			if isEven {
				mid := (minLon + maxLon) / 2
				if bit == 1 {
					minLon = mid
				} else {
					maxLon = mid
				}
			} else {
				mid := (minLat + maxLat) / 2
				if bit == 1 {
					minLat = mid
				} else {
					maxLat = mid
				}
			}
			isEven = !isEven
		}
	}

	return (minLat + maxLat) / 2, (minLon + maxLon) / 2
}

// Neighbor returns the geohash of the adjacent cell in direction
// "n", "s", "e" or "w", recursing into the parent when the last character
// sits on the border of its parent cell.
func Neighbor(hash, direction string) string {
	if len(hash) == 0 {
		return ""
	}

	hash = strings.ToLower(hash)
	lastChar := hash[len(hash)-1]
	parent := hash[:len(hash)-1]
	parity := len(hash) % 2

	if strings.IndexByte(borderTable[direction][parity], lastChar) >= 0 && parent != "" {
		parent = Neighbor(parent, direction)
	}

	idx := strings.IndexByte(neighborTable[direction][parity], lastChar)
	if idx < 0 {
		return hash
	}
	return parent + string(base32[idx])
}

// CellsWithin returns every cell of hash's precision whose center column/row
// lies within stepsNS cells north-south and stepsEW cells east-west of it,
// center included. CellsWithin(h, 1, 1) is the classic 3x3 neighborhood.
func CellsWithin(hash string, stepsNS, stepsEW int) []string {
	column := []string{hash}
	up, down := hash, hash
	for i := 0; i < stepsNS; i++ {
		up = Neighbor(up, "n")
		down = Neighbor(down, "s")
		column = append(column, up, down)
	}

	cells := make([]string, 0, (2*stepsNS+1)*(2*stepsEW+1))
	for _, c := range column {
		cells = append(cells, c)
		east, west := c, c
		for i := 0; i < stepsEW; i++ {
			east = Neighbor(east, "e")
			west = Neighbor(west, "w")
			cells = append(cells, east, west)
		}
	}
	return cells
}

// cellSizeMeters returns a conservative (smallest) north-south and east-west
// extent of a cell at the given precision and latitude. Longitude cells
// narrow toward the poles, so the ring search has to widen there.
func cellSizeMeters(precision int, lat float64) (ns, ew float64) {
	bits := 5 * precision
	lonBits := (bits + 1) / 2
	latBits := bits / 2

	nsDeg := 180.0 / math.Exp2(float64(latBits))
	ewDeg := 360.0 / math.Exp2(float64(lonBits))

	metersPerDeg := 2 * math.Pi * EarthRadiusMeters / 360
	ns = nsDeg * metersPerDeg
	ew = ewDeg * metersPerDeg * math.Cos(lat*math.Pi/180)
	if ew < 1 {
		ew = 1
	}
	return ns, ew
}
