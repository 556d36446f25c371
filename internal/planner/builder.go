// Package planner orders candidate heritage objects into a visiting
// sequence using the nearest-unvisited-neighbor heuristic. Pure functions;
// deterministic for identical inputs.
package planner

import (
	"heritage_routes/internal/geo"
	"heritage_routes/internal/models"
)

// Leg is one step of a planned route before persistence. Seq is 1-based;
// DistanceFromPrevious for the first leg is measured from the start point.
type Leg struct {
	Seq                  int
	Object               models.HeritageObject
	DistanceFromPrevious float64 // meters
}

// TotalDistance sums the leg distances of a planned route.
func TotalDistance(legs []Leg) float64 {
	total := 0.0
	for _, leg := range legs {
		total += leg.DistanceFromPrevious
	}
	return total
}

// Build walks the candidate set greedily: from the current position, pick
// the closest unvisited object (ties by ascending object id), emit a leg,
// move there, repeat. Stops after requestedCount legs or when candidates
// run out, whichever comes first — the caller reports the achieved count.
// Duplicate object ids in the input are dropped, keeping the first
// occurrence, so a built route can never visit the same object twice.
func Build(start geo.Coordinate, requestedCount int, candidates []models.HeritageObject) []Leg {
	if requestedCount <= 0 {
		return nil
	}

	remaining := dedupe(candidates)
	current := start

	var legs []Leg
	for len(remaining) > 0 && len(legs) < requestedCount {
		best := 0
		bestDist := geo.Distance(current, coord(remaining[0]))
		for i := 1; i < len(remaining); i++ {
			d := geo.Distance(current, coord(remaining[i]))
			if d < bestDist || (d == bestDist && remaining[i].ID < remaining[best].ID) {
				best = i
				bestDist = d
			}
		}

		chosen := remaining[best]
		legs = append(legs, Leg{
			Seq:                  len(legs) + 1,
			Object:               chosen,
			DistanceFromPrevious: bestDist,
		})

		remaining = append(remaining[:best], remaining[best+1:]...)
		current = coord(chosen)
	}

	return legs
}

func coord(obj models.HeritageObject) geo.Coordinate {
	return geo.Coordinate{Lat: obj.Latitude, Lon: obj.Longitude}
}

// dedupe removes repeated object ids, keeping input order for the survivors
// so the working set stays deterministic.
func dedupe(candidates []models.HeritageObject) []models.HeritageObject {
	seen := make(map[uint]bool, len(candidates))
	out := make([]models.HeritageObject, 0, len(candidates))
	for _, obj := range candidates {
		if seen[obj.ID] {
			continue
		}
		seen[obj.ID] = true
		out = append(out, obj)
	}
	return out
}
