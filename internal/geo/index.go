package geo

import (
	"math"
	"sort"
	"sync"

	"heritage_routes/internal/models"
)

// DefaultPrecision gives ~4.9 km x ~4.9 km cells at the equator, a good fit
// for the 5 km search radius the route engine uses.
const DefaultPrecision = 5

// Candidate pairs a heritage object with its distance from a search center.
type Candidate struct {
	Object   models.HeritageObject
	Distance float64 // meters
}

// ObjectIndex buckets heritage objects into geohash cells so that a
// proximity lookup only scans the cells intersecting the search radius.
// The reference set is read-mostly: Load replaces the whole index (startup,
// re-import), FindNearest takes a read lock and is safe for concurrent use.
type ObjectIndex struct {
	mu        sync.RWMutex
	precision int
	cells     map[string][]models.HeritageObject
	total     int
}

func NewObjectIndex(precision int) *ObjectIndex {
	if precision <= 0 {
		precision = DefaultPrecision
	}
	return &ObjectIndex{
		precision: precision,
		cells:     make(map[string][]models.HeritageObject),
	}
}

// Load replaces the index contents with the given objects.
func (idx *ObjectIndex) Load(objects []models.HeritageObject) {
	cells := make(map[string][]models.HeritageObject)
	for _, obj := range objects {
		h := Encode(obj.Latitude, obj.Longitude, idx.precision)
		cells[h] = append(cells[h], obj)
	}

	idx.mu.Lock()
	idx.cells = cells
	idx.total = len(objects)
	idx.mu.Unlock()
}

// Count returns the number of indexed objects.
func (idx *ObjectIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.total
}

// FindNearest returns up to maxResults objects within maxRadius meters of
// center, ascending by distance with ties broken by ascending object id.
// Returns an empty slice when nothing is in range. Read-only.
func (idx *ObjectIndex) FindNearest(center Coordinate, maxResults int, maxRadius float64) []Candidate {
	if maxResults <= 0 || maxRadius <= 0 {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	ns, ew := cellSizeMeters(idx.precision, center.Lat)
	stepsNS := int(math.Ceil(maxRadius / ns))
	stepsEW := int(math.Ceil(maxRadius / ew))

	centerHash := Encode(center.Lat, center.Lon, idx.precision)
	seen := make(map[string]bool)

	var candidates []Candidate
	for _, cell := range CellsWithin(centerHash, stepsNS, stepsEW) {
		if seen[cell] {
			continue
		}
		seen[cell] = true
		for _, obj := range idx.cells[cell] {
			d := Distance(center, Coordinate{Lat: obj.Latitude, Lon: obj.Longitude})
			if d <= maxRadius {
				candidates = append(candidates, Candidate{Object: obj, Distance: d})
			}
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Distance != candidates[j].Distance {
			return candidates[i].Distance < candidates[j].Distance
		}
		return candidates[i].Object.ID < candidates[j].Object.ID
	})

	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}
	return candidates
}
