package geo

import (
	"testing"

	"gorm.io/gorm"

	"heritage_routes/internal/models"
)

func testObject(id uint, lat, lon float64) models.HeritageObject {
	return models.HeritageObject{
		Model:     gorm.Model{ID: id},
		Name:      "object",
		Latitude:  lat,
		Longitude: lon,
	}
}

func TestFindNearestOrdering(t *testing.T) {
	idx := NewObjectIndex(DefaultPrecision)
	center := Coordinate{Lat: 55.7539, Lon: 37.6208}

	idx.Load([]models.HeritageObject{
		testObject(1, 55.7539, 37.6528), // ~2 km east
		testObject(2, 55.7584, 37.6208), // ~500 m north
		testObject(3, 55.7543, 37.6208), // ~50 m north
	})

	got := idx.FindNearest(center, 10, 5000)
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}

	wantOrder := []uint{3, 2, 1}
	for i, want := range wantOrder {
		if got[i].Object.ID != want {
			t.Errorf("position %d: got object %d, want %d", i, got[i].Object.ID, want)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].Distance < got[i-1].Distance {
			t.Errorf("distances not ascending at %d", i)
		}
	}
}

func TestFindNearestTieBreakByID(t *testing.T) {
	idx := NewObjectIndex(DefaultPrecision)
	center := Coordinate{Lat: 55.7539, Lon: 37.6208}

	// Same coordinate, so identical distances; ids decide the order.
	idx.Load([]models.HeritageObject{
		testObject(7, 55.7550, 37.6220),
		testObject(2, 55.7550, 37.6220),
		testObject(5, 55.7550, 37.6220),
	})

	got := idx.FindNearest(center, 10, 5000)
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
	for i, want := range []uint{2, 5, 7} {
		if got[i].Object.ID != want {
			t.Errorf("position %d: got object %d, want %d", i, got[i].Object.ID, want)
		}
	}
}

func TestFindNearestRadiusCap(t *testing.T) {
	idx := NewObjectIndex(DefaultPrecision)
	center := Coordinate{Lat: 55.7539, Lon: 37.6208}

	idx.Load([]models.HeritageObject{
		testObject(1, 55.7543, 37.6208), // ~50 m, inside
		testObject(2, 55.8439, 37.6208), // ~10 km, outside the 5 km cap
	})

	got := idx.FindNearest(center, 10, 5000)
	if len(got) != 1 || got[0].Object.ID != 1 {
		t.Fatalf("expected only object 1 inside the radius, got %v", got)
	}
}

func TestFindNearestMaxResults(t *testing.T) {
	idx := NewObjectIndex(DefaultPrecision)
	center := Coordinate{Lat: 55.7539, Lon: 37.6208}

	idx.Load([]models.HeritageObject{
		testObject(1, 55.7543, 37.6208),
		testObject(2, 55.7548, 37.6208),
		testObject(3, 55.7553, 37.6208),
	})

	got := idx.FindNearest(center, 2, 5000)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Object.ID != 1 || got[1].Object.ID != 2 {
		t.Errorf("wrong truncation: %v", got)
	}
}

func TestFindNearestEmpty(t *testing.T) {
	idx := NewObjectIndex(DefaultPrecision)
	idx.Load([]models.HeritageObject{
		testObject(1, 48.8566, 2.3522), // Paris, far outside any Moscow search
	})

	got := idx.FindNearest(Coordinate{Lat: 55.7539, Lon: 37.6208}, 10, 5000)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d candidates", len(got))
	}
	if idx.Count() != 1 {
		t.Errorf("Count() = %d, want 1", idx.Count())
	}
}

func TestFindNearestAcrossCellBoundary(t *testing.T) {
	idx := NewObjectIndex(DefaultPrecision)
	// Center near a cell edge; the neighbor ring has to pick up objects in
	// adjacent cells that are still inside the radius.
	center := Coordinate{Lat: 55.7539, Lon: 37.6208}
	east := Coordinate{Lat: 55.7539, Lon: 37.6800} // ~3.7 km east, likely a different cell

	idx.Load([]models.HeritageObject{
		testObject(1, east.Lat, east.Lon),
	})

	got := idx.FindNearest(center, 5, 5000)
	if len(got) != 1 {
		t.Fatalf("expected the cross-cell object to be found, got %d", len(got))
	}
	if got[0].Distance > 5000 {
		t.Errorf("distance %v exceeds the radius", got[0].Distance)
	}
}
