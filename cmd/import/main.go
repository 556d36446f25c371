package main

import (
	"encoding/json"
	"flag"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm/clause"

	"heritage_routes/internal/config"
	"heritage_routes/internal/logger"
	"heritage_routes/internal/models"
)

// rawObject mirrors one entry of the Moscow open-data heritage dump. The
// geometry is a polygon (possibly with holes); its centroid becomes the
// object's point location.
type rawObject struct {
	GlobalID        int64  `json:"global_id"`
	ObjectName      string `json:"ObjectName"`
	ObjectNameOnDoc string `json:"ObjectNameOnDoc"`
	Addresses       string `json:"Addresses"`
	District        string `json:"District"`
	AdmArea         string `json:"AdmArea"`
	ObjectType      string `json:"ObjectType"`
	Category        string `json:"Category"`
	SecurityStatus  string `json:"SecurityStatus"`
	EnsembleName    string `json:"EnsembleName"`
	EnsembleOnDoc   string `json:"EnsembleNameOnDoc"`
	GeoData         struct {
		Coordinates json.RawMessage `json:"coordinates"`
	} `json:"geoData"`
}

func main() {
	logger.Setup()

	dataFile := flag.String("file", "heritage_objects.json", "path to the open-data JSON dump")
	batchSize := flag.Int("batch", 500, "insert batch size")
	flag.Parse()

	cfg := config.Load()
	db, err := config.OpenDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("database initialization failed")
	}

	raw, err := os.ReadFile(*dataFile)
	if err != nil {
		logrus.WithError(err).Fatal("could not read data file")
	}

	var entries []rawObject
	if err := json.Unmarshal(raw, &entries); err != nil {
		logrus.WithError(err).Fatal("could not parse data file")
	}
	logrus.WithField("entries", len(entries)).Info("data file loaded")

	objects := make([]models.HeritageObject, 0, len(entries))
	skipped := 0
	for i := range entries {
		obj, ok := processEntry(&entries[i])
		if !ok {
			skipped++
			continue
		}
		objects = append(objects, obj)
	}
	logrus.WithFields(logrus.Fields{"usable": len(objects), "skipped": skipped}).Info("entries processed")

	if len(objects) == 0 {
		logrus.Fatal("no usable objects in data file")
	}

	// Re-running the importer refreshes attributes of known objects
	// instead of duplicating them.
	res := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "global_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "address", "district", "adm_area", "object_type",
			"category", "security_status", "description", "updated_at",
		}),
	}).CreateInBatches(objects, *batchSize)
	if res.Error != nil {
		logrus.WithError(res.Error).Fatal("import failed")
	}

	logrus.WithField("imported", len(objects)).Info("import complete")
}

func processEntry(e *rawObject) (models.HeritageObject, bool) {
	name := cleanText(firstNonEmpty(e.ObjectNameOnDoc, e.ObjectName))
	if name == "" {
		return models.HeritageObject{}, false
	}

	lon, lat, ok := centroid(e.GeoData.Coordinates)
	if !ok {
		return models.HeritageObject{}, false
	}
	// The dataset occasionally carries garbage geometry; anything outside
	// the Moscow bounding box is dropped.
	if lon < 37.0 || lon > 38.0 || lat < 55.0 || lat > 56.0 {
		return models.HeritageObject{}, false
	}

	return models.HeritageObject{
		GlobalID:       e.GlobalID,
		Name:           truncate(name, 500),
		Address:        truncate(cleanText(e.Addresses), 500),
		District:       truncate(cleanText(e.District), 200),
		AdmArea:        truncate(cleanText(e.AdmArea), 200),
		ObjectType:     truncate(cleanText(e.ObjectType), 200),
		Category:       truncate(cleanText(e.Category), 200),
		SecurityStatus: truncate(cleanText(e.SecurityStatus), 200),
		Description:    cleanText(firstNonEmpty(e.EnsembleOnDoc, e.EnsembleName)),
		Latitude:       lat,
		Longitude:      lon,
	}, true
}

// centroid averages the vertices of the outer ring. The raw coordinates are
// either a ring [[lon,lat],...] or a polygon [[[lon,lat],...],...]; only the
// first ring of a polygon counts.
func centroid(raw json.RawMessage) (lon, lat float64, ok bool) {
	if len(raw) == 0 {
		return 0, 0, false
	}

	var ring [][]float64
	if err := json.Unmarshal(raw, &ring); err != nil {
		var poly [][][]float64
		if err := json.Unmarshal(raw, &poly); err != nil || len(poly) == 0 {
			return 0, 0, false
		}
		ring = poly[0]
	}

	count := 0
	for _, pt := range ring {
		if len(pt) < 2 {
			continue
		}
		lon += pt[0]
		lat += pt[1]
		count++
	}
	if count == 0 {
		return 0, 0, false
	}
	return lon / float64(count), lat / float64(count), true
}

func cleanText(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\x00", "")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
