package services

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"

	geopkg "heritage_routes/internal/geo"
	"heritage_routes/internal/models"
	"heritage_routes/internal/planner"
	"heritage_routes/internal/repository"
)

// Locator finds candidate objects near a coordinate, nearest first.
// Satisfied by geo.ObjectIndex.
type Locator interface {
	FindNearest(center geopkg.Coordinate, maxResults int, maxRadius float64) []geopkg.Candidate
}

// RouteConfig carries the request-level limits enforced by the engine.
type RouteConfig struct {
	SearchRadiusMeters float64
	MaxObjects         int
	DefaultObjects     int
}

// RouteService wires the candidate locator, the greedy builder and the
// route store into the build/recall operations the handlers expose.
type RouteService struct {
	locator Locator
	routes  repository.RouteRepository
	cfg     RouteConfig
}

func NewRouteService(locator Locator, routes repository.RouteRepository, cfg RouteConfig) *RouteService {
	return &RouteService{locator: locator, routes: routes, cfg: cfg}
}

type BuildRequest struct {
	Start        geopkg.Coordinate
	StartAddress string
	ObjectsCount int // 0 means the configured default
}

// BuildResult reports the persisted route plus whether the engine had to
// settle for fewer objects than requested.
type BuildResult struct {
	Route     *models.Route
	Requested int
	Partial   bool
}

func (s *RouteService) BuildRoute(ctx context.Context, userID uint, req BuildRequest) (*BuildResult, error) {
	count := req.ObjectsCount
	if count == 0 {
		count = s.cfg.DefaultObjects
	}
	if count < 2 || count > s.cfg.MaxObjects {
		return nil, ErrInvalidObjectsCount
	}
	if !req.Start.Valid() {
		return nil, ErrInvalidCoordinate
	}

	// The route visits the count closest objects; only their order is up
	// to the greedy walk.
	candidates := s.locator.FindNearest(req.Start, count, s.cfg.SearchRadiusMeters)
	if len(candidates) == 0 {
		return nil, ErrNoObjectsNearby
	}

	objects := make([]models.HeritageObject, len(candidates))
	for i, c := range candidates {
		objects[i] = c.Object
	}

	legs := planner.Build(req.Start, count, objects)

	geometry, err := routeGeometry(req.Start, legs)
	if err != nil {
		logrus.WithError(err).Warn("BuildRoute: could not encode route geometry")
		geometry = nil
	}

	route := &models.Route{
		UserID:        userID,
		StartLat:      req.Start.Lat,
		StartLon:      req.Start.Lon,
		StartAddress:  req.StartAddress,
		TotalDistance: planner.TotalDistance(legs),
		ObjectsCount:  len(legs),
		Geometry:      geometry,
		Legs:          toRouteLegs(legs),
	}

	if err := s.routes.Save(ctx, route); err != nil {
		return nil, err
	}

	return &BuildResult{
		Route:     route,
		Requested: count,
		Partial:   len(legs) < count,
	}, nil
}

func (s *RouteService) GetRoute(ctx context.Context, routeID, userID uint) (*models.Route, error) {
	route, err := s.routes.GetByID(ctx, routeID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	return route, nil
}

func (s *RouteService) ListRoutes(ctx context.Context, userID uint, limit int) ([]models.Route, error) {
	return s.routes.ListByUser(ctx, userID, limit)
}

func (s *RouteService) SetFavorite(ctx context.Context, routeID, userID uint, value bool) (*models.Route, error) {
	route, err := s.routes.SetFavorite(ctx, routeID, userID, value)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	return route, nil
}

func toRouteLegs(legs []planner.Leg) []models.RouteLeg {
	out := make([]models.RouteLeg, len(legs))
	for i, leg := range legs {
		out[i] = models.RouteLeg{
			ObjectID:             leg.Object.ID,
			Seq:                  leg.Seq,
			DistanceFromPrevious: leg.DistanceFromPrevious,
			Object:               leg.Object,
		}
	}
	return out
}

// routeGeometry encodes the walking path (start point plus each visited
// object) as WKB LINESTRING bytes for the geometry column.
func routeGeometry(start geopkg.Coordinate, legs []planner.Leg) ([]byte, error) {
	coords := make([]geom.Coord, 0, len(legs)+1)
	coords = append(coords, geom.Coord{start.Lon, start.Lat})
	for _, leg := range legs {
		coords = append(coords, geom.Coord{leg.Object.Longitude, leg.Object.Latitude})
	}

	line := geom.NewLineString(geom.XY)
	if _, err := line.SetCoords(coords); err != nil {
		return nil, err
	}
	return wkb.Marshal(line, binary.LittleEndian)
}
