package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"

	"heritage_routes/internal/geo"
	"heritage_routes/internal/middleware"
	"heritage_routes/internal/models"
	"heritage_routes/internal/services"
)

type RouteController struct {
	routes *services.RouteService
}

func NewRouteController(routes *services.RouteService) *RouteController {
	return &RouteController{routes: routes}
}

type locationInput struct {
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
}

type buildRouteInput struct {
	StartLocation locationInput `json:"start_location" binding:"required"`
	StartAddress  string        `json:"start_address"`
	ObjectsCount  int           `json:"objects_count" binding:"omitempty,gte=2,lte=20"`
}

// legResponse mirrors models.RouteLeg for API output.
type legResponse struct {
	SequenceNumber       int                   `json:"sequence_number"`
	DistanceFromPrevious float64               `json:"distance_from_previous"`
	Object               models.HeritageObject `json:"object"`
}

// routeResponse mirrors models.Route but carries Geometry as a GeoJSON
// string for JSON output.
type routeResponse struct {
	ID            uint          `json:"id"`
	CreatedAt     time.Time     `json:"created_at"`
	StartLat      float64       `json:"start_latitude"`
	StartLon      float64       `json:"start_longitude"`
	StartAddress  string        `json:"start_address,omitempty"`
	TotalDistance float64       `json:"total_distance"`
	ObjectsCount  int           `json:"objects_count"`
	IsFavorite    bool          `json:"is_favorite"`
	Geometry      string        `json:"geometry,omitempty"`
	Legs          []legResponse `json:"legs,omitempty"`
}

func toRouteResponse(route *models.Route) routeResponse {
	jsonGeom, err := convertWKBToGeoJSON(route.Geometry)
	if err != nil {
		logrus.WithError(err).WithField("route_id", route.ID).Warn("could not convert route geometry")
	}

	resp := routeResponse{
		ID:            route.ID,
		CreatedAt:     route.CreatedAt,
		StartLat:      route.StartLat,
		StartLon:      route.StartLon,
		StartAddress:  route.StartAddress,
		TotalDistance: route.TotalDistance,
		ObjectsCount:  route.ObjectsCount,
		IsFavorite:    route.IsFavorite,
		Geometry:      jsonGeom,
	}
	for _, leg := range route.Legs {
		resp.Legs = append(resp.Legs, legResponse{
			SequenceNumber:       leg.Seq,
			DistanceFromPrevious: leg.DistanceFromPrevious,
			Object:               leg.Object,
		})
	}
	return resp
}

// convertWKBToGeoJSON converts WKB bytes into a GeoJSON string.
func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CreateRoute builds a route from the start point and persists it.
func (rc *RouteController) CreateRoute(c *gin.Context) {
	var input buildRouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	userID := middleware.UserID(c)
	result, err := rc.routes.BuildRoute(c.Request.Context(), userID, services.BuildRequest{
		Start:        geo.Coordinate{Lat: *input.StartLocation.Latitude, Lon: *input.StartLocation.Longitude},
		StartAddress: input.StartAddress,
		ObjectsCount: input.ObjectsCount,
	})
	if err != nil {
		rc.renderError(c, err, "CreateRoute")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"route":           toRouteResponse(result.Route),
		"requested_count": result.Requested,
		"partial":         result.Partial,
	})
}

// ListRoutes returns the authenticated user's route history, newest first.
func (rc *RouteController) ListRoutes(c *gin.Context) {
	userID := middleware.UserID(c)

	routes, err := rc.routes.ListRoutes(c.Request.Context(), userID, 50)
	if err != nil {
		rc.renderError(c, err, "ListRoutes")
		return
	}

	summaries := make([]routeResponse, 0, len(routes))
	for i := range routes {
		summaries = append(summaries, toRouteResponse(&routes[i]))
	}
	c.JSON(http.StatusOK, gin.H{"routes": summaries, "total": len(summaries)})
}

// GetRoute returns a single route with its ordered legs.
func (rc *RouteController) GetRoute(c *gin.Context) {
	userID := middleware.UserID(c)
	routeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	route, err := rc.routes.GetRoute(c.Request.Context(), uint(routeID), userID)
	if err != nil {
		rc.renderError(c, err, "GetRoute")
		return
	}

	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(route)})
}

// SetFavorite flips the favorite flag; repeating the same value is a no-op
// that still succeeds.
func (rc *RouteController) SetFavorite(c *gin.Context) {
	userID := middleware.UserID(c)
	routeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var input struct {
		IsFavorite *bool `json:"is_favorite" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, err := rc.routes.SetFavorite(c.Request.Context(), uint(routeID), userID, *input.IsFavorite)
	if err != nil {
		rc.renderError(c, err, "SetFavorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(route)})
}

func (rc *RouteController) renderError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, services.ErrInvalidObjectsCount),
		errors.Is(err, services.ErrInvalidCoordinate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNoObjectsNearby):
		c.JSON(http.StatusNotFound, gin.H{"error": "no heritage objects found within the search radius"})
	case errors.Is(err, services.ErrRouteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	default:
		logrus.WithError(err).WithField("request_id", c.GetString("request_id")).Error(op + ": internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again"})
	}
}
