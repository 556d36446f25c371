package services

import "errors"

var (
	// Validation failures, rejected before any lookup.
	ErrInvalidObjectsCount = errors.New("objects_count must be between 2 and 20")
	ErrInvalidCoordinate   = errors.New("start coordinate out of latitude/longitude bounds")

	// Not-found outcomes, surfaced as a clean 404 at the boundary.
	ErrNoObjectsNearby = errors.New("no heritage objects within the search radius")
	ErrRouteNotFound   = errors.New("route not found")
	ErrObjectNotFound  = errors.New("heritage object not found")

	// Dependency failures, retryable from the caller's point of view.
	ErrStoryUnavailable    = errors.New("story generation failed")
	ErrGeocoderUnavailable = errors.New("geocoder unavailable")
)
