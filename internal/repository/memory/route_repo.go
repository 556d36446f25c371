// Package memory holds in-process repository implementations mirroring the
// gormdb semantics. The service and handler tests run against these.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"heritage_routes/internal/models"
	"heritage_routes/internal/repository"
)

type RouteRepository struct {
	mu     sync.RWMutex
	routes map[uint]*models.Route
	nextID uint
}

func NewRouteRepository() *RouteRepository {
	return &RouteRepository{
		routes: make(map[uint]*models.Route),
		nextID: 1,
	}
}

func (r *RouteRepository) Save(ctx context.Context, route *models.Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	route.ID = r.nextID
	r.nextID++
	if route.CreatedAt.IsZero() {
		route.CreatedAt = time.Now()
	}
	for i := range route.Legs {
		route.Legs[i].RouteID = route.ID
		route.Legs[i].ID = uint(i + 1)
	}

	stored := *route
	stored.Legs = append([]models.RouteLeg(nil), route.Legs...)
	r.routes[route.ID] = &stored
	return nil
}

func (r *RouteRepository) GetByID(ctx context.Context, routeID, userID uint) (*models.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	route, exists := r.routes[routeID]
	if !exists || route.UserID != userID {
		return nil, repository.ErrNotFound
	}

	out := *route
	out.Legs = append([]models.RouteLeg(nil), route.Legs...)
	sort.Slice(out.Legs, func(i, j int) bool { return out.Legs[i].Seq < out.Legs[j].Seq })
	return &out, nil
}

func (r *RouteRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var routes []models.Route
	for _, route := range r.routes {
		if route.UserID != userID {
			continue
		}
		header := *route
		header.Legs = nil
		routes = append(routes, header)
	}

	sort.Slice(routes, func(i, j int) bool {
		if !routes[i].CreatedAt.Equal(routes[j].CreatedAt) {
			return routes[i].CreatedAt.After(routes[j].CreatedAt)
		}
		return routes[i].ID > routes[j].ID
	})

	if limit > 0 && len(routes) > limit {
		routes = routes[:limit]
	}
	return routes, nil
}

func (r *RouteRepository) SetFavorite(ctx context.Context, routeID, userID uint, value bool) (*models.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	route, exists := r.routes[routeID]
	if !exists || route.UserID != userID {
		return nil, repository.ErrNotFound
	}

	route.IsFavorite = value
	out := *route
	out.Legs = nil
	return &out, nil
}
