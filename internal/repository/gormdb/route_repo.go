package gormdb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"heritage_routes/internal/models"
	"heritage_routes/internal/repository"
)

// RouteRepository persists routes and their legs in Postgres.
type RouteRepository struct {
	db *gorm.DB
}

func NewRouteRepository(db *gorm.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

// Save writes the header and all legs inside one transaction. A failure on
// any leg (including the unique route/object constraint) rolls the whole
// route back, so a partial route is never visible.
func (r *RouteRepository) Save(ctx context.Context, route *models.Route) error {
	legs := route.Legs
	route.Legs = nil

	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Create(route).Error; err != nil {
		tx.Rollback()
		return err
	}

	for i := range legs {
		legs[i].RouteID = route.ID
		// Reference data is not re-inserted alongside the leg.
		leg := legs[i]
		leg.Object = models.HeritageObject{}
		if err := tx.Create(&leg).Error; err != nil {
			tx.Rollback()
			return err
		}
		legs[i].ID = leg.ID
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	route.Legs = legs
	return nil
}

func (r *RouteRepository) GetByID(ctx context.Context, routeID, userID uint) (*models.Route, error) {
	var route models.Route
	err := r.db.WithContext(ctx).
		Preload("Legs", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Preload("Legs.Object").
		Where("id = ? AND user_id = ?", routeID, userID).
		First(&route).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &route, nil
}

func (r *RouteRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.Route, error) {
	var routes []models.Route
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *RouteRepository) SetFavorite(ctx context.Context, routeID, userID uint, value bool) (*models.Route, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Route{}).
		Where("id = ? AND user_id = ?", routeID, userID).
		Update("is_favorite", value)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Either the route does not exist, belongs to someone else, or the
		// flag already has the requested value. Disambiguate by reloading:
		// an idempotent no-op must still succeed.
		return r.GetByID(ctx, routeID, userID)
	}

	var route models.Route
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", routeID, userID).First(&route).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &route, nil
}
