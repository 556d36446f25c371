// Package repository defines the persistence boundary of the route engine.
// Production implementations live in gormdb (Postgres via gorm); the memory
// package provides in-process implementations used by tests.
package repository

import (
	"context"
	"errors"

	"heritage_routes/internal/models"
)

// ErrNotFound is returned when a record does not exist or is not visible to
// the requesting user. Implementations must not distinguish the two cases.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique constraint (username, email)
// rejects an insert.
var ErrDuplicate = errors.New("record already exists")

// ObjectFilter narrows and pages heritage-object listings.
type ObjectFilter struct {
	District   string
	ObjectType string
	Search     string // matches name or address
	Page       int
	PageSize   int
}

// ObjectTypeCount pairs a distinct object type with how many objects
// carry it.
type ObjectTypeCount struct {
	ObjectType string `json:"object_type"`
	Count      int64  `json:"count"`
}

type ObjectRepository interface {
	// List returns one page of objects plus the total match count.
	List(ctx context.Context, filter ObjectFilter) ([]models.HeritageObject, int64, error)
	GetByID(ctx context.Context, id uint) (*models.HeritageObject, error)
	// All streams the full reference set, used to build the spatial index.
	All(ctx context.Context) ([]models.HeritageObject, error)
	// Districts returns the distinct non-empty districts, ascending.
	Districts(ctx context.Context) ([]string, error)
	// ObjectTypes returns the distinct non-empty object types with their
	// object counts, most common first.
	ObjectTypes(ctx context.Context) ([]ObjectTypeCount, error)
}

type RouteRepository interface {
	// Save persists the route header and its legs atomically: either the
	// whole route is recorded or nothing is. Fills in generated ids.
	Save(ctx context.Context, route *models.Route) error
	// GetByID returns the route with its ordered legs, or ErrNotFound when
	// it does not exist or belongs to another user.
	GetByID(ctx context.Context, routeID, userID uint) (*models.Route, error)
	// ListByUser returns the user's route headers, most recent first.
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.Route, error)
	// SetFavorite updates the favorite flag, last write wins. Idempotent;
	// ErrNotFound when the route is missing or owned by someone else.
	SetFavorite(ctx context.Context, routeID, userID uint, value bool) (*models.Route, error)
}

type StoryRepository interface {
	// Get returns the cached story for an object and source key, or
	// ErrNotFound on a cache miss.
	Get(ctx context.Context, objectID uint, source string) (*models.ObjectStory, error)
	// Upsert writes the story, overwriting any previous entry for the
	// object id. Last writer wins.
	Upsert(ctx context.Context, story *models.ObjectStory) error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	TouchLastLogin(ctx context.Context, id uint) error
}
