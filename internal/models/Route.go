package models

import (
	"gorm.io/gorm"
)

// Route is a built visiting sequence owned by a user. Immutable after
// creation except for the IsFavorite flag.
type Route struct {
	gorm.Model

	UserID        uint    `json:"user_id" gorm:"index"`
	StartLat      float64 `json:"start_lat"`
	StartLon      float64 `json:"start_lon"`
	StartAddress  string  `json:"start_address"`
	TotalDistance float64 `json:"total_distance"` // meters
	ObjectsCount  int     `json:"objects_count"`
	IsFavorite    bool    `json:"is_favorite"`

	// Walking path stored in PostGIS style as a LINESTRING (SRID 4326):
	// the start point followed by each visited object in order.
	Geometry []byte `gorm:"type:bytea" json:"-"`

	Legs []RouteLeg `gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"legs,omitempty"`
}
