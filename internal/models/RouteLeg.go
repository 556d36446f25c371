package models

import (
	"gorm.io/gorm"
)

// RouteLeg is one step of a route. Seq is 1-based and contiguous within a
// route; DistanceFromPrevious for the first leg is measured from the
// route's start point.
type RouteLeg struct {
	gorm.Model

	RouteID              uint    `json:"route_id" gorm:"index;uniqueIndex:idx_route_seq,priority:1;uniqueIndex:idx_route_object,priority:1"`
	ObjectID             uint    `json:"object_id" gorm:"uniqueIndex:idx_route_object,priority:2"`
	Seq                  int     `json:"sequence_number" gorm:"uniqueIndex:idx_route_seq,priority:2"`
	DistanceFromPrevious float64 `json:"distance_from_previous"` // meters

	Object HeritageObject `gorm:"foreignKey:ObjectID" json:"object"`
}
