package models

import (
	"gorm.io/gorm"
)

// HeritageObject is a protected cultural-heritage site. Rows are reference
// data loaded by cmd/import and never mutated by the route engine.
type HeritageObject struct {
	gorm.Model

	GlobalID       int64   `json:"global_id" gorm:"uniqueIndex"`
	Name           string  `json:"name" binding:"required"`
	Address        string  `json:"address"`
	District       string  `json:"district" gorm:"index"`
	AdmArea        string  `json:"adm_area"`
	ObjectType     string  `json:"object_type" gorm:"index"`
	Category       string  `json:"category"`
	SecurityStatus string  `json:"security_status"`
	Description    string  `json:"description" gorm:"type:text"`
	BuildYear      string  `json:"build_year"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
}
