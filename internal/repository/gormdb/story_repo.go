package gormdb

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"heritage_routes/internal/models"
	"heritage_routes/internal/repository"
)

// StoryRepository is the authoritative tier of the story cache.
type StoryRepository struct {
	db *gorm.DB
}

func NewStoryRepository(db *gorm.DB) *StoryRepository {
	return &StoryRepository{db: db}
}

func (r *StoryRepository) Get(ctx context.Context, objectID uint, source string) (*models.ObjectStory, error) {
	var story models.ObjectStory
	err := r.db.WithContext(ctx).
		Where("object_id = ? AND source = ?", objectID, source).
		First(&story).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &story, nil
}

// Upsert keeps at most one story per object: a concurrent regeneration for
// the same object id resolves to last writer wins.
func (r *StoryRepository) Upsert(ctx context.Context, story *models.ObjectStory) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "object_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"source", "story", "updated_at"}),
		}).
		Create(story).Error
}
