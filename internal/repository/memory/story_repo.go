package memory

import (
	"context"
	"sync"
	"time"

	"heritage_routes/internal/models"
	"heritage_routes/internal/repository"
)

type StoryRepository struct {
	mu      sync.RWMutex
	stories map[uint]models.ObjectStory
}

func NewStoryRepository() *StoryRepository {
	return &StoryRepository{stories: make(map[uint]models.ObjectStory)}
}

func (r *StoryRepository) Get(ctx context.Context, objectID uint, source string) (*models.ObjectStory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	story, exists := r.stories[objectID]
	if !exists || story.Source != source {
		return nil, repository.ErrNotFound
	}
	return &story, nil
}

func (r *StoryRepository) Upsert(ctx context.Context, story *models.ObjectStory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	stored := *story
	if prev, exists := r.stories[story.ObjectID]; exists {
		stored.CreatedAt = prev.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.stories[story.ObjectID] = stored
	return nil
}
