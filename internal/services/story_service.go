package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"heritage_routes/internal/models"
	"heritage_routes/internal/repository"
	"heritage_routes/internal/story"
)

// StoryService serves the per-object guide narrative through a two-tier
// cache: an optional Redis fast tier in front of the authoritative
// object_stories table. A miss on both tiers calls the generator once for
// this request; concurrent misses for the same object may each generate,
// and the upsert makes the last persisted writer win. Failures are never
// cached, so a later request retries generation.
type StoryService struct {
	objects   repository.ObjectRepository
	stories   repository.StoryRepository
	cache     *redis.Client // nil disables the fast tier
	generator story.Generator
}

func NewStoryService(objects repository.ObjectRepository, stories repository.StoryRepository, cache *redis.Client, generator story.Generator) *StoryService {
	return &StoryService{
		objects:   objects,
		stories:   stories,
		cache:     cache,
		generator: generator,
	}
}

func (s *StoryService) GetStory(ctx context.Context, objectID uint) (string, error) {
	obj, err := s.objects.GetByID(ctx, objectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrObjectNotFound
		}
		return "", err
	}

	source := s.generator.Source()
	key := storyKey(objectID, source)

	if s.cache != nil {
		text, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			return text, nil
		}
		if !errors.Is(err, redis.Nil) {
			// Fast tier trouble is not fatal, the persistent tier decides.
			logrus.WithError(err).WithField("object_id", objectID).Warn("story cache: redis get failed")
		}
	}

	cached, err := s.stories.Get(ctx, objectID, source)
	if err == nil {
		s.backfill(ctx, key, cached.Story)
		return cached.Story, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	text, err := s.generator.Generate(ctx, *obj)
	if err != nil {
		logrus.WithError(err).WithField("object_id", objectID).Error("story generation failed")
		return "", ErrStoryUnavailable
	}

	if err := s.stories.Upsert(ctx, &models.ObjectStory{
		ObjectID: objectID,
		Source:   source,
		Story:    text,
	}); err != nil {
		return "", err
	}
	s.backfill(ctx, key, text)

	return text, nil
}

// Entries are never evicted by this service; administrative purges happen
// outside it, so no TTL on the fast tier either.
func (s *StoryService) backfill(ctx context.Context, key, text string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, text, 0).Err(); err != nil {
		logrus.WithError(err).Warn("story cache: redis set failed")
	}
}

func storyKey(objectID uint, source string) string {
	return fmt.Sprintf("story:%d:%s", objectID, source)
}
