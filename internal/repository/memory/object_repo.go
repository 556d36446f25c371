package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"heritage_routes/internal/models"
	"heritage_routes/internal/repository"
)

type ObjectRepository struct {
	mu      sync.RWMutex
	objects map[uint]models.HeritageObject
}

func NewObjectRepository(objects ...models.HeritageObject) *ObjectRepository {
	repo := &ObjectRepository{objects: make(map[uint]models.HeritageObject)}
	for _, obj := range objects {
		repo.objects[obj.ID] = obj
	}
	return repo
}

func (r *ObjectRepository) Put(obj models.HeritageObject) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.objects[obj.ID] = obj
}

func (r *ObjectRepository) List(ctx context.Context, filter repository.ObjectFilter) ([]models.HeritageObject, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.HeritageObject
	for _, obj := range r.objects {
		if filter.District != "" && obj.District != filter.District {
			continue
		}
		if filter.ObjectType != "" && obj.ObjectType != filter.ObjectType {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(obj.Name), needle) &&
				!strings.Contains(strings.ToLower(obj.Address), needle) {
				continue
			}
		}
		matched = append(matched, obj)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	start := (page - 1) * pageSize
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *ObjectRepository) GetByID(ctx context.Context, id uint) (*models.HeritageObject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	obj, exists := r.objects[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return &obj, nil
}

func (r *ObjectRepository) Districts(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var districts []string
	for _, obj := range r.objects {
		if obj.District == "" || seen[obj.District] {
			continue
		}
		seen[obj.District] = true
		districts = append(districts, obj.District)
	}
	sort.Strings(districts)
	return districts, nil
}

func (r *ObjectRepository) ObjectTypes(ctx context.Context) ([]repository.ObjectTypeCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int64)
	for _, obj := range r.objects {
		if obj.ObjectType != "" {
			counts[obj.ObjectType]++
		}
	}

	types := make([]repository.ObjectTypeCount, 0, len(counts))
	for name, count := range counts {
		types = append(types, repository.ObjectTypeCount{ObjectType: name, Count: count})
	}
	sort.Slice(types, func(i, j int) bool {
		if types[i].Count != types[j].Count {
			return types[i].Count > types[j].Count
		}
		return types[i].ObjectType < types[j].ObjectType
	})
	return types, nil
}

func (r *ObjectRepository) All(ctx context.Context) ([]models.HeritageObject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	objects := make([]models.HeritageObject, 0, len(r.objects))
	for _, obj := range r.objects {
		objects = append(objects, obj)
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].ID < objects[j].ID })
	return objects, nil
}
