package gormdb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"heritage_routes/internal/models"
	"heritage_routes/internal/repository"
)

// ObjectRepository reads the heritage-object reference data.
type ObjectRepository struct {
	db *gorm.DB
}

func NewObjectRepository(db *gorm.DB) *ObjectRepository {
	return &ObjectRepository{db: db}
}

func (r *ObjectRepository) List(ctx context.Context, filter repository.ObjectFilter) ([]models.HeritageObject, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.HeritageObject{})

	if filter.District != "" {
		q = q.Where("district = ?", filter.District)
	}
	if filter.ObjectType != "" {
		q = q.Where("object_type = ?", filter.ObjectType)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("name ILIKE ? OR address ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var objects []models.HeritageObject
	err := q.Order("id ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&objects).Error
	if err != nil {
		return nil, 0, err
	}
	return objects, total, nil
}

func (r *ObjectRepository) GetByID(ctx context.Context, id uint) (*models.HeritageObject, error) {
	var obj models.HeritageObject
	if err := r.db.WithContext(ctx).First(&obj, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &obj, nil
}

func (r *ObjectRepository) All(ctx context.Context) ([]models.HeritageObject, error) {
	var objects []models.HeritageObject
	if err := r.db.WithContext(ctx).Find(&objects).Error; err != nil {
		return nil, err
	}
	return objects, nil
}

func (r *ObjectRepository) Districts(ctx context.Context) ([]string, error) {
	var districts []string
	err := r.db.WithContext(ctx).
		Model(&models.HeritageObject{}).
		Distinct().
		Where("district <> ''").
		Order("district ASC").
		Pluck("district", &districts).Error
	if err != nil {
		return nil, err
	}
	return districts, nil
}

func (r *ObjectRepository) ObjectTypes(ctx context.Context) ([]repository.ObjectTypeCount, error) {
	var types []repository.ObjectTypeCount
	err := r.db.WithContext(ctx).
		Model(&models.HeritageObject{}).
		Select("object_type, COUNT(*) AS count").
		Where("object_type <> ''").
		Group("object_type").
		Order("count DESC").
		Scan(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}
