package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/noorjahan04/City-Backend/internal/model"
)

// SubCategoryRepository defines persistence operations for subcategories.
type SubCategoryRepository interface {
	Create(ctx context.Context, sub *model.SubCategory) error
	Update(ctx context.Context, sub *model.SubCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SubCategory, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.SubCategory, error)
}

type subCategoryRepository struct {
	db *gorm.DB
}

// NewSubCategoryRepository builds a GORM-backed repository.
func NewSubCategoryRepository(db *gorm.DB) SubCategoryRepository {
	return &subCategoryRepository{db: db}
}

func (r *subCategoryRepository) Create(ctx context.Context, sub *model.SubCategory) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *subCategoryRepository) Update(ctx context.Context, sub *model.SubCategory) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

func (r *subCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SubCategory{}, "id = ?", id).Error
}

func (r *subCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SubCategory, error) {
	var sub model.SubCategory
	if err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subCategoryRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.SubCategory, error) {
	var subs []model.SubCategory
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}
