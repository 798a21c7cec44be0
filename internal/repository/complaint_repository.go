package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/noorjahan04/City-Backend/internal/model"
)

// ComplaintRepository defines persistence operations for complaints.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *model.Complaint) error
	Update(ctx context.Context, complaint *model.Complaint) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Complaint, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Complaint, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Complaint, error)
}

type complaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository builds a GORM-backed repository.
func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *model.Complaint) error {
	return r.db.WithContext(ctx).Create(complaint).Error
}

func (r *complaintRepository) Update(ctx context.Context, complaint *model.Complaint) error {
	return r.db.WithContext(ctx).Save(complaint).Error
}

func (r *complaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Complaint, error) {
	var complaint model.Complaint
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		Preload("SubCategory").
		Preload("AssignedEmployee").
		First(&complaint, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Complaint, error) {
	var complaints []model.Complaint
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("SubCategory").
		Preload("AssignedEmployee").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&complaints).Error
	if err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *complaintRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Complaint, error) {
	var complaints []model.Complaint
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("SubCategory").
		Preload("AssignedEmployee").
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Find(&complaints).Error
	if err != nil {
		return nil, err
	}
	return complaints, nil
}
