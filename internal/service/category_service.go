package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperr "github.com/noorjahan04/City-Backend/internal/errors"
	"github.com/noorjahan04/City-Backend/internal/model"
	"github.com/noorjahan04/City-Backend/internal/repository"
)

// CategoryService is the category/subcategory registry. Category mutation is
// admin-only; subcategories belong to the creating employee's selected
// category and only the creator may mutate them.
type CategoryService interface {
	CreateCategory(ctx context.Context, actorID uuid.UUID, name, description string) (*model.Category, error)
	UpdateCategory(ctx context.Context, actorID, categoryID uuid.UUID, name, description string) (*model.Category, error)
	DeleteCategory(ctx context.Context, actorID, categoryID uuid.UUID) error
	ListCategories(ctx context.Context) ([]model.Category, error)

	CreateSubCategory(ctx context.Context, actorID uuid.UUID, name, description string) (*model.SubCategory, error)
	UpdateSubCategory(ctx context.Context, actorID, subCategoryID uuid.UUID, name, description string) (*model.SubCategory, error)
	DeleteSubCategory(ctx context.Context, actorID, subCategoryID uuid.UUID) error
	ListSubCategories(ctx context.Context, categoryID uuid.UUID) ([]model.SubCategory, error)
	ListSubCategoriesForEmployee(ctx context.Context, actorID uuid.UUID) ([]model.SubCategory, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	subRepo      repository.SubCategoryRepository
	userRepo     repository.UserRepository
}

// NewCategoryService creates the registry service.
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	subRepo repository.SubCategoryRepository,
	userRepo repository.UserRepository,
) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		subRepo:      subRepo,
		userRepo:     userRepo,
	}
}

func (s *categoryService) requireAdmin(ctx context.Context, actorID uuid.UUID) (*model.User, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "user not found")
		}
		return nil, err
	}
	if actor.Role != model.RoleAdmin {
		return nil, apperr.WithMessage(apperr.ErrForbidden, "access denied: not admin")
	}
	return actor, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, actorID uuid.UUID, name, description string) (*model.Category, error) {
	actor, err := s.requireAdmin(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperr.WithMessage(apperr.ErrInvalidInput, "category name is required")
	}
	if existing, err := s.categoryRepo.FindByName(ctx, name); err == nil && existing != nil {
		return nil, apperr.WithMessage(apperr.ErrConflict, "category already exists")
	}

	category := &model.Category{
		Name:        name,
		Description: description,
		CreatedByID: &actor.ID,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, actorID, categoryID uuid.UUID, name, description string) (*model.Category, error) {
	if _, err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "category not found")
		}
		return nil, err
	}

	if name != "" {
		category.Name = name
	}
	if description != "" {
		category.Description = description
	}
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category permanently. Categories are never
// soft-deleted.
func (s *categoryService) DeleteCategory(ctx context.Context, actorID, categoryID uuid.UUID) error {
	if _, err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}

	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.WithMessage(apperr.ErrNotFound, "category not found")
		}
		return err
	}
	return s.categoryRepo.Delete(ctx, categoryID)
}

func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}

// CreateSubCategory lets an employee refine their own category. Requires role
// employee and a selected category; the subcategory is bound to both.
func (s *categoryService) CreateSubCategory(ctx context.Context, actorID uuid.UUID, name, description string) (*model.SubCategory, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "user not found")
		}
		return nil, err
	}
	if actor.Role != model.RoleEmployee {
		return nil, apperr.WithMessage(apperr.ErrForbidden, "only employees can create subcategories")
	}
	if actor.SelectedCategoryID == nil {
		return nil, apperr.ErrNoCategorySelected
	}
	if name == "" {
		return nil, apperr.WithMessage(apperr.ErrInvalidInput, "subcategory name is required")
	}

	if _, err := s.categoryRepo.FindByID(ctx, *actor.SelectedCategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "selected category not found")
		}
		return nil, err
	}

	sub := &model.SubCategory{
		Name:        name,
		Description: description,
		CategoryID:  *actor.SelectedCategoryID,
		CreatedByID: actor.ID,
	}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *categoryService) UpdateSubCategory(ctx context.Context, actorID, subCategoryID uuid.UUID, name, description string) (*model.SubCategory, error) {
	sub, err := s.ownedSubCategory(ctx, actorID, subCategoryID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		sub.Name = name
	}
	if description != "" {
		sub.Description = description
	}
	if err := s.subRepo.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *categoryService) DeleteSubCategory(ctx context.Context, actorID, subCategoryID uuid.UUID) error {
	if _, err := s.ownedSubCategory(ctx, actorID, subCategoryID); err != nil {
		return err
	}
	return s.subRepo.Delete(ctx, subCategoryID)
}

// ownedSubCategory loads a subcategory and checks the actor created it.
func (s *categoryService) ownedSubCategory(ctx context.Context, actorID, subCategoryID uuid.UUID) (*model.SubCategory, error) {
	sub, err := s.subRepo.FindByID(ctx, subCategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "subcategory not found")
		}
		return nil, err
	}
	if sub.CreatedByID != actorID {
		return nil, apperr.WithMessage(apperr.ErrForbidden, "cannot modify a subcategory created by someone else")
	}
	return sub, nil
}

func (s *categoryService) ListSubCategories(ctx context.Context, categoryID uuid.UUID) ([]model.SubCategory, error) {
	return s.subRepo.ListByCategory(ctx, categoryID)
}

func (s *categoryService) ListSubCategoriesForEmployee(ctx context.Context, actorID uuid.UUID) ([]model.SubCategory, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "user not found")
		}
		return nil, err
	}
	if actor.SelectedCategoryID == nil {
		return nil, apperr.ErrNoCategorySelected
	}
	return s.subRepo.ListByCategory(ctx, *actor.SelectedCategoryID)
}
