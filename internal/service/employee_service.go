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

// Dashboard is the employee landing payload. Approval gating is
// informational: an unapproved employee still authenticates and works, the
// dashboard just says so.
type Dashboard struct {
	User     *model.User `json:"user"`
	Approved bool        `json:"approved"`
	Message  string      `json:"message"`
}

// EmployeeService covers the employee-side category choice and the
// category-scoped sub-employee approval gate.
type EmployeeService interface {
	ChooseCategory(ctx context.Context, employeeID, categoryID uuid.UUID) (*model.Category, error)
	GetDashboard(ctx context.Context, employeeID uuid.UUID) (*Dashboard, error)
	ListSubEmployees(ctx context.Context, employeeID uuid.UUID) ([]model.User, error)
	ApproveSubEmployee(ctx context.Context, employeeID, subEmployeeID uuid.UUID) (*model.User, error)
	DisapproveSubEmployee(ctx context.Context, employeeID, subEmployeeID uuid.UUID) (*model.User, error)
	RejectSubEmployee(ctx context.Context, employeeID, subEmployeeID uuid.UUID) error
}

type employeeService struct {
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
}

// NewEmployeeService creates the employee service.
func NewEmployeeService(userRepo repository.UserRepository, categoryRepo repository.CategoryRepository) EmployeeService {
	return &employeeService{userRepo: userRepo, categoryRepo: categoryRepo}
}

// ChooseCategory binds the employee to a category. Last write wins; there is
// no lock against re-selection.
func (s *employeeService) ChooseCategory(ctx context.Context, employeeID, categoryID uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "category not found")
		}
		return nil, err
	}

	employee, err := s.userRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "user not found")
		}
		return nil, err
	}
	if employee.Role != model.RoleEmployee && employee.Role != model.RoleSubEmployee {
		return nil, apperr.WithMessage(apperr.ErrInvalidRole, "only employees select a category")
	}

	employee.SelectedCategoryID = &category.ID
	if err := s.userRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *employeeService) GetDashboard(ctx context.Context, employeeID uuid.UUID) (*Dashboard, error) {
	employee, err := s.userRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "user not found")
		}
		return nil, err
	}

	message := "Admin has not approved your registration yet"
	if employee.IsApproved {
		message = "User is approved"
	}
	return &Dashboard{
		User:     employee,
		Approved: employee.IsApproved,
		Message:  message,
	}, nil
}

// ListSubEmployees returns sub-employees sharing the employee's category.
func (s *employeeService) ListSubEmployees(ctx context.Context, employeeID uuid.UUID) ([]model.User, error) {
	employee, err := s.userRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "user not found")
		}
		return nil, err
	}
	if employee.SelectedCategoryID == nil {
		return nil, apperr.ErrNoCategorySelected
	}
	return s.userRepo.ListByRoleAndCategory(ctx, model.RoleSubEmployee, *employee.SelectedCategoryID)
}

// sameCategorySubEmployee loads a sub-employee and verifies category-scoped
// authority: an employee may only act on sub-employees of their own category.
func (s *employeeService) sameCategorySubEmployee(ctx context.Context, employeeID, subEmployeeID uuid.UUID) (*model.User, error) {
	employee, err := s.userRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "user not found")
		}
		return nil, err
	}

	subEmp, err := s.userRepo.FindByID(ctx, subEmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "sub-employee not found")
		}
		return nil, err
	}
	if subEmp.Role != model.RoleSubEmployee {
		return nil, apperr.WithMessage(apperr.ErrNotFound, "sub-employee not found")
	}

	if employee.SelectedCategoryID == nil || subEmp.SelectedCategoryID == nil ||
		*employee.SelectedCategoryID != *subEmp.SelectedCategoryID {
		return nil, apperr.WithMessage(apperr.ErrForbidden, "cannot manage a sub-employee outside your category")
	}
	return subEmp, nil
}

func (s *employeeService) ApproveSubEmployee(ctx context.Context, employeeID, subEmployeeID uuid.UUID) (*model.User, error) {
	return s.setSubEmployeeApproval(ctx, employeeID, subEmployeeID, true)
}

func (s *employeeService) DisapproveSubEmployee(ctx context.Context, employeeID, subEmployeeID uuid.UUID) (*model.User, error) {
	return s.setSubEmployeeApproval(ctx, employeeID, subEmployeeID, false)
}

func (s *employeeService) setSubEmployeeApproval(ctx context.Context, employeeID, subEmployeeID uuid.UUID, approved bool) (*model.User, error) {
	subEmp, err := s.sameCategorySubEmployee(ctx, employeeID, subEmployeeID)
	if err != nil {
		return nil, err
	}

	subEmp.IsApproved = approved
	if err := s.userRepo.Update(ctx, subEmp); err != nil {
		return nil, err
	}
	return subEmp, nil
}

// RejectSubEmployee deletes the sub-employee account outright.
func (s *employeeService) RejectSubEmployee(ctx context.Context, employeeID, subEmployeeID uuid.UUID) error {
	subEmp, err := s.sameCategorySubEmployee(ctx, employeeID, subEmployeeID)
	if err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, subEmp.ID)
}
