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

// AdminService covers user administration: listing, deletion, explicit role
// assignment and the employee approval gate. Every operation requires the
// acting user to hold role admin.
type AdminService interface {
	ListUsers(ctx context.Context, actorID uuid.UUID) ([]model.User, error)
	DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error
	SetUserRole(ctx context.Context, actorID, userID uuid.UUID, role model.Role) (*model.User, error)
	ListEmployees(ctx context.Context, actorID uuid.UUID) ([]model.User, error)
	ApproveEmployee(ctx context.Context, actorID, employeeID uuid.UUID) (*model.User, error)
	ToggleEmployeeApproval(ctx context.Context, actorID, employeeID uuid.UUID) (*model.User, error)
	RejectEmployee(ctx context.Context, actorID, employeeID uuid.UUID) error
}

type adminService struct {
	userRepo repository.UserRepository
}

// NewAdminService creates the admin service.
func NewAdminService(userRepo repository.UserRepository) AdminService {
	return &adminService{userRepo: userRepo}
}

func (s *adminService) requireAdmin(ctx context.Context, actorID uuid.UUID) error {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.WithMessage(apperr.ErrNotFound, "user not found")
		}
		return err
	}
	if actor.Role != model.RoleAdmin {
		return apperr.WithMessage(apperr.ErrForbidden, "access denied: not admin")
	}
	return nil
}

func (s *adminService) ListUsers(ctx context.Context, actorID uuid.UUID) ([]model.User, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx)
}

func (s *adminService) DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.WithMessage(apperr.ErrNotFound, "user not found")
		}
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

// SetUserRole is the explicit role assignment path; it overrides whatever the
// registration prefix inference picked.
func (s *adminService) SetUserRole(ctx context.Context, actorID, userID uuid.UUID, role model.Role) (*model.User, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "user not found")
		}
		return nil, err
	}

	user.Role = role
	if role != model.RoleEmployee && role != model.RoleSubEmployee {
		// Approval and category selection only apply to the triage roles.
		user.IsApproved = false
		user.SelectedCategoryID = nil
		user.SelectedCategory = nil
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *adminService) ListEmployees(ctx context.Context, actorID uuid.UUID) ([]model.User, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.userRepo.ListByRole(ctx, model.RoleEmployee)
}

func (s *adminService) ApproveEmployee(ctx context.Context, actorID, employeeID uuid.UUID) (*model.User, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	employee, err := s.findEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	employee.IsApproved = true
	if err := s.userRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *adminService) ToggleEmployeeApproval(ctx context.Context, actorID, employeeID uuid.UUID) (*model.User, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	employee, err := s.findEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	employee.IsApproved = !employee.IsApproved
	if err := s.userRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *adminService) RejectEmployee(ctx context.Context, actorID, employeeID uuid.UUID) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}

	employee, err := s.findEmployee(ctx, employeeID)
	if err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, employee.ID)
}

func (s *adminService) findEmployee(ctx context.Context, employeeID uuid.UUID) (*model.User, error) {
	employee, err := s.userRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "employee not found")
		}
		return nil, err
	}
	if employee.Role != model.RoleEmployee {
		return nil, apperr.WithMessage(apperr.ErrNotFound, "employee not found")
	}
	return employee, nil
}
