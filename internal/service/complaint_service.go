package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperr "github.com/noorjahan04/City-Backend/internal/errors"
	"github.com/noorjahan04/City-Backend/internal/model"
	"github.com/noorjahan04/City-Backend/internal/notify"
	"github.com/noorjahan04/City-Backend/internal/repository"
)

// CreateComplaintInput carries the fields of a new complaint.
type CreateComplaintInput struct {
	CategoryID    uuid.UUID
	SubCategoryID *uuid.UUID
	Problem       string
	Description   string
	Images        []string
	Location      model.Location
}

// ComplaintService drives the complaint lifecycle:
// Pending -> In Progress (on assignment) -> Resolved (by the assignee only).
type ComplaintService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateComplaintInput) (*model.Complaint, error)
	Assign(ctx context.Context, complaintID, employeeID uuid.UUID) (*model.Complaint, error)
	Resolve(ctx context.Context, complaintID, actorID uuid.UUID) (*model.Complaint, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Complaint, error)
	ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.Complaint, error)
}

type complaintService struct {
	complaintRepo repository.ComplaintRepository
	userRepo      repository.UserRepository
	categoryRepo  repository.CategoryRepository
	notifier      notify.Notifier
}

// NewComplaintService creates the complaint lifecycle engine.
func NewComplaintService(
	complaintRepo repository.ComplaintRepository,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	notifier notify.Notifier,
) ComplaintService {
	return &complaintService{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
		categoryRepo:  categoryRepo,
		notifier:      notifier,
	}
}

// Create files a new complaint in state Pending. No routing happens here:
// assignment is always an explicit follow-up call, so AssignedEmployeeID
// starts null even when an approved employee exists for the category.
func (s *complaintService) Create(ctx context.Context, userID uuid.UUID, input CreateComplaintInput) (*model.Complaint, error) {
	if _, err := s.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "category not found")
		}
		return nil, err
	}

	complaint := &model.Complaint{
		UserID:        userID,
		CategoryID:    input.CategoryID,
		SubCategoryID: input.SubCategoryID,
		Problem:       input.Problem,
		Description:   input.Description,
		Images:        input.Images,
		Location:      input.Location,
		Status:        model.ComplaintStatusPending,
	}

	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

// Assign hands a complaint to a sub-employee and moves it to In Progress.
// The target must hold role subemployee; a resolved complaint can no longer
// be assigned.
func (s *complaintService) Assign(ctx context.Context, complaintID, employeeID uuid.UUID) (*model.Complaint, error) {
	complaint, err := s.complaintRepo.FindByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "complaint not found")
		}
		return nil, err
	}

	employee, err := s.userRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "employee not found")
		}
		return nil, err
	}

	if employee.Role != model.RoleSubEmployee {
		return nil, apperr.WithMessage(apperr.ErrInvalidRole, "only sub-employees can be assigned")
	}
	if complaint.Status == model.ComplaintStatusResolved {
		return nil, apperr.WithMessage(apperr.ErrConflict, "complaint is already resolved")
	}

	complaint.AssignedEmployeeID = &employee.ID
	complaint.Status = model.ComplaintStatusInProgress
	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}

	s.notifyStatus(ctx, complaint, employee.Name)
	return complaint, nil
}

// Resolve marks a complaint Resolved. Only the assigned sub-employee may do
// this; the assigning party is irrelevant.
func (s *complaintService) Resolve(ctx context.Context, complaintID, actorID uuid.UUID) (*model.Complaint, error) {
	complaint, err := s.complaintRepo.FindByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "complaint not found")
		}
		return nil, err
	}

	if complaint.AssignedEmployeeID == nil {
		return nil, apperr.ErrUnassigned
	}
	if *complaint.AssignedEmployeeID != actorID {
		return nil, apperr.WithMessage(apperr.ErrForbidden, "only the assigned sub-employee may resolve this complaint")
	}

	complaint.Status = model.ComplaintStatusResolved
	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}

	assignedName := ""
	if complaint.AssignedEmployee != nil {
		assignedName = complaint.AssignedEmployee.Name
	}
	s.notifyStatus(ctx, complaint, assignedName)
	return complaint, nil
}

// ListForUser returns the user's complaints, newest first.
func (s *complaintService) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Complaint, error) {
	return s.complaintRepo.ListByUser(ctx, userID)
}

// ListForEmployee returns all complaints in the employee's selected category.
func (s *complaintService) ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.Complaint, error) {
	employee, err := s.userRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "employee not found")
		}
		return nil, err
	}
	if employee.SelectedCategoryID == nil {
		return nil, apperr.ErrNoCategorySelected
	}
	return s.complaintRepo.ListByCategory(ctx, *employee.SelectedCategoryID)
}

// notifyStatus tells the complaint owner about a transition. Delivery errors
// are logged and swallowed; the state change stands regardless.
func (s *complaintService) notifyStatus(ctx context.Context, complaint *model.Complaint, assignedName string) {
	if complaint.User == nil {
		owner, err := s.userRepo.FindByID(ctx, complaint.UserID)
		if err != nil {
			log.Printf("status notification skipped for complaint %s: owner lookup: %v", complaint.ID, err)
			return
		}
		complaint.User = owner
	}

	err := s.notifier.Send(ctx, complaint.User.Email, notify.KindStatusUpdate, notify.Payload{
		"user_name":   complaint.User.Name,
		"problem":     complaint.Problem,
		"status":      string(complaint.Status),
		"assigned_to": assignedName,
	})
	if err != nil {
		log.Printf("status notification failed for complaint %s: %v", complaint.ID, err)
	}
}
