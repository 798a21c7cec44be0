package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperr "github.com/noorjahan04/City-Backend/internal/errors"
	"github.com/noorjahan04/City-Backend/internal/model"
	"github.com/noorjahan04/City-Backend/internal/repository"
)

// TicketService is the support sub-thread: a per-user message thread toward
// the admins, independent of complaint routing. A ticket closes on the first
// reply and never reopens.
type TicketService interface {
	Create(ctx context.Context, userID uuid.UUID, subject, message string) (*model.SupportTicket, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.SupportTicket, error)
	ListAll(ctx context.Context, actorID uuid.UUID) ([]model.SupportTicket, error)
	Reply(ctx context.Context, actorID, ticketID uuid.UUID, reply string) (*model.SupportTicket, error)
	Delete(ctx context.Context, actorID, ticketID uuid.UUID) error
}

type ticketService struct {
	ticketRepo repository.TicketRepository
	userRepo   repository.UserRepository
}

// NewTicketService creates the ticket service.
func NewTicketService(ticketRepo repository.TicketRepository, userRepo repository.UserRepository) TicketService {
	return &ticketService{ticketRepo: ticketRepo, userRepo: userRepo}
}

func (s *ticketService) Create(ctx context.Context, userID uuid.UUID, subject, message string) (*model.SupportTicket, error) {
	if subject == "" || message == "" {
		return nil, apperr.WithMessage(apperr.ErrInvalidInput, "subject and message are required")
	}

	ticket := &model.SupportTicket{
		UserID:  userID,
		Subject: subject,
		Message: message,
		Status:  model.TicketStatusOpen,
	}
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *ticketService) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.SupportTicket, error) {
	return s.ticketRepo.ListByUser(ctx, userID)
}

func (s *ticketService) ListAll(ctx context.Context, actorID uuid.UUID) ([]model.SupportTicket, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.ticketRepo.ListAll(ctx)
}

// Reply is the admin-only path. The first reply closes the ticket.
func (s *ticketService) Reply(ctx context.Context, actorID, ticketID uuid.UUID, reply string) (*model.SupportTicket, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if reply == "" {
		return nil, apperr.WithMessage(apperr.ErrInvalidInput, "reply is required")
	}

	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.WithMessage(apperr.ErrNotFound, "ticket not found")
		}
		return nil, err
	}

	now := time.Now()
	ticket.Reply = reply
	ticket.RepliedAt = &now
	ticket.Status = model.TicketStatusClosed
	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// Delete removes a ticket. Permitted for the owner or an admin.
func (s *ticketService) Delete(ctx context.Context, actorID, ticketID uuid.UUID) error {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.WithMessage(apperr.ErrNotFound, "ticket not found")
		}
		return err
	}

	if ticket.UserID != actorID {
		actor, err := s.userRepo.FindByID(ctx, actorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.WithMessage(apperr.ErrNotFound, "user not found")
			}
			return err
		}
		if actor.Role != model.RoleAdmin {
			return apperr.ErrForbidden
		}
	}
	return s.ticketRepo.Delete(ctx, ticketID)
}

func (s *ticketService) requireAdmin(ctx context.Context, actorID uuid.UUID) error {
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
