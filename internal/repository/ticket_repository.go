package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/noorjahan04/City-Backend/internal/model"
)

// TicketRepository defines persistence operations for support tickets.
type TicketRepository interface {
	Create(ctx context.Context, ticket *model.SupportTicket) error
	Update(ctx context.Context, ticket *model.SupportTicket) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SupportTicket, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.SupportTicket, error)
	ListAll(ctx context.Context) ([]model.SupportTicket, error)
}

type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository builds a GORM-backed repository.
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *model.SupportTicket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *ticketRepository) Update(ctx context.Context, ticket *model.SupportTicket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

func (r *ticketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SupportTicket{}, "id = ?", id).Error
}

func (r *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SupportTicket, error) {
	var ticket model.SupportTicket
	if err := r.db.WithContext(ctx).First(&ticket, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.SupportTicket, error) {
	var tickets []model.SupportTicket
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepository) ListAll(ctx context.Context) ([]model.SupportTicket, error) {
	var tickets []model.SupportTicket
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}
