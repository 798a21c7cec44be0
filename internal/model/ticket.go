package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketStatus represents the state of a support ticket.
type TicketStatus string

const (
	TicketStatusOpen    TicketStatus = "open"
	TicketStatusPending TicketStatus = "pending"
	TicketStatusClosed  TicketStatus = "closed"
)

// SupportTicket is an independent user-to-admin message thread, unrelated to
// complaint routing. A ticket closes on the first admin reply and never
// reopens.
type SupportTicket struct {
	ID        uuid.UUID    `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID    `json:"user_id" gorm:"type:char(36);not null;index"`
	Subject   string       `json:"subject" gorm:"size:512;not null"`
	Message   string       `json:"message" gorm:"type:text;not null"`
	Status    TicketStatus `json:"status" gorm:"type:varchar(20);not null;default:'open';index"`
	Reply     string       `json:"reply" gorm:"type:text"`
	RepliedAt *time.Time   `json:"replied_at"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (t *SupportTicket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
