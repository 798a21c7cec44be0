package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role classifies a user account.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleEmployee    Role = "employee"
	RoleSubEmployee Role = "subemployee"
	RoleUser        Role = "user"
)

// ParseRole maps a lowercase role name to a Role, defaulting to RoleUser.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleEmployee, RoleSubEmployee:
		return Role(s)
	default:
		return RoleUser
	}
}

// User represents an account in the system. IsApproved and SelectedCategory
// are meaningful only for employee and subemployee roles.
type User struct {
	ID                 uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Name               string     `json:"name" gorm:"size:255;not null"`
	Email              string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash       string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role               Role       `json:"role" gorm:"size:50;not null;default:'user';index"`
	IsVerified         bool       `json:"is_verified" gorm:"default:false"`
	IsApproved         bool       `json:"is_approved" gorm:"default:false;index"`
	HasReviewed        bool       `json:"has_reviewed" gorm:"default:false"`
	ProfilePic         string     `json:"profile_pic" gorm:"size:512"`
	Phone              string     `json:"phone" gorm:"size:32"`
	IsPhoneVerified    bool       `json:"is_phone_verified" gorm:"default:false"`
	SelectedCategoryID *uuid.UUID `json:"selected_category_id" gorm:"type:char(36);index"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	// Relations
	SelectedCategory *Category       `json:"selected_category,omitempty" gorm:"foreignKey:SelectedCategoryID"`
	SupportTickets   []SupportTicket `json:"support_tickets,omitempty" gorm:"foreignKey:UserID"`
	Reviews          []Review        `json:"reviews,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
