package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ComplaintStatus represents the lifecycle state of a complaint.
type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "Pending"
	ComplaintStatusInProgress ComplaintStatus = "In Progress"
	ComplaintStatusResolved   ComplaintStatus = "Resolved"
)

// ImageList stores complaint image references as a JSON column.
type ImageList []string

// Value implements driver.Valuer.
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *ImageList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported image list source type %T", src)
	}
}

// Location is an optional geotag on a complaint.
type Location struct {
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Address string   `json:"address" gorm:"size:512"`
}

// Complaint is a user-filed issue scoped to a category, tracked through a
// three-state lifecycle: Pending -> In Progress -> Resolved. Transitions never
// run backward and never skip a state.
type Complaint struct {
	ID                 uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID             uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	CategoryID         uuid.UUID       `json:"category_id" gorm:"type:char(36);not null;index"`
	SubCategoryID      *uuid.UUID      `json:"sub_category_id" gorm:"type:char(36);index"`
	Problem            string          `json:"problem" gorm:"size:512;not null"`
	Description        string          `json:"description" gorm:"type:text;not null"`
	Images             ImageList       `json:"images" gorm:"type:json"`
	Location           Location        `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	AssignedEmployeeID *uuid.UUID      `json:"assigned_employee_id" gorm:"type:char(36);index"`
	Status             ComplaintStatus `json:"status" gorm:"type:varchar(20);not null;default:'Pending';index"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`

	// Relations
	User             *User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Category         *Category    `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	SubCategory      *SubCategory `json:"sub_category,omitempty" gorm:"foreignKey:SubCategoryID"`
	AssignedEmployee *User        `json:"assigned_employee,omitempty" gorm:"foreignKey:AssignedEmployeeID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
