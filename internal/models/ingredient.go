package models

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient is a stocked pantry item belonging to a single user.
//
// ExpiryDate is kept as a plain "YYYY-MM-DD" string rather than a time.Time:
// records may carry empty or unparsable values, and those must simply never
// count as expired.
type Ingredient struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserID      uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Unit        string    `gorm:"size:50;not null" json:"unit"`
	Category    string    `gorm:"size:50;not null" json:"category"`
	Quantity    float64   `gorm:"not null" json:"quantity"`
	MinQuantity float64   `gorm:"not null" json:"min_quantity"`
	ExpiryDate  string    `gorm:"size:10" json:"expiry_date,omitempty"`
}

// ExpiryDateLayout is the calendar format accepted for Ingredient.ExpiryDate.
const ExpiryDateLayout = "2006-01-02"
