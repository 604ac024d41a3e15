package models

import (
	"time"

	"github.com/google/uuid"
)

// Meal is a scheduled cooking slot. While Done is false the meal holds a
// reservation against ingredient stock: its recipe's quantities have already
// been deducted and must be restored before the recipe reference changes or
// the meal is deleted. Once Done, the reservation is never released.
type Meal struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index;index:idx_meals_slot" json:"user_id"`
	Date      string    `gorm:"size:10;not null;index:idx_meals_slot" json:"date"`
	Time      string    `gorm:"size:50;not null;index:idx_meals_slot" json:"time"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	Done      bool      `gorm:"not null;default:false" json:"done"`
}
