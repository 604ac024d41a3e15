package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RecipeIngredient is one line of a recipe: how much of which ingredient.
type RecipeIngredient struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	Quantity     float64   `json:"quantity"`
}

// RecipeIngredientList is a custom type for persisting ordered recipe lines
// as JSON in a single column.
type RecipeIngredientList []RecipeIngredient

// Value implements the driver.Valuer interface
func (l RecipeIngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *RecipeIngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = RecipeIngredientList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Recipe is a user-owned composition of that user's ingredients. Every line
// must reference an ingredient owned by the same user at creation or update
// time; the reference is not re-validated afterwards.
type Recipe struct {
	ID          uuid.UUID            `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	UserID      uuid.UUID            `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name        string               `gorm:"size:255;not null" json:"name"`
	Ingredients RecipeIngredientList `gorm:"type:text;not null;default:'[]'" json:"ingredients"`
}
