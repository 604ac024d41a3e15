package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors for common failure scenarios. Lookups scoped to a user
// report "not found" both for absent records and for records owned by
// someone else, so existence never leaks across owners.
var (
	ErrIngredientNotFound = errors.New("Ingredient not found")
	ErrRecipeNotFound     = errors.New("Recipe not found")
	ErrMealNotFound       = errors.New("Meal not found")
	ErrUserNotFound       = errors.New("User not found")

	ErrEmailTaken         = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid email or password")

	ErrMissingMealFields = errors.New("Missing fields (date, time, recipeId)")
)

// MissingFieldsError reports required record fields absent from a request.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "Missing fields: " + strings.Join(e.Fields, ", ")
}

// UnownedIngredientsError reports recipe lines referencing ingredients the
// requesting user does not own.
type UnownedIngredientsError struct {
	IngredientIDs []uuid.UUID
}

func (e *UnownedIngredientsError) Error() string {
	ids := make([]string, len(e.IngredientIDs))
	for i, id := range e.IngredientIDs {
		ids[i] = id.String()
	}
	return "You don't own the following ingredients: " + strings.Join(ids, ", ")
}

// MissingIngredientError reports a recipe line whose ingredient no longer
// exists for the scheduling user.
type MissingIngredientError struct {
	IngredientID uuid.UUID
}

func (e *MissingIngredientError) Error() string {
	return "Missing ingredient: " + e.IngredientID.String()
}

// InsufficientStockError reports a recipe line requiring more of an
// ingredient than is currently stocked.
type InsufficientStockError struct {
	Name      string
	Required  float64
	Available float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Not enough %s (required %v, available %v)", e.Name, e.Required, e.Available)
}

// SlotTakenError reports a second meal scheduled for an already occupied
// (date, time) slot.
type SlotTakenError struct {
	Date string
	Time string
}

func (e *SlotTakenError) Error() string {
	return fmt.Sprintf("Meal already exists for %s on %s", e.Time, e.Date)
}
