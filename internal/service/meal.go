package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantryplan/backend/internal/models"
)

// MealService schedules meals and maintains their stock reservations: a
// non-done meal has already deducted its recipe's quantities from the
// owner's ingredients and releases them again when deleted or reassigned.
//
// The ordering of the scheduling steps is part of the external contract and
// deliberately kept, including its rough edges; see DESIGN.md. In
// particular stock is deducted and persisted before the duplicate-slot
// check, so a rejected duplicate leaves the deduction in place.
type MealService struct {
	db          *gorm.DB
	locks       *userLocks
	ingredients *IngredientService
	recipes     *RecipeService
}

// Schedule creates a meal for the given slot, deducting the recipe's
// ingredient quantities. Validation of all recipe lines happens before any
// deduction, so a failed validation mutates nothing.
func (s *MealService) Schedule(ctx context.Context, owner uuid.UUID, date, timeOfDay string, recipeID uuid.UUID) (*models.Meal, error) {
	timeOfDay = strings.ToLower(strings.TrimSpace(timeOfDay))
	if date == "" || timeOfDay == "" || recipeID == uuid.Nil {
		return nil, ErrMissingMealFields
	}

	unlock := s.locks.Lock(owner)
	defer unlock()

	recipe, err := s.recipes.Get(ctx, owner, recipeID)
	if err != nil {
		return nil, err
	}

	if err := s.validateAndDeduct(ctx, owner, recipe); err != nil {
		return nil, err
	}

	// Slot check runs after the deduction has been persisted. A duplicate
	// rejection therefore leaves stock decremented; callers relying on the
	// historical contract expect exactly that.
	var count int64
	err = s.db.WithContext(ctx).
		Model(&models.Meal{}).
		Where("user_id = ? AND date = ? AND time = ?", owner, date, timeOfDay).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &SlotTakenError{Date: date, Time: timeOfDay}
	}

	meal := models.Meal{
		ID:       uuid.New(),
		UserID:   owner,
		Date:     date,
		Time:     timeOfDay,
		RecipeID: recipeID,
		Done:     false,
	}
	if err := s.db.WithContext(ctx).Create(&meal).Error; err != nil {
		return nil, err
	}

	return &meal, nil
}

// List returns the owner's meals.
func (s *MealService) List(ctx context.Context, owner uuid.UUID) ([]models.Meal, error) {
	meals := make([]models.Meal, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", owner).
		Find(&meals).Error
	if err != nil {
		return nil, err
	}
	return meals, nil
}

// Get returns the owner's meal by id.
func (s *MealService) Get(ctx context.Context, owner, id uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", owner, id).
		First(&meal).Error
	if err != nil {
		return nil, ErrMealNotFound
	}
	return &meal, nil
}

// Reassign points the meal at a new recipe. For a non-done meal the current
// reservation is released first, then the new recipe is validated and
// deducted; if that fails the released reservation is not re-applied
// (kept behavior, see DESIGN.md).
func (s *MealService) Reassign(ctx context.Context, owner, mealID, newRecipeID uuid.UUID) (*models.Meal, error) {
	if newRecipeID == uuid.Nil {
		return nil, ErrMissingMealFields
	}

	unlock := s.locks.Lock(owner)
	defer unlock()

	meal, err := s.Get(ctx, owner, mealID)
	if err != nil {
		return nil, err
	}

	if !meal.Done {
		if err := s.restoreForRecipe(ctx, owner, meal.RecipeID); err != nil {
			return nil, err
		}
	}

	recipe, err := s.recipes.Get(ctx, owner, newRecipeID)
	if err != nil {
		return nil, err
	}
	if err := s.validateAndDeduct(ctx, owner, recipe); err != nil {
		return nil, err
	}

	meal.RecipeID = newRecipeID
	if err := s.db.WithContext(ctx).Save(meal).Error; err != nil {
		return nil, err
	}
	return meal, nil
}

// MarkDone marks the meal as eaten. No stock effect; marking an already
// done meal again succeeds silently.
func (s *MealService) MarkDone(ctx context.Context, owner, mealID uuid.UUID) error {
	unlock := s.locks.Lock(owner)
	defer unlock()

	meal, err := s.Get(ctx, owner, mealID)
	if err != nil {
		return err
	}
	if meal.Done {
		return nil
	}
	return s.db.WithContext(ctx).Model(meal).Update("done", true).Error
}

// Delete removes the meal, restoring its reservation only while not done.
func (s *MealService) Delete(ctx context.Context, owner, mealID uuid.UUID) error {
	unlock := s.locks.Lock(owner)
	defer unlock()

	meal, err := s.Get(ctx, owner, mealID)
	if err != nil {
		return err
	}

	if !meal.Done {
		if err := s.restoreForRecipe(ctx, owner, meal.RecipeID); err != nil {
			return err
		}
	}

	return s.db.WithContext(ctx).Delete(meal).Error
}

// CascadeRemoveByRecipeIDs removes every meal of the owner referencing one
// of the given recipes and reports how many went. No stock is restored,
// done or not. Runs under the caller's owner lock.
func (s *MealService) CascadeRemoveByRecipeIDs(ctx context.Context, owner uuid.UUID, recipeIDs []uuid.UUID) (int, error) {
	if len(recipeIDs) == 0 {
		return 0, nil
	}
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id IN ?", owner, recipeIDs).
		Delete(&models.Meal{})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

// validateAndDeduct checks every line of the recipe against current stock
// and only then applies the deductions, all inside one transaction. Either
// the whole reservation lands or nothing does.
func (s *MealService) validateAndDeduct(ctx context.Context, owner uuid.UUID, recipe *models.Recipe) error {
	var stock []models.Ingredient
	err := s.db.WithContext(ctx).
		Where("user_id = ?", owner).
		Find(&stock).Error
	if err != nil {
		return err
	}

	byID := make(map[uuid.UUID]models.Ingredient, len(stock))
	for _, ing := range stock {
		byID[ing.ID] = ing
	}

	for _, line := range recipe.Ingredients {
		ing, ok := byID[line.IngredientID]
		if !ok {
			return &MissingIngredientError{IngredientID: line.IngredientID}
		}
		if ing.Quantity < line.Quantity {
			return &InsufficientStockError{
				Name:      ing.Name,
				Required:  line.Quantity,
				Available: ing.Quantity,
			}
		}
	}

	deltas := make(map[uuid.UUID]float64, len(recipe.Ingredients))
	for _, line := range recipe.Ingredients {
		deltas[line.IngredientID] -= line.Quantity
	}
	return s.ingredients.ApplyQuantityDeltas(ctx, owner, deltas)
}

// restoreForRecipe gives a meal's reservation back to stock. Best effort:
// if the recipe is gone the restore is silently skipped, and lines whose
// ingredient no longer exists are skipped by the delta application.
func (s *MealService) restoreForRecipe(ctx context.Context, owner, recipeID uuid.UUID) error {
	recipe, err := s.recipes.Get(ctx, owner, recipeID)
	if err != nil {
		return nil
	}

	deltas := make(map[uuid.UUID]float64, len(recipe.Ingredients))
	for _, line := range recipe.Ingredients {
		deltas[line.IngredientID] += line.Quantity
	}
	return s.ingredients.ApplyQuantityDeltas(ctx, owner, deltas)
}
