package service

import (
	"context"

	"github.com/google/uuid"
)

// CascadeService sequences cross-entity removal: deleting an ingredient
// removes the recipes referencing it, which in turn removes the meals
// referencing those recipes. All methods run under the caller's owner lock.
type CascadeService struct {
	recipes *RecipeService
	meals   *MealService
}

// OnIngredientDeleted cascades an ingredient deletion and returns the
// number of recipes and meals removed.
func (s *CascadeService) OnIngredientDeleted(ctx context.Context, owner, ingredientID uuid.UUID) (int, int, error) {
	recipeIDs, err := s.recipes.CascadeRemoveByIngredient(ctx, owner, ingredientID)
	if err != nil {
		return 0, 0, err
	}
	if len(recipeIDs) == 0 {
		return 0, 0, nil
	}

	removedMeals, err := s.meals.CascadeRemoveByRecipeIDs(ctx, owner, recipeIDs)
	if err != nil {
		return len(recipeIDs), 0, err
	}
	return len(recipeIDs), removedMeals, nil
}

// OnRecipeDeleted cascades a recipe deletion and returns the number of
// meals removed.
func (s *CascadeService) OnRecipeDeleted(ctx context.Context, owner, recipeID uuid.UUID) (int, error) {
	return s.meals.CascadeRemoveByRecipeIDs(ctx, owner, []uuid.UUID{recipeID})
}
