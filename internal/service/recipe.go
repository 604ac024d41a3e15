package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantryplan/backend/internal/models"
)

// RecipeService owns recipe composition. Its one real invariant: every
// ingredient line of a recipe must reference an ingredient owned by the
// recipe's owner at create or update time.
type RecipeService struct {
	db          *gorm.DB
	locks       *userLocks
	ingredients *IngredientService
	cascade     *CascadeService
}

// RecipePatch is a partial recipe update; nil fields are left unchanged.
// Supplying Ingredients re-runs ownership validation.
type RecipePatch struct {
	Name        *string                      `json:"name"`
	Ingredients *models.RecipeIngredientList `json:"ingredients"`
}

// validateOwnership returns an error listing every line ingredient the
// owner does not hold.
func (s *RecipeService) validateOwnership(ctx context.Context, owner uuid.UUID, lines models.RecipeIngredientList) error {
	owned, err := s.ingredients.OwnedIDs(ctx, owner)
	if err != nil {
		return err
	}

	var unowned []uuid.UUID
	for _, line := range lines {
		if _, ok := owned[line.IngredientID]; !ok {
			unowned = append(unowned, line.IngredientID)
		}
	}
	if len(unowned) > 0 {
		return &UnownedIngredientsError{IngredientIDs: unowned}
	}
	return nil
}

// Add creates a recipe after validating ingredient ownership.
func (s *RecipeService) Add(ctx context.Context, owner uuid.UUID, name string, lines models.RecipeIngredientList) (*models.Recipe, error) {
	unlock := s.locks.Lock(owner)
	defer unlock()

	if err := s.validateOwnership(ctx, owner, lines); err != nil {
		return nil, err
	}

	if lines == nil {
		lines = models.RecipeIngredientList{}
	}
	recipe := models.Recipe{
		ID:          uuid.New(),
		UserID:      owner,
		Name:        name,
		Ingredients: lines,
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}

	return &recipe, nil
}

// List returns the owner's recipes.
func (s *RecipeService) List(ctx context.Context, owner uuid.UUID) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", owner).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// Get returns the owner's recipe by id.
func (s *RecipeService) Get(ctx context.Context, owner, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", owner, id).
		First(&recipe).Error
	if err != nil {
		return nil, ErrRecipeNotFound
	}
	return &recipe, nil
}

// Update merges the patch into the owner's recipe, re-validating ingredient
// ownership when the patch rewrites the line list.
func (s *RecipeService) Update(ctx context.Context, owner, id uuid.UUID, patch RecipePatch) (*models.Recipe, error) {
	unlock := s.locks.Lock(owner)
	defer unlock()

	recipe, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if patch.Ingredients != nil {
		if err := s.validateOwnership(ctx, owner, *patch.Ingredients); err != nil {
			return nil, err
		}
		recipe.Ingredients = *patch.Ingredients
	}
	if patch.Name != nil {
		recipe.Name = *patch.Name
	}

	if err := s.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// Delete removes the owner's recipe and cascades removal of every meal
// referencing it. No stock is restored for those meals.
func (s *RecipeService) Delete(ctx context.Context, owner, id uuid.UUID) error {
	unlock := s.locks.Lock(owner)
	defer unlock()

	result := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", owner, id).
		Delete(&models.Recipe{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecipeNotFound
	}

	_, err := s.cascade.OnRecipeDeleted(ctx, owner, id)
	return err
}

// CascadeRemoveByIngredient removes every recipe of the owner referencing
// the given ingredient and returns the removed recipe ids so the caller can
// cascade further. Runs under the caller's owner lock.
func (s *RecipeService) CascadeRemoveByIngredient(ctx context.Context, owner, ingredientID uuid.UUID) ([]uuid.UUID, error) {
	recipes, err := s.List(ctx, owner)
	if err != nil {
		return nil, err
	}

	var removed []uuid.UUID
	for _, recipe := range recipes {
		for _, line := range recipe.Ingredients {
			if line.IngredientID == ingredientID {
				removed = append(removed, recipe.ID)
				break
			}
		}
	}
	if len(removed) == 0 {
		return nil, nil
	}

	err = s.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", owner, removed).
		Delete(&models.Recipe{}).Error
	if err != nil {
		return nil, err
	}
	return removed, nil
}
