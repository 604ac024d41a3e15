package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryplan/backend/internal/models"
)

func TestAddIngredientRequiresFields(t *testing.T) {
	svc := newTestServices(t)
	owner := uuid.New()

	_, err := svc.Ingredients.Add(context.Background(), owner, AddIngredientInput{
		Name: "Egg",
		Unit: "pcs",
	})
	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.ElementsMatch(t, []string{"category", "quantity", "min_quantity"}, missing.Fields)
}

func TestAddIngredientAllowsAnyNumbers(t *testing.T) {
	svc := newTestServices(t)
	owner := uuid.New()

	// Presence is required, ranges are not.
	ingredient, err := svc.Ingredients.Add(context.Background(), owner, AddIngredientInput{
		Name:        "Mystery",
		Unit:        "pcs",
		Category:    "misc",
		Quantity:    floatPtr(-2),
		MinQuantity: floatPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(-2), ingredient.Quantity)
}

func TestListSortedCaseInsensitive(t *testing.T) {
	svc := newTestServices(t)
	owner := uuid.New()

	addTestIngredient(t, svc, owner, "banana", 1, 0)
	addTestIngredient(t, svc, owner, "Apple", 1, 0)
	addTestIngredient(t, svc, owner, "cherry", 1, 0)

	ingredients, err := svc.Ingredients.List(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, ingredients, 3)
	assert.Equal(t, "Apple", ingredients[0].Name)
	assert.Equal(t, "banana", ingredients[1].Name)
	assert.Equal(t, "cherry", ingredients[2].Name)
}

func TestListScopedToOwner(t *testing.T) {
	svc := newTestServices(t)
	alice := uuid.New()
	bob := uuid.New()

	addTestIngredient(t, svc, alice, "Egg", 10, 2)
	addTestIngredient(t, svc, bob, "Flour", 5, 1)

	ingredients, err := svc.Ingredients.List(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, ingredients, 1)
	assert.Equal(t, "Egg", ingredients[0].Name)
}

func TestGetNotOwnedReportsNotFound(t *testing.T) {
	svc := newTestServices(t)
	alice := uuid.New()
	bob := uuid.New()

	egg := addTestIngredient(t, svc, alice, "Egg", 10, 2)

	_, err := svc.Ingredients.Get(context.Background(), bob, egg.ID)
	assert.ErrorIs(t, err, ErrIngredientNotFound)
}

func TestUpdateMergesPatch(t *testing.T) {
	svc := newTestServices(t)
	owner := uuid.New()

	egg := addTestIngredient(t, svc, owner, "Egg", 10, 2)

	updated, err := svc.Ingredients.Update(context.Background(), owner, egg.ID, IngredientPatch{
		Quantity:   floatPtr(4),
		ExpiryDate: strPtr("2030-01-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(4), updated.Quantity)
	assert.Equal(t, "2030-01-01", updated.ExpiryDate)
	// untouched fields survive
	assert.Equal(t, "Egg", updated.Name)
	assert.Equal(t, float64(2), updated.MinQuantity)
	// owner cannot change
	assert.Equal(t, owner, updated.UserID)
}

func TestLowStockBoundary(t *testing.T) {
	svc := newTestServices(t)
	owner := uuid.New()
	ctx := context.Background()

	low := addTestIngredient(t, svc, owner, "Milk", 1, 2)
	addTestIngredient(t, svc, owner, "Butter", 2, 2) // equal is not low
	addTestIngredient(t, svc, owner, "Salt", 3, 2)

	ingredients, err := svc.Ingredients.ListLowStock(ctx, owner)
	require.NoError(t, err)
	require.Len(t, ingredients, 1)
	assert.Equal(t, low.ID, ingredients[0].ID)
}

func TestExpiredDateHandling(t *testing.T) {
	svc := newTestServices(t)
	owner := uuid.New()
	ctx := context.Background()

	yesterday := time.Now().AddDate(0, 0, -1).Format(models.ExpiryDateLayout)
	today := time.Now().Format(models.ExpiryDateLayout)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(models.ExpiryDateLayout)

	expired := addTestIngredient(t, svc, owner, "Old Milk", 1, 0)
	_, err := svc.Ingredients.Update(ctx, owner, expired.ID, IngredientPatch{ExpiryDate: strPtr(yesterday)})
	require.NoError(t, err)

	fresh := addTestIngredient(t, svc, owner, "Fresh Milk", 1, 0)
	_, err = svc.Ingredients.Update(ctx, owner, fresh.ID, IngredientPatch{ExpiryDate: strPtr(tomorrow)})
	require.NoError(t, err)

	todays := addTestIngredient(t, svc, owner, "Todays Milk", 1, 0)
	_, err = svc.Ingredients.Update(ctx, owner, todays.ID, IngredientPatch{ExpiryDate: strPtr(today)})
	require.NoError(t, err)

	garbled := addTestIngredient(t, svc, owner, "Garbled", 1, 0)
	_, err = svc.Ingredients.Update(ctx, owner, garbled.ID, IngredientPatch{ExpiryDate: strPtr("not-a-date")})
	require.NoError(t, err)

	addTestIngredient(t, svc, owner, "Undated", 1, 0)

	expiredList, err := svc.Ingredients.ListExpired(ctx, owner)
	require.NoError(t, err)
	require.Len(t, expiredList, 1)
	assert.Equal(t, expired.ID, expiredList[0].ID)
}

func TestDeleteIngredientCascades(t *testing.T) {
	svc := newTestServices(t)
	owner := uuid.New()
	ctx := context.Background()

	egg := addTestIngredient(t, svc, owner, "Egg", 10, 2)
	flour := addTestIngredient(t, svc, owner, "Flour", 10, 2)

	omelette := addTestRecipe(t, svc, owner, "Omelette", models.RecipeIngredientList{
		{IngredientID: egg.ID, Quantity: 3},
	})
	bread := addTestRecipe(t, svc, owner, "Bread", models.RecipeIngredientList{
		{IngredientID: flour.ID, Quantity: 5},
	})

	meal, err := svc.Meals.Schedule(ctx, owner, "2026-09-01", "dinner", omelette.ID)
	require.NoError(t, err)

	result, err := svc.Ingredients.Delete(ctx, owner, egg.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.RemovedRecipes)
	assert.Equal(t, 1, result.RemovedMeals)

	_, err = svc.Recipes.Get(ctx, owner, omelette.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
	_, err = svc.Meals.Get(ctx, owner, meal.ID)
	assert.ErrorIs(t, err, ErrMealNotFound)

	// Unrelated records stay.
	_, err = svc.Recipes.Get(ctx, owner, bread.ID)
	assert.NoError(t, err)
	assert.Equal(t, float64(10), ingredientQuantity(t, svc, owner, flour.ID))
}

func TestDeleteIngredientScopedToOwner(t *testing.T) {
	svc := newTestServices(t)
	alice := uuid.New()
	bob := uuid.New()
	ctx := context.Background()

	egg := addTestIngredient(t, svc, alice, "Egg", 10, 2)

	_, err := svc.Ingredients.Delete(ctx, bob, egg.ID)
	assert.ErrorIs(t, err, ErrIngredientNotFound)

	_, err = svc.Ingredients.Get(ctx, alice, egg.ID)
	assert.NoError(t, err)
}
