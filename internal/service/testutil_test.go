package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pantryplan/backend/internal/models"
)

// setupTestDB opens an isolated in-memory sqlite database for one test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.Meal{},
	))
	return db
}

func newTestServices(t *testing.T) *Services {
	t.Helper()
	return NewServices(setupTestDB(t), "test-secret")
}

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

// addTestIngredient creates an ingredient with sensible defaults.
func addTestIngredient(t *testing.T, svc *Services, owner uuid.UUID, name string, quantity, minQuantity float64) *models.Ingredient {
	t.Helper()
	ingredient, err := svc.Ingredients.Add(context.Background(), owner, AddIngredientInput{
		Name:        name,
		Unit:        "pcs",
		Category:    "misc",
		Quantity:    floatPtr(quantity),
		MinQuantity: floatPtr(minQuantity),
	})
	require.NoError(t, err)
	return ingredient
}

// addTestRecipe creates a single-line recipe for the given ingredient.
func addTestRecipe(t *testing.T, svc *Services, owner uuid.UUID, name string, lines models.RecipeIngredientList) *models.Recipe {
	t.Helper()
	recipe, err := svc.Recipes.Add(context.Background(), owner, name, lines)
	require.NoError(t, err)
	return recipe
}

func ingredientQuantity(t *testing.T, svc *Services, owner, id uuid.UUID) float64 {
	t.Helper()
	ingredient, err := svc.Ingredients.Get(context.Background(), owner, id)
	require.NoError(t, err)
	return ingredient.Quantity
}
