package service

import "gorm.io/gorm"

// Services bundles the wired-up domain services. The construction order
// matters: the cascade service sits between the ingredient, recipe and meal
// services, so it is attached after the three are built.
type Services struct {
	Auth        *AuthService
	Ingredients *IngredientService
	Recipes     *RecipeService
	Meals       *MealService
	Cascade     *CascadeService
}

// NewServices wires the domain services over a shared database handle.
func NewServices(db *gorm.DB, jwtSecret string) *Services {
	locks := newUserLocks()

	ingredients := &IngredientService{db: db, locks: locks}
	recipes := &RecipeService{db: db, locks: locks, ingredients: ingredients}
	meals := &MealService{db: db, locks: locks, ingredients: ingredients, recipes: recipes}

	cascade := &CascadeService{recipes: recipes, meals: meals}
	ingredients.cascade = cascade
	recipes.cascade = cascade

	return &Services{
		Auth:        NewAuthService(db, jwtSecret),
		Ingredients: ingredients,
		Recipes:     recipes,
		Meals:       meals,
		Cascade:     cascade,
	}
}
