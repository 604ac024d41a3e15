package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pantryplan/backend/internal/api"
	"github.com/pantryplan/backend/internal/middleware"
	"github.com/pantryplan/backend/internal/service"
)

// SetupRouter configures the application routes.
func SetupRouter(services *service.Services, redisClient *redis.Client) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS())

	authHandler := api.NewAuthHandler(services.Auth)
	ingredientHandler := api.NewIngredientHandler(services.Ingredients)
	recipeHandler := api.NewRecipeHandler(services.Recipes)
	mealHandler := api.NewMealHandler(services.Meals)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(services.Auth))
	if redisClient != nil {
		protected.Use(middleware.NewMutationRateLimiter(redisClient).RateLimitMiddleware())
	}
	{
		// Ingredient routes
		ingredients := protected.Group("/ingredients")
		{
			ingredients.POST("", ingredientHandler.Create)
			ingredients.GET("", ingredientHandler.List)
			ingredients.GET("/low-stock", ingredientHandler.ListLowStock)
			ingredients.GET("/expired", ingredientHandler.ListExpired)
			ingredients.GET("/:id", ingredientHandler.Get)
			ingredients.PUT("/:id", ingredientHandler.Update)
			ingredients.DELETE("/:id", ingredientHandler.Delete)
		}

		// Recipe routes
		recipes := protected.Group("/recipes")
		{
			recipes.POST("", recipeHandler.Create)
			recipes.GET("", recipeHandler.List)
			recipes.GET("/:id", recipeHandler.Get)
			recipes.PUT("/:id", recipeHandler.Update)
			recipes.DELETE("/:id", recipeHandler.Delete)
		}

		// Meal routes
		meals := protected.Group("/meals")
		{
			meals.POST("", mealHandler.Create)
			meals.GET("", mealHandler.List)
			meals.GET("/:id", mealHandler.Get)
			meals.PUT("/:id", mealHandler.Update)
			meals.PUT("/:id/done", mealHandler.MarkDone)
			meals.DELETE("/:id", mealHandler.Delete)
		}
	}

	return router
}
