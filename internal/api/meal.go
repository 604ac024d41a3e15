package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pantryplan/backend/internal/service"
)

type MealHandler struct {
	meals *service.MealService
}

func NewMealHandler(meals *service.MealService) *MealHandler {
	return &MealHandler{meals: meals}
}

type CreateMealRequest struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	RecipeID string `json:"recipe_id"`
}

type UpdateMealRequest struct {
	RecipeID string `json:"recipe_id"`
}

// Create schedules a meal. Every scheduling failure surfaces as 400,
// including an unknown recipe; that status is part of the contract.
func (h *MealHandler) Create(c *gin.Context) {
	owner, authed := currentUserID(c)
	if !authed {
		return
	}

	var req CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		if req.RecipeID == "" {
			fail(c, http.StatusBadRequest, service.ErrMissingMealFields.Error())
		} else {
			fail(c, http.StatusBadRequest, service.ErrRecipeNotFound.Error())
		}
		return
	}

	meal, err := h.meals.Schedule(c.Request.Context(), owner, req.Date, req.Time, recipeID)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, err)
		return
	}

	created(c, Response{Message: "Meal added", ID: meal.ID.String(), Data: meal})
}

func (h *MealHandler) List(c *gin.Context) {
	owner, authed := currentUserID(c)
	if !authed {
		return
	}

	meals, err := h.meals.List(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}

	ok(c, Response{Data: meals})
}

func (h *MealHandler) Get(c *gin.Context) {
	owner, authed := currentUserID(c)
	if !authed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrMealNotFound)
		return
	}

	meal, err := h.meals.Get(c.Request.Context(), owner, id)
	if err != nil {
		respondError(c, err)
		return
	}

	ok(c, Response{Data: meal})
}

// Update reassigns the meal's recipe. An unknown target recipe is 400, an
// unknown meal 404.
func (h *MealHandler) Update(c *gin.Context) {
	owner, authed := currentUserID(c)
	if !authed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrMealNotFound)
		return
	}

	var req UpdateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		if req.RecipeID == "" {
			fail(c, http.StatusBadRequest, service.ErrMissingMealFields.Error())
		} else {
			fail(c, http.StatusBadRequest, service.ErrRecipeNotFound.Error())
		}
		return
	}

	meal, err := h.meals.Reassign(c.Request.Context(), owner, id, recipeID)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, err)
		return
	}

	ok(c, Response{Message: "Meal updated", Data: meal})
}

func (h *MealHandler) MarkDone(c *gin.Context) {
	owner, authed := currentUserID(c)
	if !authed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrMealNotFound)
		return
	}

	if err := h.meals.MarkDone(c.Request.Context(), owner, id); err != nil {
		respondError(c, err)
		return
	}

	ok(c, Response{Message: "Meal marked as done"})
}

func (h *MealHandler) Delete(c *gin.Context) {
	owner, authed := currentUserID(c)
	if !authed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrMealNotFound)
		return
	}

	if err := h.meals.Delete(c.Request.Context(), owner, id); err != nil {
		respondError(c, err)
		return
	}

	ok(c, Response{Message: "Meal deleted"})
}
