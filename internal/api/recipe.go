package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pantryplan/backend/internal/models"
	"github.com/pantryplan/backend/internal/service"
)

type RecipeHandler struct {
	recipes *service.RecipeService
}

func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

type CreateRecipeRequest struct {
	Name        string                      `json:"name"`
	Ingredients models.RecipeIngredientList `json:"ingredients"`
}

func (h *RecipeHandler) Create(c *gin.Context) {
	owner, authed := currentUserID(c)
	if !authed {
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	recipe, err := h.recipes.Add(c.Request.Context(), owner, req.Name, req.Ingredients)
	if err != nil {
		respondError(c, err)
		return
	}

	created(c, Response{Message: "Recipe added", ID: recipe.ID.String(), Data: recipe})
}

func (h *RecipeHandler) List(c *gin.Context) {
	owner, authed := currentUserID(c)
	if !authed {
		return
	}

	recipes, err := h.recipes.List(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}

	ok(c, Response{Data: recipes})
}

func (h *RecipeHandler) Get(c *gin.Context) {
	owner, authed := currentUserID(c)
	if !authed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrRecipeNotFound)
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), owner, id)
	if err != nil {
		respondError(c, err)
		return
	}

	ok(c, Response{Data: recipe})
}

func (h *RecipeHandler) Update(c *gin.Context) {
	owner, authed := currentUserID(c)
	if !authed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrRecipeNotFound)
		return
	}

	var patch service.RecipePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), owner, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	ok(c, Response{Message: "Recipe updated", Data: recipe})
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	owner, authed := currentUserID(c)
	if !authed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrRecipeNotFound)
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), owner, id); err != nil {
		respondError(c, err)
		return
	}

	ok(c, Response{Message: "Recipe and associated meals deleted"})
}
