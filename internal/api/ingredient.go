package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pantryplan/backend/internal/service"
)

type IngredientHandler struct {
	ingredients *service.IngredientService
}

func NewIngredientHandler(ingredients *service.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredients: ingredients}
}

func (h *IngredientHandler) Create(c *gin.Context) {
	owner, authed := currentUserID(c)
	if !authed {
		return
	}

	var input service.AddIngredientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ingredient, err := h.ingredients.Add(c.Request.Context(), owner, input)
	if err != nil {
		respondError(c, err)
		return
	}

	created(c, Response{Message: "Ingredient added", ID: ingredient.ID.String(), Data: ingredient})
}

func (h *IngredientHandler) List(c *gin.Context) {
	owner, authed := currentUserID(c)
	if !authed {
		return
	}

	ingredients, err := h.ingredients.List(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}

	ok(c, Response{Data: ingredients})
}

func (h *IngredientHandler) Get(c *gin.Context) {
	owner, authed := currentUserID(c)
	if !authed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrIngredientNotFound)
		return
	}

	ingredient, err := h.ingredients.Get(c.Request.Context(), owner, id)
	if err != nil {
		respondError(c, err)
		return
	}

	ok(c, Response{Data: ingredient})
}

func (h *IngredientHandler) Update(c *gin.Context) {
	owner, authed := currentUserID(c)
	if !authed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrIngredientNotFound)
		return
	}

	var patch service.IngredientPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ingredient, err := h.ingredients.Update(c.Request.Context(), owner, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	ok(c, Response{Message: "Ingredient updated", Data: ingredient})
}

func (h *IngredientHandler) Delete(c *gin.Context) {
	owner, authed := currentUserID(c)
	if !authed {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrIngredientNotFound)
		return
	}

	result, err := h.ingredients.Delete(c.Request.Context(), owner, id)
	if err != nil {
		respondError(c, err)
		return
	}

	ok(c, Response{
		Message: fmt.Sprintf("Ingredient deleted. Also removed %d recipe(s) and %d meal(s).",
			result.RemovedRecipes, result.RemovedMeals),
	})
}

func (h *IngredientHandler) ListLowStock(c *gin.Context) {
	owner, authed := currentUserID(c)
	if !authed {
		return
	}

	ingredients, err := h.ingredients.ListLowStock(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}

	ok(c, Response{Data: ingredients})
}

func (h *IngredientHandler) ListExpired(c *gin.Context) {
	owner, authed := currentUserID(c)
	if !authed {
		return
	}

	ingredients, err := h.ingredients.ListExpired(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}

	ok(c, Response{Data: ingredients})
}
