package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pantryplan/backend/internal/service"
)

func ok(c *gin.Context, resp Response) {
	resp.Success = true
	c.JSON(http.StatusOK, resp)
}

func created(c *gin.Context, resp Response) {
	resp.Success = true
	c.JSON(http.StatusCreated, resp)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message})
}

// respondError maps service errors onto the status taxonomy: missing or
// malformed input and slot conflicts are 400, foreign ingredient references
// are 403, absent-or-not-owned records are 404, bad credentials are 401.
func respondError(c *gin.Context, err error) {
	var (
		missingFields *service.MissingFieldsError
		unowned       *service.UnownedIngredientsError
		missingIng    *service.MissingIngredientError
		insufficient  *service.InsufficientStockError
		slotTaken     *service.SlotTakenError
	)

	switch {
	case errors.As(err, &unowned):
		fail(c, http.StatusForbidden, err.Error())
	case errors.As(err, &missingFields),
		errors.As(err, &missingIng),
		errors.As(err, &insufficient),
		errors.As(err, &slotTaken),
		errors.Is(err, service.ErrMissingMealFields),
		errors.Is(err, service.ErrEmailTaken):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrIngredientNotFound),
		errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrMealNotFound),
		errors.Is(err, service.ErrUserNotFound):
		fail(c, http.StatusNotFound, err.Error())
	default:
		fail(c, http.StatusInternalServerError, "Internal server error")
	}
}

// currentUserID reads the authenticated user id the auth middleware put in
// the context.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		fail(c, http.StatusUnauthorized, "User not authenticated")
		return uuid.Nil, false
	}
	return v.(uuid.UUID), true
}
