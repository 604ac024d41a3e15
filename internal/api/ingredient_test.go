package api_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIngredientMissingFields(t *testing.T) {
	r, _ := setupTestRouter(t)
	token := signupAndLogin(t, r, "alice@example.com")

	w := doJSON(t, r, "POST", "/api/v1/ingredients", token, map[string]interface{}{
		"name": "Egg",
		"unit": "pcs",
	})
	require.Equal(t, 400, w.Code)
	assert.Contains(t, decodeBody(t, w)["message"], "Missing fields:")
}

func TestIngredientCRUD(t *testing.T) {
	r, _ := setupTestRouter(t)
	token := signupAndLogin(t, r, "alice@example.com")

	id := createIngredient(t, r, token, "Egg", 10, 2)

	w := doJSON(t, r, "GET", "/api/v1/ingredients/"+id, token, nil)
	require.Equal(t, 200, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Egg", data["name"])
	assert.Equal(t, float64(10), data["quantity"])

	w = doJSON(t, r, "PUT", "/api/v1/ingredients/"+id, token, map[string]interface{}{
		"quantity": 4,
	})
	require.Equal(t, 200, w.Code)
	data = decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(4), data["quantity"])
	assert.Equal(t, "Egg", data["name"])

	w = doJSON(t, r, "DELETE", "/api/v1/ingredients/"+id, token, nil)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "Ingredient deleted. Also removed 0 recipe(s) and 0 meal(s).",
		decodeBody(t, w)["message"])

	w = doJSON(t, r, "GET", "/api/v1/ingredients/"+id, token, nil)
	assert.Equal(t, 404, w.Code)
}

func TestIngredientInvisibleAcrossOwners(t *testing.T) {
	r, _ := setupTestRouter(t)
	aliceToken := signupAndLogin(t, r, "alice@example.com")
	bobToken := signupAndLogin(t, r, "bob@example.com")

	id := createIngredient(t, r, aliceToken, "Egg", 10, 2)

	// Absent and not-owned look identical.
	w := doJSON(t, r, "GET", "/api/v1/ingredients/"+id, bobToken, nil)
	require.Equal(t, 404, w.Code)
	assert.Equal(t, "Ingredient not found", decodeBody(t, w)["message"])

	w = doJSON(t, r, "DELETE", "/api/v1/ingredients/"+id, bobToken, nil)
	assert.Equal(t, 404, w.Code)
}

func TestLowStockEndpoint(t *testing.T) {
	r, _ := setupTestRouter(t)
	token := signupAndLogin(t, r, "alice@example.com")

	createIngredient(t, r, token, "Milk", 1, 2)
	createIngredient(t, r, token, "Salt", 5, 2)

	w := doJSON(t, r, "GET", "/api/v1/ingredients/low-stock", token, nil)
	require.Equal(t, 200, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "Milk", data[0].(map[string]interface{})["name"])
}

func TestExpiredEndpoint(t *testing.T) {
	r, _ := setupTestRouter(t)
	token := signupAndLogin(t, r, "alice@example.com")

	id := createIngredient(t, r, token, "Old Milk", 1, 0)
	w := doJSON(t, r, "PUT", "/api/v1/ingredients/"+id, token, map[string]interface{}{
		"expiry_date": "2020-01-01",
	})
	require.Equal(t, 200, w.Code)

	createIngredient(t, r, token, "Fresh Milk", 1, 0)

	w = doJSON(t, r, "GET", "/api/v1/ingredients/expired", token, nil)
	require.Equal(t, 200, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "Old Milk", data[0].(map[string]interface{})["name"])
}

func TestDeleteIngredientCascadeMessage(t *testing.T) {
	r, _ := setupTestRouter(t)
	token := signupAndLogin(t, r, "alice@example.com")

	eggID := createIngredient(t, r, token, "Egg", 10, 2)
	recipeID := createRecipe(t, r, token, "Omelette", []map[string]interface{}{
		{"ingredient_id": eggID, "quantity": 3},
	})

	w := doJSON(t, r, "POST", "/api/v1/meals", token, map[string]string{
		"date":      "2026-09-01",
		"time":      "dinner",
		"recipe_id": recipeID,
	})
	require.Equal(t, 201, w.Code)

	w = doJSON(t, r, "DELETE", "/api/v1/ingredients/"+eggID, token, nil)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "Ingredient deleted. Also removed 1 recipe(s) and 1 meal(s).",
		decodeBody(t, w)["message"])

	w = doJSON(t, r, "GET", "/api/v1/recipes/"+recipeID, token, nil)
	assert.Equal(t, 404, w.Code)
}
