package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pantryplan/backend/internal/models"
	"github.com/pantryplan/backend/internal/router"
	"github.com/pantryplan/backend/internal/service"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *service.Services) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:api_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
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

	services := service.NewServices(db, "test-secret")
	return router.SetupRouter(services, nil), services
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// signupAndLogin registers a fresh user through the API and returns a token.
func signupAndLogin(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()

	w := doJSON(t, r, "POST", "/api/v1/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, 201, w.Code)

	w = doJSON(t, r, "POST", "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, 200, w.Code)

	token, ok := decodeBody(t, w)["token"].(string)
	require.True(t, ok)
	return token
}

// createIngredient creates an ingredient through the API and returns its id.
func createIngredient(t *testing.T, r *gin.Engine, token, name string, quantity, minQuantity float64) string {
	t.Helper()

	w := doJSON(t, r, "POST", "/api/v1/ingredients", token, map[string]interface{}{
		"name":         name,
		"unit":         "pcs",
		"category":     "misc",
		"quantity":     quantity,
		"min_quantity": minQuantity,
	})
	require.Equal(t, 201, w.Code)
	id, ok := decodeBody(t, w)["id"].(string)
	require.True(t, ok)
	return id
}

// createRecipe creates a recipe through the API and returns its id.
func createRecipe(t *testing.T, r *gin.Engine, token, name string, lines []map[string]interface{}) string {
	t.Helper()

	w := doJSON(t, r, "POST", "/api/v1/recipes", token, map[string]interface{}{
		"name":        name,
		"ingredients": lines,
	})
	require.Equal(t, 201, w.Code)
	id, ok := decodeBody(t, w)["id"].(string)
	require.True(t, ok)
	return id
}
