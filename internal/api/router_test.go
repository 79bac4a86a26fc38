package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/isdelr/storefront-be/internal/auth"
	"github.com/isdelr/storefront-be/internal/database"
	"github.com/isdelr/storefront-be/internal/models"
	"github.com/isdelr/storefront-be/internal/services"
	"github.com/isdelr/storefront-be/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authResponse struct {
	User  models.Account `json:"user"`
	Token string         `json:"token"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	accountStore := store.NewAccountStore(db)
	tokenService := auth.NewTokenService("test-secret", time.Hour)
	authService := services.NewAuthService(accountStore, tokenService, bcrypt.MinCost)
	productService := services.NewProductService(db)

	return NewRouter(tokenService, authService, productService, []string{"http://localhost:3000"})
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
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
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthFlow(t *testing.T) {
	router := newTestRouter(t)

	// Register
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "demo@test.com",
		"password": "password",
		"name":     "Demo User",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var registered authResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&registered))
	assert.Equal(t, "demo@test.com", registered.User.Email)
	assert.NotEmpty(t, registered.User.ID)
	assert.NotEmpty(t, registered.Token)
	assert.Empty(t, registered.User.PasswordHash)

	// Login with the same credentials yields the same subject
	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "demo@test.com",
		"password": "password",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var loggedIn authResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&loggedIn))
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
	assert.NotEmpty(t, loggedIn.Token)

	// Wrong password is rejected
	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "demo@test.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown email gets the identical rejection
	unknownRec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "nobody@test.com",
		"password": "password",
	})
	assert.Equal(t, rec.Code, unknownRec.Code)
	assert.Equal(t, rec.Body.String(), unknownRec.Body.String())

	// Duplicate registration is an authorization-class failure
	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "demo@test.com",
		"password": "otherpassword",
		"name":     "Someone Else",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The token resolves back to the account
	rec = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", loggedIn.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me models.Account
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&me))
	assert.Equal(t, registered.User.ID, me.ID)
	assert.Equal(t, "demo@test.com", me.Email)
}

func TestProductRoutes_GuardedMutations(t *testing.T) {
	router := newTestRouter(t)

	product := map[string]interface{}{
		"title":    "Headphones",
		"price":    129.99,
		"category": "audio",
		"inStock":  true,
	}

	// Mutation without a token never reaches the handler
	rec := doJSON(t, router, http.MethodPost, "/api/v1/products", "", product)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Tampered token is rejected the same way
	rec = doJSON(t, router, http.MethodPost, "/api/v1/products", "garbage-token", product)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Register to obtain a token
	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "demo@test.com",
		"password": "password",
		"name":     "Demo User",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var registered authResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&registered))

	// Create with a valid token
	rec = doJSON(t, router, http.MethodPost, "/api/v1/products", registered.Token, product)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Product
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	require.NotEmpty(t, created.ID)

	// Reads are public
	rec = doJSON(t, router, http.MethodGet, "/api/v1/products/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/products/category/audio", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var inCategory []models.Product
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&inCategory))
	assert.Len(t, inCategory, 1)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/products/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []models.Category
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "audio", categories[0].Name)

	// Guarded update and delete
	product["title"] = "Wireless Headphones"
	rec = doJSON(t, router, http.MethodPut, "/api/v1/products/"+created.ID, registered.Token, product)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/products/"+created.ID, "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/products/"+created.ID, registered.Token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/products/"+created.ID, "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/status", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(t, "running", status["status"])
}
