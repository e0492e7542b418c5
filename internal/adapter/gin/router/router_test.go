package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-directory-service/internal/adapter/gin/handler"
	"user-directory-service/internal/adapter/gin/middleware"
	"user-directory-service/internal/adapter/memstore"
	"user-directory-service/internal/usecase/user"
)

// setupRouter wires the real store, usecase and handler behind the full
// middleware chain, with rate limiting disabled.
func setupRouter(t *testing.T, tokens []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zaptest.NewLogger(t)
	uc := user.New(memstore.New(), log)
	h := handler.NewUserHandler(uc, log)
	rl := middleware.NewRateLimiter(nil, middleware.RateLimiterConfig{}, log)
	return SetupRouter(h, rl, tokens, log)
}

func TestRouter_HealthIsOpen(t *testing.T) {
	r := setupRouter(t, []string{"secret"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_APIRequiresToken(t *testing.T) {
	r := setupRouter(t, []string{"secret"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized."}`, w.Body.String())
}

func TestRouter_FullCrudFlow(t *testing.T) {
	r := setupRouter(t, []string{"secret"})

	do := func(method, path string, body []byte) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer secret")
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	// Create
	w := do(http.MethodPost, "/api/users", []byte(`{
		"firstName":"Ann","lastName":"Lee","email":"ann@x.com","department":"Eng"
	}`))
	require.Equal(t, http.StatusCreated, w.Code)

	var created handler.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "/api/users/"+created.ID, w.Header().Get("Location"))
	assert.True(t, created.IsActive)

	// Get
	w = do(http.MethodGet, "/api/users/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Update
	w = do(http.MethodPut, "/api/users/"+created.ID, []byte(`{"department":"Sales"}`))
	require.Equal(t, http.StatusOK, w.Code)
	var updated handler.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Sales", updated.Department)
	assert.Equal(t, "Ann", updated.FirstName)

	// List
	w = do(http.MethodGet, "/api/users?skip=0&take=50", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page handler.ListUsersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Total)

	// Delete, then delete again
	w = do(http.MethodDelete, "/api/users/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(http.MethodDelete, "/api/users/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
