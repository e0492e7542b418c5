package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "user-directory-service/internal/domain/user"
	usecase "user-directory-service/internal/usecase/user"
	apperrors "user-directory-service/pkg/errors"
)

// MockUsecase is a mock implementation of user.Usecase
type MockUsecase struct {
	mock.Mock
}

func (m *MockUsecase) ListUsers(ctx context.Context, in usecase.ListUsersRequest) (*domain.Page, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page), args.Error(1)
}

func (m *MockUsecase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUsecase) CreateUser(ctx context.Context, in *usecase.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUsecase) UpdateUser(ctx context.Context, id string, in *usecase.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUsecase) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupTest(t *testing.T) (*gin.Engine, *MockUsecase) {
	gin.SetMode(gin.TestMode)
	mockUC := new(MockUsecase)
	h := NewUserHandler(mockUC, zaptest.NewLogger(t))

	r := gin.New()
	r.GET("/api/users", h.ListUsers)
	r.POST("/api/users", h.CreateUser)
	r.GET("/api/users/:id", h.GetUser)
	r.PUT("/api/users/:id", h.UpdateUser)
	r.DELETE("/api/users/:id", h.DeleteUser)
	return r, mockUC
}

func sampleUser() *domain.User {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &domain.User{
		ID:         "11111111-2222-3333-4444-555555555555",
		FirstName:  "Ann",
		LastName:   "Lee",
		Email:      "ann@x.com",
		Department: "Eng",
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func doJSON(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, mockUC := setupTest(t)
		u := sampleUser()

		mockUC.On("CreateUser", mock.Anything, mock.MatchedBy(func(req *usecase.CreateUserRequest) bool {
			return req.FirstName != nil && *req.FirstName == "Ann"
		})).Return(u, nil)

		body, _ := json.Marshal(map[string]any{
			"firstName": "Ann", "lastName": "Lee",
			"email": "ann@x.com", "department": "Eng",
		})
		w := doJSON(r, http.MethodPost, "/api/users", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "/api/users/"+u.ID, w.Header().Get("Location"))

		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, u.ID, resp.ID)
		assert.True(t, resp.IsActive)
		assert.Nil(t, resp.Title)
		assert.Nil(t, resp.Phone)
		mockUC.AssertExpectations(t)
	})

	t.Run("Missing Body", func(t *testing.T) {
		r, mockUC := setupTest(t)

		w := doJSON(r, http.MethodPost, "/api/users", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Request body is required."}`, w.Body.String())
		mockUC.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		r, _ := setupTest(t)

		w := doJSON(r, http.MethodPost, "/api/users", []byte("{not json"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Request body is not valid JSON."}`, w.Body.String())
	})

	t.Run("Validation Failure", func(t *testing.T) {
		r, mockUC := setupTest(t)

		fields := map[string][]string{"email": {"Email is not valid."}}
		mockUC.On("CreateUser", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewValidationError(fields))

		w := doJSON(r, http.MethodPost, "/api/users", []byte(`{"email":"not-an-email"}`))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.JSONEq(t, `{"errors":{"email":["Email is not valid."]}}`, w.Body.String())
	})
}

func TestGetUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, mockUC := setupTest(t)
		u := sampleUser()
		mockUC.On("GetUser", mock.Anything, u.ID).Return(u, nil)

		w := doJSON(r, http.MethodGet, "/api/users/"+u.ID, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, u.Email, resp.Email)
	})

	t.Run("Not Found", func(t *testing.T) {
		r, mockUC := setupTest(t)
		mockUC.On("GetUser", mock.Anything, "missing").
			Return(nil, apperrors.NewNotFoundError("user", "User not found."))

		w := doJSON(r, http.MethodGet, "/api/users/missing", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"User not found."}`, w.Body.String())
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, mockUC := setupTest(t)
		u := sampleUser()
		u.Department = "Sales"

		mockUC.On("UpdateUser", mock.Anything, u.ID, mock.MatchedBy(func(req *usecase.UpdateUserRequest) bool {
			return req.Department != nil && *req.Department == "Sales" && req.FirstName == nil
		})).Return(u, nil)

		w := doJSON(r, http.MethodPut, "/api/users/"+u.ID, []byte(`{"department":"Sales"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Sales", resp.Department)
		mockUC.AssertExpectations(t)
	})

	t.Run("Missing Body", func(t *testing.T) {
		r, mockUC := setupTest(t)

		w := doJSON(r, http.MethodPut, "/api/users/u1", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUC.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Not Found", func(t *testing.T) {
		r, mockUC := setupTest(t)
		mockUC.On("UpdateUser", mock.Anything, "missing", mock.Anything).
			Return(nil, apperrors.NewNotFoundError("user", "User not found."))

		w := doJSON(r, http.MethodPut, "/api/users/missing", []byte(`{"department":"Sales"}`))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Empty Patch", func(t *testing.T) {
		r, mockUC := setupTest(t)
		fields := map[string][]string{"request": {"At least one field must be provided."}}
		mockUC.On("UpdateUser", mock.Anything, "u1", mock.Anything).
			Return(nil, apperrors.NewValidationError(fields))

		w := doJSON(r, http.MethodPut, "/api/users/u1", []byte(`{}`))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.JSONEq(t, `{"errors":{"request":["At least one field must be provided."]}}`, w.Body.String())
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, mockUC := setupTest(t)
		mockUC.On("DeleteUser", mock.Anything, "u1").Return(nil)

		w := doJSON(r, http.MethodDelete, "/api/users/u1", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Not Found", func(t *testing.T) {
		r, mockUC := setupTest(t)
		mockUC.On("DeleteUser", mock.Anything, "u1").
			Return(apperrors.NewNotFoundError("user", "User not found."))

		w := doJSON(r, http.MethodDelete, "/api/users/u1", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListUsers(t *testing.T) {
	t.Run("Passes Parsed Paging Parameters", func(t *testing.T) {
		r, mockUC := setupTest(t)
		page := &domain.Page{Items: []domain.User{*sampleUser()}, Total: 1, Skip: 2, Take: 10}
		mockUC.On("ListUsers", mock.Anything, usecase.ListUsersRequest{Skip: 2, Take: 10}).Return(page, nil)

		w := doJSON(r, http.MethodGet, "/api/users?skip=2&take=10", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp ListUsersResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Total)
		assert.Len(t, resp.Items, 1)
		mockUC.AssertExpectations(t)
	})

	t.Run("Defaults When Parameters Absent", func(t *testing.T) {
		r, mockUC := setupTest(t)
		page := &domain.Page{Items: nil, Total: 0, Skip: 0, Take: domain.DefaultTake}
		mockUC.On("ListUsers", mock.Anything, usecase.ListUsersRequest{Skip: 0, Take: domain.DefaultTake}).Return(page, nil)

		w := doJSON(r, http.MethodGet, "/api/users", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		mockUC.AssertExpectations(t)
	})

	t.Run("Non-Numeric Parameters Fall Back", func(t *testing.T) {
		r, mockUC := setupTest(t)
		page := &domain.Page{Items: nil, Total: 0, Skip: 0, Take: domain.DefaultTake}
		mockUC.On("ListUsers", mock.Anything, usecase.ListUsersRequest{Skip: 0, Take: domain.DefaultTake}).Return(page, nil)

		w := doJSON(r, http.MethodGet, "/api/users?skip=abc&take=xyz", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		mockUC.AssertExpectations(t)
	})
}
