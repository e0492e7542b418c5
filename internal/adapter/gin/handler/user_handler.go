package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "user-directory-service/internal/domain/user"
	"user-directory-service/internal/usecase/user"
	apperrors "user-directory-service/pkg/errors"
)

// UserHandler handles HTTP requests for directory operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user.
// Pointer fields keep "absent" distinguishable from "supplied but blank".
type CreateUserRequest struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email"`
	Department *string `json:"department"`
	Title      *string `json:"title"`
	Phone      *string `json:"phone"`
	IsActive   *bool   `json:"isActive"`
}

// UpdateUserRequest represents the HTTP request body for a partial update
type UpdateUserRequest struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email"`
	Department *string `json:"department"`
	Title      *string `json:"title"`
	Phone      *string `json:"phone"`
	IsActive   *bool   `json:"isActive"`
}

// UserResponse represents the HTTP response for a single record
type UserResponse struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Title      *string   `json:"title"`
	Phone      *string   `json:"phone"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ListUsersResponse represents one page of the directory listing
type ListUsersResponse struct {
	Items []UserResponse `json:"items"`
	Total int            `json:"total"`
	Skip  int            `json:"skip"`
	Take  int            `json:"take"`
}

// ErrorResponse represents a single-message error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse enumerates every violated field
type ValidationErrorResponse struct {
	Errors map[string][]string `json:"errors"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Department: u.Department,
		Title:      u.Title,
		Phone:      u.Phone,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil {
		skip = 0
	}
	take, err := strconv.Atoi(c.DefaultQuery("take", strconv.Itoa(domain.DefaultTake)))
	if err != nil {
		take = domain.DefaultTake
	}

	page, err := h.uc.ListUsers(c.Request.Context(), user.ListUsersRequest{Skip: skip, Take: take})
	if err != nil {
		h.handleError(c, err)
		return
	}

	items := make([]UserResponse, len(page.Items))
	for i, u := range page.Items {
		items[i] = toUserResponse(u)
	}

	c.JSON(http.StatusOK, ListUsersResponse{
		Items: items,
		Total: page.Total,
		Skip:  page.Skip,
		Take:  page.Take,
	})
}

// GetUser handles GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	u, err := h.uc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*u))
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if ok := h.bindBody(c, &req); !ok {
		return
	}

	u, err := h.uc.CreateUser(c.Request.Context(), &user.CreateUserRequest{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Department: req.Department,
		Title:      req.Title,
		Phone:      req.Phone,
		IsActive:   req.IsActive,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/users/"+u.ID)
	c.JSON(http.StatusCreated, toUserResponse(*u))
}

// UpdateUser handles PUT /api/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if ok := h.bindBody(c, &req); !ok {
		return
	}

	u, err := h.uc.UpdateUser(c.Request.Context(), c.Param("id"), &user.UpdateUserRequest{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Department: req.Department,
		Title:      req.Title,
		Phone:      req.Phone,
		IsActive:   req.IsActive,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(*u))
}

// DeleteUser handles DELETE /api/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.uc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bindBody decodes the JSON body into out. An absent or malformed body
// is rejected outright with 400 before any validation runs.
func (h *UserHandler) bindBody(c *gin.Context, out any) bool {
	err := c.ShouldBindJSON(out)
	if err == nil {
		return true
	}

	h.log.Warn("invalid request body", zap.String("path", c.Request.URL.Path), zap.Error(err))
	if errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Request body is required."})
	} else {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Request body is not valid JSON."})
	}
	return false
}

// handleError converts usecase errors to HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{Errors: validationErr.Fields})
		return
	}

	var notFoundErr *apperrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: notFoundErr.Error()})
		return
	}

	var badRequestErr *apperrors.BadRequestError
	if errors.As(err, &badRequestErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: badRequestErr.Error()})
		return
	}

	h.log.Error("unexpected handler error", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An internal error occurred."})
}
