package user

import (
	"context"

	domain "user-directory-service/internal/domain/user"
)

// Usecase defines the interface for directory business logic operations.
type Usecase interface {
	ListUsers(ctx context.Context, in ListUsersRequest) (*domain.Page, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, in *CreateUserRequest) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, in *UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
