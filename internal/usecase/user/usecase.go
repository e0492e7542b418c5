package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "user-directory-service/internal/domain/user"
	apperrors "user-directory-service/pkg/errors"
)

// Repository defines the interface for directory data access. It
// abstracts the store so different implementations can be used
// interchangeably; the in-memory store is the only one shipped.
//
// Update returns false when no record with the given ID exists anymore,
// Delete returns false when there was nothing to remove.
type Repository interface {
	List(ctx context.Context) []domain.User
	GetByID(ctx context.Context, id string) (domain.User, bool)
	Create(ctx context.Context, u domain.User) domain.User
	Update(ctx context.Context, u domain.User) bool
	Delete(ctx context.Context, id string) bool
}

// Service implements the business logic for directory operations.
// Expected failures are returned as typed errors from pkg/errors;
// nothing here panics for input covered by validation.
type Service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

var _ Usecase = (*Service)(nil)

// New creates a new Service with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{
		repo: r,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// ListUsers returns one page of the directory, sorted by last then
// first name. Skip below zero becomes zero; Take values <= 0 fall back
// to the default page size and anything above the maximum is clamped.
func (s *Service) ListUsers(ctx context.Context, in ListUsersRequest) (*domain.Page, error) {
	skip := in.Skip
	if skip < 0 {
		skip = 0
	}
	take := in.Take
	if take <= 0 {
		take = domain.DefaultTake
	}
	if take > domain.MaxTake {
		take = domain.MaxTake
	}

	users := s.repo.List(ctx)
	total := len(users)

	start := skip
	if start > total {
		start = total
	}
	end := start + take
	if end > total {
		end = total
	}

	s.log.Debug("listing users", zap.Int("total", total), zap.Int("skip", skip), zap.Int("take", take))

	return &domain.Page{
		Items: users[start:end],
		Total: total,
		Skip:  skip,
		Take:  take,
	}, nil
}

// GetUser retrieves a record by ID.
func (s *Service) GetUser(ctx context.Context, id string) (*domain.User, error) {
	u, ok := s.repo.GetByID(ctx, id)
	if !ok {
		return nil, apperrors.NewNotFoundError("user", "User not found.")
	}
	return &u, nil
}

// CreateUser validates and normalizes the request, then stores a fresh
// record with a generated ID and CreatedAt == UpdatedAt == now.
func (s *Service) CreateUser(ctx context.Context, in *CreateUserRequest) (*domain.User, error) {
	if in == nil {
		return nil, apperrors.NewBadRequestError("Request body is required.")
	}

	if errs := ValidateCreate(in); len(errs) > 0 {
		s.log.Warn("create user validation failed", zap.Int("field_count", len(errs)))
		return nil, apperrors.NewValidationError(errs)
	}

	now := s.now()
	u := domain.User{
		ID:         uuid.NewString(),
		FirstName:  normalized(in.FirstName),
		LastName:   normalized(in.LastName),
		Email:      normalized(in.Email),
		Department: normalized(in.Department),
		Title:      normalizedPtr(in.Title),
		Phone:      normalizedPtr(in.Phone),
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}

	stored := s.repo.Create(ctx, u)

	s.log.Info("user created", zap.String("id", stored.ID), zap.String("department", stored.Department))
	return &stored, nil
}

// UpdateUser applies a partial patch: only supplied fields overlay the
// stored record, and UpdatedAt is always refreshed. Validating against
// the loaded record is not enough on its own, so the store's Update
// result is checked again; a record deleted between the lookup and the
// write reports as not found, never as success.
func (s *Service) UpdateUser(ctx context.Context, id string, in *UpdateUserRequest) (*domain.User, error) {
	if in == nil {
		return nil, apperrors.NewBadRequestError("Request body is required.")
	}

	if errs := ValidateUpdate(in); len(errs) > 0 {
		s.log.Warn("update user validation failed", zap.String("id", id), zap.Int("field_count", len(errs)))
		return nil, apperrors.NewValidationError(errs)
	}

	u, ok := s.repo.GetByID(ctx, id)
	if !ok {
		return nil, apperrors.NewNotFoundError("user", "User not found.")
	}

	if in.FirstName != nil {
		u.FirstName = normalized(in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = normalized(in.LastName)
	}
	if in.Email != nil {
		u.Email = normalized(in.Email)
	}
	if in.Department != nil {
		u.Department = normalized(in.Department)
	}
	if in.Title != nil {
		u.Title = normalizedPtr(in.Title)
	}
	if in.Phone != nil {
		u.Phone = normalizedPtr(in.Phone)
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	u.UpdatedAt = s.now()

	if !s.repo.Update(ctx, u) {
		// Removed between the lookup and the write.
		s.log.Warn("user vanished during update", zap.String("id", id))
		return nil, apperrors.NewNotFoundError("user", "User not found.")
	}

	s.log.Info("user updated", zap.String("id", id))
	return &u, nil
}

// DeleteUser removes a record permanently.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if !s.repo.Delete(ctx, id) {
		return apperrors.NewNotFoundError("user", "User not found.")
	}
	s.log.Info("user deleted", zap.String("id", id))
	return nil
}
