package service

import "context"

// UserRepo is the persistence surface the user service needs.
type UserRepo interface {
	EnsureUser(ctx context.Context, userID int64, firstName, username string) error
	IsAllowed(ctx context.Context, userID int64) (bool, error)
}

// UserService handles user registration and the access allow-list.
type UserService struct {
	repo UserRepo
}

// NewUserService creates a new UserService.
func NewUserService(repo UserRepo) *UserService {
	return &UserService{repo: repo}
}

// EnsureUser registers the user or refreshes their profile fields.
func (s *UserService) EnsureUser(ctx context.Context, userID int64, firstName, username string) error {
	return s.repo.EnsureUser(ctx, userID, firstName, username)
}

// IsAllowed reports whether the user may start a quiz.
// Lookup failures fail closed.
func (s *UserService) IsAllowed(ctx context.Context, userID int64) (bool, error) {
	return s.repo.IsAllowed(ctx, userID)
}
