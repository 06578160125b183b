package user

import (
	"context"
)

type ListFilter struct {
	Search string
	Page   int
	Limit  int
}

type UserRepository interface {
	// GetByEmail returns ErrUserNotFound when no user has the email.
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	// Create returns ErrUserEmailExists when the email is taken.
	Create(ctx context.Context, newUser User) (User, error)
	CountByRole(ctx context.Context, role Role) (int64, error)
	List(ctx context.Context, filter ListFilter) ([]User, int64, error)
}
