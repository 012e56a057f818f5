package users

import (
	"context"
)

// Repository is the user directory. Implementations enforce email
// uniqueness and hand out copies, never their own records.
type Repository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id int) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id int, patch Patch) (*User, error)
	Delete(ctx context.Context, id int) error
}
