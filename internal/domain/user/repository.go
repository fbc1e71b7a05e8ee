package user

import (
	"context"
)

type UserRepository interface {
	GetAll(ctx context.Context) ([]User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Add(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, username string) error
	Save(ctx context.Context) error
}
