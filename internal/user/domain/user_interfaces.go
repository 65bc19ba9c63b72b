package domain

import "context"

type UserRepository interface {
	Get(ctx context.Context, u User) (*User, error)
	// GetForUpdate locks the user exclusively until the surrounding transaction ends, removal takes it
	GetForUpdate(ctx context.Context, u User) (*User, error)
	// GetForShare keeps the user from being removed until the surrounding transaction ends,
	// operations that make the user seller or winner take it
	GetForShare(ctx context.Context, u User) (*User, error)
	Create(ctx context.Context, u User) error
	Delete(ctx context.Context, u User) error
}
