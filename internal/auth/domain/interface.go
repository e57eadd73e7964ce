package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/airtribe-projects/news-aggregator-api-chandra-prakash-au25/internal/auth/domain UserRepository

import "context"

// UserRepository is the credential store. Lookups return (nil, nil) when no
// user matches; Create and UpdateProfile return autherror.ErrEmailAlreadyInUse
// when the store rejects a duplicate email.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error)
}
