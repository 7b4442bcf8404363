package user

import "context"

// Repository describes user persistence needs from use cases.
type Repository interface {
	// CreateIfAbsent inserts u unless its email is taken. created is false when a row
	// with the same email already existed; no row is written in that case.
	CreateIfAbsent(ctx context.Context, u User) (created bool, err error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	GetByID(ctx context.Context, id string) (User, bool, error)
}
