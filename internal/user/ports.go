package user

import (
	"context"
	"time"
)

// Repository defines the contract for user account storage.
//
// Find operations return (nil, nil) when no row matches: absence is an
// ordinary result, not a failure. Constraint violations come back as the
// typed errors in internal/dberr; anything else is a store error and is
// passed through unchanged.
type Repository interface {
	// Create inserts the user and fills the store-assigned fields
	// (ID, defaulted role/status, timestamps) in place.
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	// Update persists all mutable fields by identity and reports whether a
	// row was updated. The stored updated_at always advances to a strictly
	// greater value.
	Update(ctx context.Context, u *User) (bool, error)
	// UpdateLastLogin sets last_login independently of the other fields.
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
