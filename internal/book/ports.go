package book

import "context"

// Repository defines the contract for book storage and the copy counter.
//
// Find operations return (nil, nil) when no row matches. The counter
// operations are atomic conditional writes: the bound check and the mutation
// happen in one statement, so concurrent borrow/return traffic on the same
// book can neither lose updates nor push the counter outside
// [0, total_copies]. Hitting a bound returns false, never an error.
type Repository interface {
	Create(ctx context.Context, b *Book) error
	FindByID(ctx context.Context, id int64) (*Book, error)
	FindByISBN(ctx context.Context, isbn string) (*Book, error)
	FindAll(ctx context.Context) ([]Book, error)
	// SearchByTitle matches the fragment case-insensitively anywhere in the
	// title.
	SearchByTitle(ctx context.Context, fragment string) ([]Book, error)
	FindAvailableBooks(ctx context.Context) ([]Book, error)
	CountAll(ctx context.Context) (int, error)
	CountAvailableBooks(ctx context.Context) (int, error)
	Update(ctx context.Context, b *Book) (bool, error)
	// UpdateAvailableCopies is an administrative raw setter; it bypasses the
	// counter's serialization but not the schema check. Not for concurrent
	// borrow/return use.
	UpdateAvailableCopies(ctx context.Context, id int64, n int) (bool, error)
	// DecreaseAvailableCopies decrements by one unless the counter is 0.
	DecreaseAvailableCopies(ctx context.Context, id int64) (bool, error)
	// IncreaseAvailableCopies increments by one unless the counter is at
	// total_copies.
	IncreaseAvailableCopies(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
