package review

import "context"

// Repository defines the contract for review data storage.
type Repository interface {
	// Create inserts the review and fills in its assigned id. The book
	// reference is checked inside the same transaction as the insert.
	Create(ctx context.Context, rev *Review) error
	ListAll(ctx context.Context) ([]Review, error)
	ListForBook(ctx context.Context, bookID int64) ([]Review, error)
}
