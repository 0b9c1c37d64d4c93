package book

import (
	"errors"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// Book represents a catalog entry.
type Book struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Summary string `json:"summary"`
	Genre   string `json:"genre"`
}

// RatedBook is a book together with the mean of its review ratings.
type RatedBook struct {
	Book
	AverageRating float64 `json:"average_rating"`
}

// Patch carries a partial update. Nil fields keep their stored value.
type Patch struct {
	Title   *string `json:"title"`
	Author  *string `json:"author"`
	Summary *string `json:"summary"`
	Genre   *string `json:"genre"`
}

// IsZero reports whether the patch carries no fields.
func (p Patch) IsZero() bool {
	return p.Title == nil && p.Author == nil && p.Summary == nil && p.Genre == nil
}
