package review

import "errors"

// ErrBookNotFound is returned when a review operation references a book id
// that does not exist.
var ErrBookNotFound = errors.New("book not found")

// Review is a user-submitted rating attached to exactly one book.
type Review struct {
	ID      int64  `json:"id"`
	User    string `json:"user"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	BookID  int64  `json:"book_id"`
}
