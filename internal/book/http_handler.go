package book

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/samber/lo"

	"bookcatalog/internal/httpx"
	"bookcatalog/internal/review"
)

// ReviewLister supplies the reviews embedded in the single-book response.
type ReviewLister interface {
	ListForBook(ctx context.Context, bookID int64) ([]review.Review, error)
}

type HTTPHandler struct {
	service *Service
	reviews ReviewLister
}

func NewHTTPHandler(service *Service, reviews ReviewLister) *HTTPHandler {
	return &HTTPHandler{service: service, reviews: reviews}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

// List handles GET /books.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		log.Printf("list books: error=%v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if books == nil {
		books = []Book{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"books": books})
}

// Get handles GET /books/{id} and returns the book with its reviews.
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound, "Book not found")
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "Book not found")
			return
		}
		log.Printf("get book: id=%d error=%v", id, err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	reviews, err := h.reviews.ListForBook(r.Context(), id)
	if err != nil {
		log.Printf("get book reviews: id=%d error=%v", id, err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if reviews == nil {
		reviews = []review.Review{}
	}

	httpx.JSON(w, http.StatusOK, map[string]any{"book": b, "reviews": reviews})
}

type bookInput struct {
	Title   string `json:"title" validate:"required"`
	Author  string `json:"author" validate:"required"`
	Summary string `json:"summary"`
	Genre   string `json:"genre" validate:"required"`
}

type createBooksRequest struct {
	Books []bookInput `json:"books"`
}

// Create handles POST /books. The payload carries a list of books; the whole
// list is inserted in one transaction or not at all.
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBooksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	if req.Books == nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	for i, in := range req.Books {
		if validationErrors := httpx.ValidateStruct(in); len(validationErrors) > 0 {
			msg := fmt.Sprintf("books[%d]: %s", i, httpx.ValidationMessage(validationErrors))
			httpx.JSONError(w, http.StatusBadRequest, msg)
			return
		}
	}

	books := lo.Map(req.Books, func(in bookInput, _ int) Book {
		return Book{
			Title:   in.Title,
			Author:  in.Author,
			Summary: in.Summary,
			Genre:   in.Genre,
		}
	})

	if err := h.service.CreateBatch(r.Context(), books); err != nil {
		log.Printf("create books: count=%d error=%v", len(books), err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.JSON(w, http.StatusCreated, map[string]any{"message": "Books added successfully"})
}

// Update handles PUT /books/{id} with a partial body; absent fields keep
// their stored value and the id is never mutable.
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound, "Book not found")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	// An empty object carries nothing to update and is rejected.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || len(raw) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	var patch Patch
	if err := json.Unmarshal(body, &patch); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	if err := h.service.Update(r.Context(), id, patch); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "Book not found")
			return
		}
		log.Printf("update book: id=%d error=%v", id, err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{"message": "Book updated successfully"})
}

// Delete handles DELETE /books/{id}. The book's reviews go with it.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound, "Book not found")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "Book not found")
			return
		}
		log.Printf("delete book: id=%d error=%v", id, err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{"message": "Book deleted successfully"})
}

// TopRated handles GET /books/top.
func (h *HTTPHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	top, err := h.service.TopRated(r.Context())
	if err != nil {
		log.Printf("top rated books: error=%v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if top == nil {
		top = []RatedBook{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"top_books": top})
}
