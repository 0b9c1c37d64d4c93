package review

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type createReviewRequest struct {
	BookID  *int64 `json:"book_id" validate:"required"`
	User    string `json:"user" validate:"required"`
	Rating  *int   `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// Create handles POST /reviews.
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, httpx.ValidationMessage(validationErrors))
		return
	}

	rev := Review{
		User:    req.User,
		Rating:  *req.Rating,
		Comment: req.Comment,
		BookID:  *req.BookID,
	}
	if err := h.service.Create(r.Context(), &rev); err != nil {
		if errors.Is(err, ErrBookNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "Book not found")
			return
		}
		log.Printf("create review: book_id=%d error=%v", rev.BookID, err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.JSON(w, http.StatusCreated, map[string]any{"message": "Review added successfully"})
}

// List handles GET /reviews.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListAll(r.Context())
	if err != nil {
		log.Printf("list reviews: error=%v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if reviews == nil {
		reviews = []Review{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}

// ListForBook handles GET /reviews/{book_id}.
func (h *HTTPHandler) ListForBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := strconv.ParseInt(r.PathValue("book_id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound, "Book not found")
		return
	}

	reviews, err := h.service.ListForBook(r.Context(), bookID)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "Book not found")
			return
		}
		log.Printf("list reviews for book: book_id=%d error=%v", bookID, err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if reviews == nil {
		reviews = []Review{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}
